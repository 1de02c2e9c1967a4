package submission

import "fmt"

// Field names a categorical or bounded field on a Submission, as it appears
// on the wire.
type Field string

const (
	FieldPreferredName        Field = "preferredName"
	FieldLinkedinProfile      Field = "linkedinProfile"
	FieldEmploymentStatus     Field = "employmentStatus"
	FieldCloudPlatforms       Field = "cloudPlatforms"
	FieldDevopsTools          Field = "devopsTools"
	FieldProgrammingLanguages Field = "programmingLanguages"
	FieldMonitoringTools      Field = "monitoringTools"
	FieldDatabases            Field = "databases"
	FieldExperienceLevel      Field = "experienceLevel"
	FieldRoleFocus            Field = "roleFocus"
	FieldLocation             Field = "location"
	FieldCurrentSalaryRange   Field = "currentSalaryRange"
	FieldDesiredSalaryRange   Field = "desiredSalaryRange"
)

// SkillFields are the five bounded skill collections, in validation order.
var SkillFields = []Field{
	FieldCloudPlatforms,
	FieldDevopsTools,
	FieldProgrammingLanguages,
	FieldMonitoringTools,
	FieldDatabases,
}

var employmentStatuses = []string{"Employed", "Looking", "Freelancing"}

var experienceLevels = []string{
	"Junior (0-2 years)",
	"Mid-level (3-5 years)",
	"Senior (6-8 years)",
	"Lead/Principal (9+ years)",
	"Engineering Manager",
	"Director/VP",
}

var roleFocuses = []string{
	"DevOps Engineer",
	"Cloud Engineer",
	"SRE",
	"Platform Engineer",
	"Infrastructure Engineer",
	"Security Engineer",
}

var locations = []string{
	"Metro Manila",
	"Cebu",
	"Davao",
	"Remote - Philippines",
	"Remote - International",
	"Other",
}

// salaryRanges is shared by currentSalaryRange and desiredSalaryRange.
var salaryRanges = []string{
	"Below 50,000",
	"50,000 - 80,000",
	"80,000 - 120,000",
	"120,000 - 160,000",
	"160,000 - 200,000",
	"200,000 - 250,000",
	"250,000 - 300,000",
	"Above 300,000",
}

var cloudPlatforms = []string{
	"AWS",
	"Google Cloud Platform (GCP)",
	"Microsoft Azure",
	"Alibaba Cloud",
	"DigitalOcean",
	"Oracle Cloud",
	"IBM Cloud",
}

var devopsTools = []string{
	"Docker",
	"Kubernetes",
	"Terraform",
	"Ansible",
	"Jenkins",
	"GitLab CI",
	"GitHub Actions",
	"CircleCI",
	"ArgoCD",
	"Helm",
	"Vagrant",
	"Puppet",
	"Chef",
}

var programmingLanguages = []string{
	"Python",
	"JavaScript",
	"Go",
	"Java",
	"Ruby",
	"Bash/Shell",
	"PowerShell",
	"TypeScript",
	"C#",
	"PHP",
	"Rust",
}

var monitoringTools = []string{
	"Prometheus",
	"Grafana",
	"Datadog",
	"New Relic",
	"ELK Stack",
	"Splunk",
	"Nagios",
	"Zabbix",
	"CloudWatch",
	"PagerDuty",
}

var databases = []string{
	"PostgreSQL",
	"MySQL",
	"MongoDB",
	"Redis",
	"Elasticsearch",
	"DynamoDB",
	"Cassandra",
	"Microsoft SQL Server",
	"Oracle Database",
	"MariaDB",
}

var vocabularies = map[Field][]string{
	FieldEmploymentStatus:     employmentStatuses,
	FieldExperienceLevel:      experienceLevels,
	FieldRoleFocus:            roleFocuses,
	FieldLocation:             locations,
	FieldCurrentSalaryRange:   salaryRanges,
	FieldDesiredSalaryRange:   salaryRanges,
	FieldCloudPlatforms:       cloudPlatforms,
	FieldDevopsTools:          devopsTools,
	FieldProgrammingLanguages: programmingLanguages,
	FieldMonitoringTools:      monitoringTools,
	FieldDatabases:            databases,
}

var labels = map[Field]string{
	FieldEmploymentStatus:     "employment status",
	FieldExperienceLevel:      "experience level",
	FieldRoleFocus:            "role focus",
	FieldLocation:             "location",
	FieldCurrentSalaryRange:   "current salary range",
	FieldDesiredSalaryRange:   "desired salary range",
	FieldCloudPlatforms:       "cloud platforms",
	FieldDevopsTools:          "DevOps tools",
	FieldProgrammingLanguages: "programming languages",
	FieldMonitoringTools:      "monitoring tools",
	FieldDatabases:            "databases",
}

var stringBounds = map[Field]int{
	FieldPreferredName:   100,
	FieldLinkedinProfile: 200,
}

// Vocabulary returns a copy of the closed value set for f. An unknown field
// is a programming error, not a runtime case.
func Vocabulary(f Field) []string {
	values, ok := vocabularies[f]
	if !ok {
		panic(fmt.Sprintf("submission: no vocabulary for field %q", f))
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Label returns the human-readable field name used in validation messages.
func Label(f Field) string {
	label, ok := labels[f]
	if !ok {
		panic(fmt.Sprintf("submission: no label for field %q", f))
	}
	return label
}

// StringBound returns the maximum length for a bounded string field.
func StringBound(f Field) int {
	bound, ok := stringBounds[f]
	if !ok {
		panic(fmt.Sprintf("submission: no string bound for field %q", f))
	}
	return bound
}

// SetBound returns the maximum number of entries for a collection field.
// Skill sets are capped at 20; everything else keeps the default of 50.
func SetBound(f Field) int {
	for _, sf := range SkillFields {
		if f == sf {
			return 20
		}
	}
	return 50
}

func inVocabulary(f Field, value string) bool {
	for _, v := range vocabularies[f] {
		if v == value {
			return true
		}
	}
	return false
}
