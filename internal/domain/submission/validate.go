package submission

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	linkedinPattern = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[\w-]+/?$`)
)

// Input is the raw, untrusted submission as decoded from the request body.
// YearsOfExperience is `any` because clients send it as a number or a numeric
// string.
type Input struct {
	Email                string
	PreferredName        string
	LinkedinProfile      string
	YearsOfExperience    any
	EmploymentStatus     string
	CloudPlatforms       []string
	DevopsTools          []string
	ProgrammingLanguages []string
	MonitoringTools      []string
	Databases            []string
	ExperienceLevel      string
	RoleFocus            string
	Location             string
	CurrentSalaryRange   string
	DesiredSalaryRange   string
}

// ValidateEmail accepts a plain local@domain.tld shape and nothing fancier.
func ValidateEmail(s string) error {
	if !emailPattern.MatchString(s) {
		return errors.New("Invalid email address")
	}
	return nil
}

// ValidateBoundedString enforces the registry's length bound for f.
func ValidateBoundedString(s string, f Field) error {
	if len(s) > StringBound(f) {
		switch f {
		case FieldPreferredName:
			return fmt.Errorf("Preferred name is too long (maximum %d characters)", StringBound(f))
		case FieldLinkedinProfile:
			return fmt.Errorf("LinkedIn URL is too long (maximum %d characters)", StringBound(f))
		default:
			return fmt.Errorf("%s is too long (maximum %d characters)", Label(f), StringBound(f))
		}
	}
	return nil
}

// ValidateLinkedIn accepts an empty value or a LinkedIn profile URL.
func ValidateLinkedIn(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if !linkedinPattern.MatchString(trimmed) {
		return errors.New("Invalid LinkedIn URL format. Must be like: https://linkedin.com/in/yourprofile")
	}
	return nil
}

// ValidateYears coerces a number or numeric string to a non-negative float.
// The coerced value replaces the raw input downstream.
func ValidateYears(v any) (float64, error) {
	switch years := v.(type) {
	case nil:
		return 0, errors.New("Years of experience is required")
	case float64:
		if years < 0 {
			return 0, errors.New("Years of experience must be a valid positive number")
		}
		return years, nil
	case string:
		if years == "" {
			return 0, errors.New("Years of experience is required")
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(years), 64)
		if err != nil || parsed < 0 {
			return 0, errors.New("Years of experience must be a valid positive number")
		}
		return parsed, nil
	default:
		return 0, errors.New("Years of experience must be a valid positive number")
	}
}

// ValidateEnum requires v to be present and a member of f's vocabulary.
func ValidateEnum(v string, f Field) error {
	if v == "" || !inVocabulary(f, v) {
		return fmt.Errorf("Invalid %s. Must be one of: %s", Label(f), strings.Join(Vocabulary(f), ", "))
	}
	return nil
}

// ValidateStringSet checks a bounded collection against f's vocabulary. An
// empty or absent set is valid; the aggregate skill minimum is enforced by
// the pipeline, not here.
func ValidateStringSet(values []string, f Field) error {
	if len(values) == 0 {
		return nil
	}
	if len(values) > SetBound(f) {
		return fmt.Errorf("%s has too many items (maximum %d)", Label(f), SetBound(f))
	}
	for _, item := range values {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("%s contains empty values", Label(f))
		}
		if !inVocabulary(f, item) {
			return fmt.Errorf("Invalid %s: %s", Label(f), item)
		}
	}
	return nil
}

// ValidateAndNormalize runs every field check in the fixed order of the
// public contract, short-circuiting at the first failure, and returns the
// normalized Submission: lowercased/trimmed email, nil-if-empty optionals,
// coerced years, and non-nil skill slices. ID and CreatedAt are left for the
// store to assign.
func ValidateAndNormalize(in Input) (*Submission, error) {
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := ValidateBoundedString(in.PreferredName, FieldPreferredName); err != nil {
		return nil, err
	}
	if err := ValidateBoundedString(in.LinkedinProfile, FieldLinkedinProfile); err != nil {
		return nil, err
	}
	if err := ValidateLinkedIn(in.LinkedinProfile); err != nil {
		return nil, err
	}
	years, err := ValidateYears(in.YearsOfExperience)
	if err != nil {
		return nil, err
	}
	if err := ValidateEnum(in.EmploymentStatus, FieldEmploymentStatus); err != nil {
		return nil, err
	}

	skillSets := map[Field][]string{
		FieldCloudPlatforms:       in.CloudPlatforms,
		FieldDevopsTools:          in.DevopsTools,
		FieldProgrammingLanguages: in.ProgrammingLanguages,
		FieldMonitoringTools:      in.MonitoringTools,
		FieldDatabases:            in.Databases,
	}
	totalSkills := 0
	for _, f := range SkillFields {
		if err := ValidateStringSet(skillSets[f], f); err != nil {
			return nil, err
		}
		totalSkills += len(skillSets[f])
	}
	if totalSkills == 0 {
		return nil, errors.New("At least one skill must be selected")
	}

	if err := ValidateEnum(in.ExperienceLevel, FieldExperienceLevel); err != nil {
		return nil, err
	}
	if err := ValidateEnum(in.RoleFocus, FieldRoleFocus); err != nil {
		return nil, err
	}
	if err := ValidateEnum(in.Location, FieldLocation); err != nil {
		return nil, err
	}
	if err := ValidateEnum(in.CurrentSalaryRange, FieldCurrentSalaryRange); err != nil {
		return nil, err
	}
	if in.DesiredSalaryRange != "" {
		if err := ValidateEnum(in.DesiredSalaryRange, FieldDesiredSalaryRange); err != nil {
			return nil, err
		}
	}

	return &Submission{
		Email:                strings.ToLower(strings.TrimSpace(in.Email)),
		PreferredName:        trimmedOrNil(in.PreferredName),
		LinkedinProfile:      trimmedOrNil(in.LinkedinProfile),
		YearsOfExperience:    years,
		EmploymentStatus:     in.EmploymentStatus,
		CloudPlatforms:       orEmpty(in.CloudPlatforms),
		DevopsTools:          orEmpty(in.DevopsTools),
		ProgrammingLanguages: orEmpty(in.ProgrammingLanguages),
		MonitoringTools:      orEmpty(in.MonitoringTools),
		Databases:            orEmpty(in.Databases),
		ExperienceLevel:      in.ExperienceLevel,
		RoleFocus:            in.RoleFocus,
		Location:             in.Location,
		CurrentSalaryRange:   in.CurrentSalaryRange,
		DesiredSalaryRange:   trimmedOrNil(in.DesiredSalaryRange),
		SubmittedAt:          time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func trimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
