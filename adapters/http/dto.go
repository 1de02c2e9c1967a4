package http

import (
	"github.com/devopscompass/waitlist-api/internal/domain/submission"
)

// JoinWaitlistRequest mirrors the public submission payload. YearsOfExperience
// is `any` because the contract accepts both a number and a numeric string.
type JoinWaitlistRequest struct {
	Email                string   `json:"email"`
	PreferredName        string   `json:"preferredName"`
	LinkedinProfile      string   `json:"linkedinProfile"`
	YearsOfExperience    any      `json:"yearsOfExperience"`
	EmploymentStatus     string   `json:"employmentStatus"`
	CloudPlatforms       []string `json:"cloudPlatforms"`
	DevopsTools          []string `json:"devopsTools"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	MonitoringTools      []string `json:"monitoringTools"`
	Databases            []string `json:"databases"`
	ExperienceLevel      string   `json:"experienceLevel"`
	RoleFocus            string   `json:"roleFocus"`
	Location             string   `json:"location"`
	CurrentSalaryRange   string   `json:"currentSalaryRange"`
	DesiredSalaryRange   string   `json:"desiredSalaryRange"`
}

func (r *JoinWaitlistRequest) ToInput() submission.Input {
	return submission.Input{
		Email:                r.Email,
		PreferredName:        r.PreferredName,
		LinkedinProfile:      r.LinkedinProfile,
		YearsOfExperience:    r.YearsOfExperience,
		EmploymentStatus:     r.EmploymentStatus,
		CloudPlatforms:       r.CloudPlatforms,
		DevopsTools:          r.DevopsTools,
		ProgrammingLanguages: r.ProgrammingLanguages,
		MonitoringTools:      r.MonitoringTools,
		Databases:            r.Databases,
		ExperienceLevel:      r.ExperienceLevel,
		RoleFocus:            r.RoleFocus,
		Location:             r.Location,
		CurrentSalaryRange:   r.CurrentSalaryRange,
		DesiredSalaryRange:   r.DesiredSalaryRange,
	}
}
