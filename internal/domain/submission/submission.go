package submission

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("submission not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Submission is the single persisted entity: one anonymous career-survey
// entry. Once written it is never updated or deleted.
type Submission struct {
	ID                   uuid.UUID `json:"id"`
	Email                string    `json:"email"`
	PreferredName        *string   `json:"preferredName"`
	LinkedinProfile      *string   `json:"linkedinProfile"`
	YearsOfExperience    float64   `json:"yearsOfExperience"`
	EmploymentStatus     string    `json:"employmentStatus"`
	CloudPlatforms       []string  `json:"cloudPlatforms"`
	DevopsTools          []string  `json:"devopsTools"`
	ProgrammingLanguages []string  `json:"programmingLanguages"`
	MonitoringTools      []string  `json:"monitoringTools"`
	Databases            []string  `json:"databases"`
	ExperienceLevel      string    `json:"experienceLevel"`
	RoleFocus            string    `json:"roleFocus"`
	Location             string    `json:"location"`
	CurrentSalaryRange   string    `json:"currentSalaryRange"`
	DesiredSalaryRange   *string   `json:"desiredSalaryRange"`
	SubmittedAt          string    `json:"submittedAt"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Repository is the durable store contract. FindByEmail returns ErrNotFound
// when no row matches; Insert returns ErrDuplicateEmail when the store's
// uniqueness guarantee rejects the row.
type Repository interface {
	Insert(ctx context.Context, s *Submission) error
	FindByEmail(ctx context.Context, email string) (*Submission, error)
	ListAll(ctx context.Context) ([]*Submission, error)
}
