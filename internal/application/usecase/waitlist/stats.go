package waitlist

import (
	"context"

	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/pkg/apperror"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

// Stats is the aggregate view over every stored submission. Each histogram
// sums to Total within its category.
type Stats struct {
	Total             int            `json:"total"`
	ByRole            map[string]int `json:"byRole"`
	ByLocation        map[string]int `json:"byLocation"`
	ByExperienceLevel map[string]int `json:"byExperienceLevel"`
	BySalaryRange     map[string]int `json:"bySalaryRange"`
	TopSkills         SkillStats     `json:"topSkills"`
	EmploymentStatus  map[string]int `json:"employmentStatus"`
}

type SkillStats struct {
	CloudPlatforms       map[string]int `json:"cloudPlatforms"`
	DevopsTools          map[string]int `json:"devopsTools"`
	ProgrammingLanguages map[string]int `json:"programmingLanguages"`
}

type StatsUseCase struct {
	repo   submission.Repository
	logger logger.Logger
}

func NewStatsUseCase(repo submission.Repository, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{repo: repo, logger: log}
}

// Execute recomputes the histograms from scratch on every call; there is no
// caching, so the result is deterministic given the store's contents.
func (uc *StatsUseCase) Execute(ctx context.Context) (*Stats, error) {
	if uc.repo == nil {
		return nil, apperror.NewUnavailable("Database not configured")
	}

	submissions, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch statistics", err)
	}

	stats := &Stats{
		Total:             len(submissions),
		ByRole:            map[string]int{},
		ByLocation:        map[string]int{},
		ByExperienceLevel: map[string]int{},
		BySalaryRange:     map[string]int{},
		EmploymentStatus:  map[string]int{},
		TopSkills: SkillStats{
			CloudPlatforms:       map[string]int{},
			DevopsTools:          map[string]int{},
			ProgrammingLanguages: map[string]int{},
		},
	}

	for _, sub := range submissions {
		stats.ByRole[sub.RoleFocus]++
		stats.ByLocation[sub.Location]++
		stats.ByExperienceLevel[sub.ExperienceLevel]++
		stats.BySalaryRange[sub.CurrentSalaryRange]++
		stats.EmploymentStatus[sub.EmploymentStatus]++

		for _, skill := range sub.CloudPlatforms {
			stats.TopSkills.CloudPlatforms[skill]++
		}
		for _, skill := range sub.DevopsTools {
			stats.TopSkills.DevopsTools[skill]++
		}
		for _, skill := range sub.ProgrammingLanguages {
			stats.TopSkills.ProgrammingLanguages[skill]++
		}
	}

	return stats, nil
}
