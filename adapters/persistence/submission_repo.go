package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/pkg/apperror"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

const uniqueViolationCode = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var submissionColumns = []string{
	"id", "email", "preferred_name", "linkedin_profile", "years_of_experience",
	"employment_status", "cloud_platforms", "devops_tools", "programming_languages",
	"monitoring_tools", "databases", "experience_level", "role_focus", "location",
	"current_salary_range", "desired_salary_range", "submitted_at", "created_at",
}

type postgresSubmissionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSubmissionRepo(db *pgxpool.Pool, log logger.Logger) submission.Repository {
	return &postgresSubmissionRepo{db: db, logger: log}
}

func scanSubmission(row pgx.Row) (*submission.Submission, error) {
	s := &submission.Submission{}
	err := row.Scan(
		&s.ID, &s.Email, &s.PreferredName, &s.LinkedinProfile, &s.YearsOfExperience,
		&s.EmploymentStatus, &s.CloudPlatforms, &s.DevopsTools, &s.ProgrammingLanguages,
		&s.MonitoringTools, &s.Databases, &s.ExperienceLevel, &s.RoleFocus, &s.Location,
		&s.CurrentSalaryRange, &s.DesiredSalaryRange, &s.SubmittedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, submission.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to scan submission row", err)
	}
	return s, nil
}

func (r *postgresSubmissionRepo) Insert(ctx context.Context, s *submission.Submission) error {
	query := `
		INSERT INTO waitlist_submissions (
			id, email, preferred_name, linkedin_profile, years_of_experience,
			employment_status, cloud_platforms, devops_tools, programming_languages,
			monitoring_tools, databases, experience_level, role_focus, location,
			current_salary_range, desired_salary_range, submitted_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Email, s.PreferredName, s.LinkedinProfile, s.YearsOfExperience,
		s.EmploymentStatus, s.CloudPlatforms, s.DevopsTools, s.ProgrammingLanguages,
		s.MonitoringTools, s.Databases, s.ExperienceLevel, s.RoleFocus, s.Location,
		s.CurrentSalaryRange, s.DesiredSalaryRange, s.SubmittedAt, s.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return submission.ErrDuplicateEmail
		}
		return apperror.NewInternal("failed to insert submission", err)
	}
	return nil
}

func (r *postgresSubmissionRepo) FindByEmail(ctx context.Context, email string) (*submission.Submission, error) {
	query, args, err := psql.Select(submissionColumns...).
		From("waitlist_submissions").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build submission query", err)
	}

	return scanSubmission(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresSubmissionRepo) ListAll(ctx context.Context) ([]*submission.Submission, error) {
	query, args, err := psql.Select(submissionColumns...).
		From("waitlist_submissions").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build submission list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list submissions", err)
	}
	defer rows.Close()

	submissions := make([]*submission.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating submission rows", err)
	}
	return submissions, nil
}
