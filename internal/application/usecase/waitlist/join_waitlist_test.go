package waitlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/pkg/apperror"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

// fakeSubmissionRepo keeps submissions in memory keyed by email, mirroring
// the store contract including ErrDuplicateEmail on a second insert.
type fakeSubmissionRepo struct {
	byEmail   map[string]*submission.Submission
	insertErr error
	findErr   error
	inserts   int
}

func newFakeRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{byEmail: make(map[string]*submission.Submission)}
}

func (r *fakeSubmissionRepo) Insert(_ context.Context, s *submission.Submission) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.byEmail[s.Email]; ok {
		return submission.ErrDuplicateEmail
	}
	r.inserts++
	r.byEmail[s.Email] = s
	return nil
}

func (r *fakeSubmissionRepo) FindByEmail(_ context.Context, email string) (*submission.Submission, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.byEmail[email]
	if !ok {
		return nil, submission.ErrNotFound
	}
	return s, nil
}

func (r *fakeSubmissionRepo) ListAll(_ context.Context) ([]*submission.Submission, error) {
	out := make([]*submission.Submission, 0, len(r.byEmail))
	for _, s := range r.byEmail {
		out = append(out, s)
	}
	return out, nil
}

func validJoinInput() submission.Input {
	return submission.Input{
		Email:              "a@b.com",
		YearsOfExperience:  float64(4),
		EmploymentStatus:   "Employed",
		CloudPlatforms:     []string{"AWS"},
		ExperienceLevel:    "Mid-level (3-5 years)",
		RoleFocus:          "SRE",
		Location:           "Cebu",
		CurrentSalaryRange: "80,000 - 120,000",
	}
}

func TestJoin_SuccessThenConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := NewJoinWaitlistUseCase(repo, nil, logger.NewNop())

	out, err := uc.Execute(context.Background(), validJoinInput())
	assert.NoError(t, err)
	assert.True(t, out.Persisted)
	assert.NotEmpty(t, out.Submission.ID)

	_, err = uc.Execute(context.Background(), validJoinInput())
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 1, repo.inserts, "second identical submission must not insert")
}

func TestJoin_NormalizedEmailCollides(t *testing.T) {
	repo := newFakeRepo()
	uc := NewJoinWaitlistUseCase(repo, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), validJoinInput())
	assert.NoError(t, err)

	in := validJoinInput()
	in.Email = "A@B.COM"
	_, err = uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestJoin_ValidationFailureNeverTouchesStore(t *testing.T) {
	repo := newFakeRepo()
	repo.findErr = errors.New("store must not be queried")
	uc := NewJoinWaitlistUseCase(repo, nil, logger.NewNop())

	in := validJoinInput()
	in.Location = "Mars"

	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "Invalid location")
	assert.Equal(t, 0, repo.inserts)
}

func TestJoin_InsertRaceLostReportsConflict(t *testing.T) {
	// The pre-insert read passed, but another request won the unique index.
	repo := newFakeRepo()
	repo.insertErr = submission.ErrDuplicateEmail
	uc := NewJoinWaitlistUseCase(repo, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), validJoinInput())
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestJoin_StoreFailureIsInternal(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("connection reset")
	uc := NewJoinWaitlistUseCase(repo, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), validJoinInput())
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestJoin_DegradedModeAcceptsWithoutPersisting(t *testing.T) {
	uc := NewJoinWaitlistUseCase(nil, nil, logger.NewNop())

	out, err := uc.Execute(context.Background(), validJoinInput())
	assert.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Equal(t, "a@b.com", out.Submission.Email)

	// No store means no duplicate detection either.
	out, err = uc.Execute(context.Background(), validJoinInput())
	assert.NoError(t, err)
	assert.False(t, out.Persisted)
}

func TestJoin_DegradedModeStillValidates(t *testing.T) {
	uc := NewJoinWaitlistUseCase(nil, nil, logger.NewNop())

	in := validJoinInput()
	in.Email = "nope"
	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
