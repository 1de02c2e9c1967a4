package waitlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devopscompass/waitlist-api/adapters/event"
	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/pkg/apperror"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

const (
	duplicateEmailMessage = "This email has already been registered on the waitlist."
	duplicateEmailHint    = "If you need to update your information, please contact us."
	persistFailureMessage = "Failed to process submission. Please try again."
)

// JoinWaitlistUseCase is the submission pipeline: validate, normalize,
// duplicate-check, persist, respond. A nil repository puts the pipeline in
// degraded mode: submissions are accepted without persistence or
// duplicate-checking (development fallback only).
type JoinWaitlistUseCase struct {
	repo        submission.Repository
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewJoinWaitlistUseCase(repo submission.Repository, kClient *event.KafkaProducerClient, log logger.Logger) *JoinWaitlistUseCase {
	return &JoinWaitlistUseCase{
		repo:        repo,
		kafkaClient: kClient,
		logger:      log,
	}
}

type JoinWaitlistOutput struct {
	Submission *submission.Submission
	Persisted  bool
}

func (uc *JoinWaitlistUseCase) Execute(ctx context.Context, input submission.Input) (*JoinWaitlistOutput, error) {
	sub, err := submission.ValidateAndNormalize(input)
	if err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	if uc.repo == nil {
		uc.logger.Warn("Waitlist submission accepted without persistence (store not configured)",
			zap.String("email", sub.Email))
		return &JoinWaitlistOutput{Submission: sub, Persisted: false}, nil
	}

	existing, err := uc.repo.FindByEmail(ctx, sub.Email)
	if err != nil && !errors.Is(err, submission.ErrNotFound) {
		return nil, apperror.NewInternal(persistFailureMessage, err)
	}
	if existing != nil {
		uc.logger.Warn("Duplicate email attempt", zap.String("email", sub.Email))
		return nil, apperror.NewConflict(duplicateEmailMessage, duplicateEmailHint)
	}

	sub.ID = uuid.New()
	sub.CreatedAt = time.Now().UTC()

	if err := uc.repo.Insert(ctx, sub); err != nil {
		// The unique index is the authoritative duplicate guard: two
		// concurrent requests can both pass the read above, but only one
		// insert wins.
		if errors.Is(err, submission.ErrDuplicateEmail) {
			uc.logger.Warn("Duplicate email lost insert race", zap.String("email", sub.Email))
			return nil, apperror.NewConflict(duplicateEmailMessage, duplicateEmailHint)
		}
		return nil, apperror.NewInternal(persistFailureMessage, err)
	}

	uc.logger.Info("Submission saved",
		zap.String("submission_id", sub.ID.String()),
		zap.String("role", sub.RoleFocus),
		zap.String("location", sub.Location))

	if uc.kafkaClient != nil {
		go func() {
			err := uc.kafkaClient.PublishWaitlistEvent(context.Background(), event.WaitlistEventPayload{
				EventType:    event.WaitlistEventTypeJoined,
				SubmissionID: sub.ID,
				RoleFocus:    sub.RoleFocus,
				Location:     sub.Location,
				OccurredAt:   sub.CreatedAt,
			})
			if err != nil {
				uc.logger.Error("Failed to publish Kafka 'joined' event", err,
					zap.String("submission_id", sub.ID.String()))
			}
		}()
	}

	return &JoinWaitlistOutput{Submission: sub, Persisted: true}, nil
}
