package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	waitlistUC "github.com/devopscompass/waitlist-api/internal/application/usecase/waitlist"
	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/pkg/apperror"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

type WaitlistHandler struct {
	joinUseCase  *waitlistUC.JoinWaitlistUseCase
	statsUseCase *waitlistUC.StatsUseCase
	logger       logger.Logger
}

func NewWaitlistHandler(joinUC *waitlistUC.JoinWaitlistUseCase, statsUC *waitlistUC.StatsUseCase, log logger.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		joinUseCase:  joinUC,
		statsUseCase: statsUC,
		logger:       log,
	}
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Oversized chunked bodies have no Content-Length and surface here
		// through MaxBytesReader instead of the middleware's early check.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.Error(apperror.NewValidation("Invalid request body"))
		return
	}

	output, err := h.joinUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	if !output.Persisted {
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Successfully joined the waitlist (dev mode - not saved to database)",
			"data":    output.Submission,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Successfully joined the waitlist",
		"id":      output.Submission.ID.String(),
	})
}

func (h *WaitlistHandler) Stats(c *gin.Context) {
	stats, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Schema serves the registry itself so clients render selectable options from
// the same source of truth the validator consults.
func (h *WaitlistHandler) Schema(c *gin.Context) {
	skills := gin.H{}
	for _, f := range submission.SkillFields {
		skills[string(f)] = gin.H{
			"values":   submission.Vocabulary(f),
			"maxItems": submission.SetBound(f),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"employmentStatus": submission.Vocabulary(submission.FieldEmploymentStatus),
		"experienceLevel":  submission.Vocabulary(submission.FieldExperienceLevel),
		"roleFocus":        submission.Vocabulary(submission.FieldRoleFocus),
		"location":         submission.Vocabulary(submission.FieldLocation),
		"salaryRanges":     submission.Vocabulary(submission.FieldCurrentSalaryRange),
		"skills":           skills,
		"limits": gin.H{
			"preferredName":   submission.StringBound(submission.FieldPreferredName),
			"linkedinProfile": submission.StringBound(submission.FieldLinkedinProfile),
		},
	})
}
