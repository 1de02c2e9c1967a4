package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	waitlistUC "github.com/devopscompass/waitlist-api/internal/application/usecase/waitlist"
	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/internal/ratelimit"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

type memorySubmissionRepo struct {
	byEmail map[string]*submission.Submission
}

func newMemoryRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{byEmail: make(map[string]*submission.Submission)}
}

func (r *memorySubmissionRepo) Insert(_ context.Context, s *submission.Submission) error {
	if _, ok := r.byEmail[s.Email]; ok {
		return submission.ErrDuplicateEmail
	}
	r.byEmail[s.Email] = s
	return nil
}

func (r *memorySubmissionRepo) FindByEmail(_ context.Context, email string) (*submission.Submission, error) {
	s, ok := r.byEmail[email]
	if !ok {
		return nil, submission.ErrNotFound
	}
	return s, nil
}

func (r *memorySubmissionRepo) ListAll(_ context.Context) ([]*submission.Submission, error) {
	out := make([]*submission.Submission, 0, len(r.byEmail))
	for _, s := range r.byEmail {
		out = append(out, s)
	}
	return out, nil
}

type WaitlistHandlerTestSuite struct {
	suite.Suite
	repo   *memorySubmissionRepo
	router *gin.Engine
}

func TestWaitlistHandler(t *testing.T) {
	suite.Run(t, new(WaitlistHandlerTestSuite))
}

func (s *WaitlistHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.repo = newMemoryRepo()
	s.router = s.buildRouter(s.repo, 1000)
}

func (s *WaitlistHandlerTestSuite) buildRouter(repo submission.Repository, submissionMax int) *gin.Engine {
	log := logger.NewNop()
	store := ratelimit.NewMemoryStore()

	joinUC := waitlistUC.NewJoinWaitlistUseCase(repo, nil, log)
	statsUC := waitlistUC.NewStatsUseCase(repo, log)

	return NewRouter(RouterDeps{
		Logger:            log,
		Env:               "production",
		MaxBodyBytes:      10 * 1024,
		SubmissionLimiter: ratelimit.NewLimiter(store, "submission", 15*time.Minute, submissionMax),
		GeneralLimiter:    ratelimit.NewLimiter(store, "general", time.Minute, 1000),
		Waitlist:          NewWaitlistHandler(joinUC, statsUC, log),
		Health:            NewHealthHandler(nil),
	})
}

func (s *WaitlistHandlerTestSuite) do(router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:52100"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	parsed := map[string]any{}
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func validPayload() gin.H {
	return gin.H{
		"email":              "a@b.com",
		"yearsOfExperience":  4,
		"employmentStatus":   "Employed",
		"cloudPlatforms":     []string{"AWS"},
		"experienceLevel":    "Mid-level (3-5 years)",
		"roleFocus":          "SRE",
		"location":           "Cebu",
		"currentSalaryRange": "80,000 - 120,000",
	}
}

func (s *WaitlistHandlerTestSuite) Test_Join_ThenDuplicate() {
	rec, body := s.do(s.router, http.MethodPost, "/api/waitlist", validPayload())
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(true, body["success"])
	s.Equal("Successfully joined the waitlist", body["message"])
	s.NotEmpty(body["id"])

	rec, body = s.do(s.router, http.MethodPost, "/api/waitlist", validPayload())
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("This email has already been registered on the waitlist.", body["error"])
	s.Equal("If you need to update your information, please contact us.", body["message"])
}

func (s *WaitlistHandlerTestSuite) Test_Join_YearsAsString() {
	payload := validPayload()
	payload["yearsOfExperience"] = "4"

	rec, _ := s.do(s.router, http.MethodPost, "/api/waitlist", payload)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(float64(4), s.repo.byEmail["a@b.com"].YearsOfExperience)
}

func (s *WaitlistHandlerTestSuite) Test_Join_UnknownLocation() {
	payload := validPayload()
	payload["location"] = "Mars"

	rec, body := s.do(s.router, http.MethodPost, "/api/waitlist", payload)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(body["error"], "Invalid location")
	s.Empty(s.repo.byEmail, "store must stay untouched on validation failure")
}

func (s *WaitlistHandlerTestSuite) Test_Join_NoSkills() {
	payload := validPayload()
	delete(payload, "cloudPlatforms")

	rec, body := s.do(s.router, http.MethodPost, "/api/waitlist", payload)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("At least one skill must be selected", body["error"])
}

func (s *WaitlistHandlerTestSuite) Test_Join_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *WaitlistHandlerTestSuite) Test_Join_RateLimited() {
	router := s.buildRouter(newMemoryRepo(), 5)

	for i := 0; i < 5; i++ {
		payload := validPayload()
		payload["location"] = "Mars" // outcome is irrelevant to the counter
		rec, _ := s.do(router, http.MethodPost, "/api/waitlist", payload)
		s.Equal(http.StatusBadRequest, rec.Code)
	}

	rec, body := s.do(router, http.MethodPost, "/api/waitlist", validPayload())
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("Too many requests from this IP, please try again after 15 minutes.", body["error"])
	s.Equal("15 minutes", body["retryAfter"])
}

func (s *WaitlistHandlerTestSuite) Test_Join_OversizedBody() {
	payload := validPayload()
	payload["preferredName"] = strings.Repeat("x", 11*1024)

	rec, body := s.do(s.router, http.MethodPost, "/api/waitlist", payload)
	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Equal("Request body too large", body["error"])
}

func (s *WaitlistHandlerTestSuite) Test_Join_OversizedBodyWithoutContentLength() {
	payload := validPayload()
	payload["preferredName"] = strings.Repeat("x", 11*1024)
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1 // chunked transfer: length unknown up front
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	body := map[string]any{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Request body too large", body["error"])
}

func (s *WaitlistHandlerTestSuite) Test_Stats() {
	for _, email := range []string{"a@b.com", "c@d.com", "e@f.com"} {
		payload := validPayload()
		payload["email"] = email
		rec, _ := s.do(s.router, http.MethodPost, "/api/waitlist", payload)
		s.Require().Equal(http.StatusCreated, rec.Code)
	}

	rec, body := s.do(s.router, http.MethodGet, "/api/waitlist/stats", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(float64(3), body["total"])
	byRole := body["byRole"].(map[string]any)
	s.Equal(float64(3), byRole["SRE"])
	topSkills := body["topSkills"].(map[string]any)
	s.Equal(float64(3), topSkills["cloudPlatforms"].(map[string]any)["AWS"])
}

func (s *WaitlistHandlerTestSuite) Test_Stats_StoreNotConfigured() {
	router := s.buildRouter(nil, 1000)
	rec, body := s.do(router, http.MethodGet, "/api/waitlist/stats", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("Database not configured", body["error"])
}

func (s *WaitlistHandlerTestSuite) Test_Schema() {
	rec, body := s.do(s.router, http.MethodGet, "/api/waitlist/schema", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Len(body["employmentStatus"], 3)
	s.Len(body["salaryRanges"], 8)
	skills := body["skills"].(map[string]any)
	cloud := skills["cloudPlatforms"].(map[string]any)
	s.Equal(float64(20), cloud["maxItems"])
	s.Len(cloud["values"], 7)
}

func (s *WaitlistHandlerTestSuite) Test_Health() {
	rec, body := s.do(s.router, http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", body["status"])
	s.Equal("not configured", body["database"])
}

func (s *WaitlistHandlerTestSuite) Test_Liveness() {
	rec, body := s.do(s.router, http.MethodGet, "/", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(ServiceName, body["service"])
}

func (s *WaitlistHandlerTestSuite) Test_UnknownRoute() {
	rec, body := s.do(s.router, http.MethodGet, "/api/nope", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Endpoint not found", body["error"])
}
