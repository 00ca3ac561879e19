package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"coursecred/internal/credential/models"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/circuit"
	"coursecred/pkg/platform/sentinel"
)

type PlatformClientSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	calls  atomic.Int32
}

func TestPlatformClientSuite(t *testing.T) {
	suite.Run(t, new(PlatformClientSuite))
}

func (s *PlatformClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.calls.Store(0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.mux.ServeHTTP(w, r)
	}))
}

func (s *PlatformClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *PlatformClientSuite) client(opts ...PlatformOption) *PlatformClient {
	return NewPlatformClient(s.server.URL+"/", "secret", opts...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *PlatformClientSuite) TestGradingPolicy() {
	s.mux.HandleFunc("/api/grades/v1/policy/courses/course-v1:OpenedX+DemoX+Demo/", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, []map[string]any{{"type": "Homework", "weight": 0.4}, {"type": "Exam", "weight": 0.6}})
	})

	policy, err := s.client().GradingPolicy(context.Background(), "course-v1:OpenedX+DemoX+Demo")
	s.Require().NoError(err)
	s.Equal([]models.CategoryWeight{{Category: "Homework", Weight: 0.4}, {Category: "Exam", Weight: 0.6}}, policy)
}

func (s *PlatformClientSuite) TestActiveEnrolleesFollowsCursor() {
	s.mux.HandleFunc("/api/enrollment/v1/enrollments", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("true", r.URL.Query().Get("is_active"))
		if r.URL.Query().Get("cursor") == "" {
			writeJSON(w, map[string]any{
				"results": []map[string]any{{"id": 1, "username": "ada", "is_active": true, "has_usable_password": true}},
				"next":    "page-2",
			})
			return
		}
		s.Equal("page-2", r.URL.Query().Get("cursor"))
		writeJSON(w, map[string]any{
			"results": []map[string]any{{"id": 2, "username": "grace", "name": "Grace Hopper"}},
		})
	})

	learners, err := s.client().ActiveEnrollees(context.Background(), "course-1")
	s.Require().NoError(err)
	s.Require().Len(learners, 2)
	s.Equal(models.LearnerID(1), learners[0].ID)
	s.True(learners[0].Notifiable())
	s.Equal("Grace Hopper", learners[1].DisplayName())
}

func (s *PlatformClientSuite) TestSubsectionScores() {
	s.mux.HandleFunc("/api/grades/v1/subsection_scores/course-1/", func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		var body struct {
			UserIDs []int64 `json:"user_ids"`
		}
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal([]int64{7}, body.UserIDs)
		writeJSON(w, map[string]any{
			"7": []map[string]any{{"assignment_type": "Homework", "earned": 3, "possible": 4}},
		})
	})

	scores, err := s.client().SubsectionScores(context.Background(), "course-1", []models.Learner{{ID: 7}})
	s.Require().NoError(err)
	s.Equal([]models.SubsectionScore{{Category: "Homework", Earned: 3, Possible: 4}}, scores[7])
}

func (s *PlatformClientSuite) TestCompletionPage() {
	s.mux.HandleFunc("/completion-aggregator/v1/course/course-1/", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("2", r.URL.Query().Get("page"))
		s.Equal("50", r.URL.Query().Get("page_size"))
		writeJSON(w, map[string]any{
			"results":    []map[string]any{{"username": "ada", "completion": map[string]any{"percent": 0.95}}},
			"pagination": map[string]any{"next": "http://platform/next"},
		})
	})

	page, err := s.client().CompletionPage(context.Background(), "course-1", 50, 2)
	s.Require().NoError(err)
	s.True(page.HasNextPage)
	s.Equal([]models.CompletionResult{{Username: "ada", Percent: 0.95}}, page.Results)
}

func (s *PlatformClientSuite) TestIDsByUsernames() {
	s.mux.HandleFunc("/api/user/v1/learners/lookup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 3, "username": "ada"}})
	})
	client := s.client()

	ids, err := client.IDsByUsernames(context.Background(), []string{"ada", "ghost"})
	s.Require().NoError(err)
	s.Equal([]models.LearnerID{3}, ids)

	s.T().Run("empty input skips the request", func(t *testing.T) {
		before := s.calls.Load()
		ids, err := client.IDsByUsernames(context.Background(), nil)
		s.NoError(err)
		s.Empty(ids)
		s.Equal(before, s.calls.Load())
	})
}

func (s *PlatformClientSuite) TestTitles() {
	s.mux.HandleFunc("/api/courses/v1/courses/course-1/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "Demo Course"})
	})
	s.mux.HandleFunc("/api/learning_paths/v1/learning-paths/path-1/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"display_name": "Demo Path"})
	})
	client := s.client()

	title, err := client.CourseTitle(context.Background(), "course-1")
	s.Require().NoError(err)
	s.Equal("Demo Course", title)

	title, err = client.LearningPathTitle(context.Background(), "path-1")
	s.Require().NoError(err)
	s.Equal("Demo Path", title)
}

func (s *PlatformClientSuite) TestErrorMapping() {
	s.mux.HandleFunc("/api/user/v1/learners/404", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	s.mux.HandleFunc("/api/user/v1/learners/429", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	s.mux.HandleFunc("/api/user/v1/learners/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s.mux.HandleFunc("/api/user/v1/learners/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	client := s.client()

	s.T().Run("not found", func(t *testing.T) {
		_, err := client.Learner(context.Background(), 404)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
	s.T().Run("rate limited", func(t *testing.T) {
		_, err := client.Learner(context.Background(), 429)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
	s.T().Run("server error", func(t *testing.T) {
		_, err := client.Learner(context.Background(), 500)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
	s.T().Run("malformed body", func(t *testing.T) {
		_, err := client.Learner(context.Background(), 1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *PlatformClientSuite) TestBreakerOpensAfterFailures() {
	s.mux.HandleFunc("/api/courses/v1/courses/broken/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	s.mux.HandleFunc("/api/courses/v1/courses/missing/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	breaker := circuit.New("platform", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	client := s.client(WithBreaker(breaker))

	for range 3 {
		_, err := client.CourseTitle(context.Background(), "missing")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	}
	s.Equal(circuit.StateClosed, breaker.State())

	for range 2 {
		_, err := client.CourseTitle(context.Background(), "broken")
		s.Require().Error(err)
	}
	s.Equal(circuit.StateOpen, breaker.State())

	before := s.calls.Load()
	_, err := client.CourseTitle(context.Background(), "broken")
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.ErrorIs(err, circuit.ErrOpen)
	s.Equal(before, s.calls.Load(), "open circuit must not reach the platform")
}

func (s *PlatformClientSuite) TestRateLimitWaitHonoursContext() {
	s.mux.HandleFunc("/api/courses/v1/courses/course-1/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "Demo Course"})
	})
	client := s.client(WithRateLimit(0.001, 1))

	_, err := client.CourseTitle(context.Background(), "course-1")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.CourseTitle(ctx, "course-1")
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.Equal(int32(1), s.calls.Load())
}
