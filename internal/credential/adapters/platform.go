// Package adapters connects the credential pipeline to the host learning
// platform and to the notification bus.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/circuit"
	"coursecred/pkg/platform/sentinel"
)

const (
	defaultTimeout   = 10 * time.Second
	// maxResponseBytes bounds a single platform response body.
	maxResponseBytes = 32 << 20
)

var (
	_ ports.GradingPolicySource = (*PlatformClient)(nil)
	_ ports.EnrollmentSource    = (*PlatformClient)(nil)
	_ ports.GradeSource         = (*PlatformClient)(nil)
	_ ports.CompletionSource    = (*PlatformClient)(nil)
	_ ports.LearnerDirectory    = (*PlatformClient)(nil)
	_ ports.CourseCatalog       = (*PlatformClient)(nil)
	_ ports.LearningPathCatalog = (*PlatformClient)(nil)
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// PlatformClient implements the host collaborator ports against the
// learning platform's REST API. Calls are rate limited and guarded by a
// circuit breaker; they are never retried.
type PlatformClient struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	limiter *rate.Limiter
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type PlatformOption func(*PlatformClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client HTTPDoer) PlatformOption {
	return func(c *PlatformClient) { c.client = client }
}

// WithRateLimit caps outgoing requests per second with the given burst.
func WithRateLimit(perSecond float64, burst int) PlatformOption {
	return func(c *PlatformClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

func WithBreaker(b *circuit.Breaker) PlatformOption {
	return func(c *PlatformClient) { c.breaker = b }
}

func WithPlatformLogger(logger *slog.Logger) PlatformOption {
	return func(c *PlatformClient) { c.logger = logger }
}

func NewPlatformClient(baseURL, apiKey string, opts ...PlatformOption) *PlatformClient {
	c := &PlatformClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
		breaker: circuit.New("platform"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type gradingPolicyEntry struct {
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// GradingPolicy returns the weighted assignment types of a course.
func (c *PlatformClient) GradingPolicy(ctx context.Context, resourceID string) ([]models.CategoryWeight, error) {
	var entries []gradingPolicyEntry
	if err := c.get(ctx, "/api/grades/v1/policy/courses/"+url.PathEscape(resourceID)+"/", nil, &entries); err != nil {
		return nil, err
	}
	policy := make([]models.CategoryWeight, 0, len(entries))
	for _, e := range entries {
		policy = append(policy, models.CategoryWeight{Category: e.Type, Weight: e.Weight})
	}
	return policy, nil
}

type learnerPayload struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	IsActive          bool   `json:"is_active"`
	HasUsablePassword bool   `json:"has_usable_password"`
}

func (p learnerPayload) toModel() models.Learner {
	return models.Learner{
		ID:                models.LearnerID(p.ID),
		Username:          p.Username,
		Email:             p.Email,
		ProfileName:       p.Name,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Active:            p.IsActive,
		HasUsablePassword: p.HasUsablePassword,
	}
}

type enrollmentPage struct {
	Results []learnerPayload `json:"results"`
	Next    string           `json:"next"`
}

// ActiveEnrollees follows the enrollment cursor until the platform reports
// no next page.
func (c *PlatformClient) ActiveEnrollees(ctx context.Context, resourceID string) ([]models.Learner, error) {
	query := url.Values{"course_id": {resourceID}, "is_active": {"true"}}
	var learners []models.Learner
	for {
		var page enrollmentPage
		if err := c.get(ctx, "/api/enrollment/v1/enrollments", query, &page); err != nil {
			return nil, err
		}
		for _, p := range page.Results {
			learners = append(learners, p.toModel())
		}
		if page.Next == "" {
			return learners, nil
		}
		query = url.Values{"course_id": {resourceID}, "is_active": {"true"}, "cursor": {page.Next}}
	}
}

type subsectionRequest struct {
	LearnerIDs []int64 `json:"user_ids"`
}

type subsectionScore struct {
	Type     string  `json:"assignment_type"`
	Earned   float64 `json:"earned"`
	Possible float64 `json:"possible"`
}

// SubsectionScores returns the graded subsection totals of the given learners.
func (c *PlatformClient) SubsectionScores(ctx context.Context, resourceID string, learners []models.Learner) (map[models.LearnerID][]models.SubsectionScore, error) {
	body := subsectionRequest{LearnerIDs: make([]int64, 0, len(learners))}
	for _, l := range learners {
		body.LearnerIDs = append(body.LearnerIDs, int64(l.ID))
	}
	var raw map[string][]subsectionScore
	if err := c.post(ctx, "/api/grades/v1/subsection_scores/"+url.PathEscape(resourceID)+"/", body, &raw); err != nil {
		return nil, err
	}
	scores := make(map[models.LearnerID][]models.SubsectionScore, len(raw))
	for key, rows := range raw {
		id, err := models.ParseLearnerID(key)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "platform returned an invalid learner id")
		}
		converted := make([]models.SubsectionScore, 0, len(rows))
		for _, row := range rows {
			converted = append(converted, models.SubsectionScore{Category: row.Type, Earned: row.Earned, Possible: row.Possible})
		}
		scores[id] = converted
	}
	return scores, nil
}

type completionPayload struct {
	Results []struct {
		Username   string `json:"username"`
		Completion struct {
			Percent float64 `json:"percent"`
		} `json:"completion"`
	} `json:"results"`
	Pagination struct {
		Next string `json:"next"`
	} `json:"pagination"`
}

// CompletionPage fetches one page of completion aggregates.
func (c *PlatformClient) CompletionPage(ctx context.Context, resourceID string, pageSize, page int) (*models.CompletionPage, error) {
	query := url.Values{"page_size": {strconv.Itoa(pageSize)}, "page": {strconv.Itoa(page)}}
	var payload completionPayload
	if err := c.get(ctx, "/completion-aggregator/v1/course/"+url.PathEscape(resourceID)+"/", query, &payload); err != nil {
		return nil, err
	}
	out := &models.CompletionPage{
		Results:     make([]models.CompletionResult, 0, len(payload.Results)),
		HasNextPage: payload.Pagination.Next != "",
	}
	for _, r := range payload.Results {
		out.Results = append(out.Results, models.CompletionResult{Username: r.Username, Percent: r.Completion.Percent})
	}
	return out, nil
}

func (c *PlatformClient) Learner(ctx context.Context, id models.LearnerID) (*models.Learner, error) {
	var payload learnerPayload
	if err := c.get(ctx, "/api/user/v1/learners/"+id.String(), nil, &payload); err != nil {
		return nil, err
	}
	learner := payload.toModel()
	return &learner, nil
}

// IDsByUsernames resolves usernames to learner ids. Unknown usernames are
// omitted.
func (c *PlatformClient) IDsByUsernames(ctx context.Context, usernames []string) ([]models.LearnerID, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var payload []learnerPayload
	if err := c.post(ctx, "/api/user/v1/learners/lookup", map[string][]string{"usernames": usernames}, &payload); err != nil {
		return nil, err
	}
	ids := make([]models.LearnerID, 0, len(payload))
	for _, p := range payload {
		ids = append(ids, models.LearnerID(p.ID))
	}
	return ids, nil
}

func (c *PlatformClient) CourseTitle(ctx context.Context, courseID string) (string, error) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.get(ctx, "/api/courses/v1/courses/"+url.PathEscape(courseID)+"/", nil, &payload); err != nil {
		return "", err
	}
	return payload.Name, nil
}

func (c *PlatformClient) LearningPathTitle(ctx context.Context, pathID string) (string, error) {
	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.get(ctx, "/api/learning_paths/v1/learning-paths/"+url.PathEscape(pathID)+"/", nil, &payload); err != nil {
		return "", err
	}
	return payload.DisplayName, nil
}

func (c *PlatformClient) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create platform request")
	}
	return c.do(req, out)
}

func (c *PlatformClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal platform request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create platform request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *PlatformClient) do(req *http.Request, out any) error {
	ctx := req.Context()
	if err := c.breaker.Allow(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "learning platform circuit open")
	}
	err := c.exchange(req, out)
	// Not-found answers mean the platform is healthy.
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		c.breaker.Record(err)
		c.logger.WarnContext(ctx, "platform request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return err
	}
	c.breaker.Record(nil)
	return err
}

func (c *PlatformClient) exchange(req *http.Request, out any) error {
	ctx := req.Context()
	if err := c.limiter.Wait(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "platform rate limit wait aborted")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "platform request timeout")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to execute platform request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read platform response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &dErrors.Error{
			Code:    dErrors.CodeNotFound,
			Message: fmt.Sprintf("platform resource not found: %s", req.URL.Path),
			Err:     sentinel.ErrNotFound,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		return dErrors.New(dErrors.CodeUnavailable, "platform rate limit exceeded")
	case resp.StatusCode >= http.StatusBadRequest:
		return dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("platform returned status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to decode platform response")
	}
	return nil
}
