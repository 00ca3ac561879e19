// Package render composes learner specific text onto a PDF template and
// publishes the sealed artifact.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	"coursecred/internal/credential/strategy"
	dErrors "coursecred/pkg/domain-errors"
)

// Publisher stores an artifact for a credential and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, id models.CredentialID, data []byte) (string, error)
}

// Renderer is the generate_pdf_credential strategy.
type Renderer struct {
	assets        ports.AssetResolver
	courses       ports.CourseCatalog
	learningPaths ports.LearningPathCatalog
	publisher     Publisher
	engine        Engine
	dates         DateFormatter
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLearningPaths enables learning path title lookups.
func WithLearningPaths(c ports.LearningPathCatalog) Option {
	return func(r *Renderer) { r.learningPaths = c }
}

// WithEngine replaces the PDF merge and encryption engine.
func WithEngine(e Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

// WithDateFormatter sets the issue date formatter.
func WithDateFormatter(f DateFormatter) Option {
	return func(r *Renderer) { r.dates = f }
}

// WithClock overrides the issue date clock.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

func New(assets ports.AssetResolver, courses ports.CourseCatalog, publisher Publisher, opts ...Option) *Renderer {
	r := &Renderer{
		assets:    assets,
		courses:   courses,
		publisher: publisher,
		engine:    NewPDFCPUEngine(),
		dates:     NewDateFormatter("", "", nil),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckOptions validates render options; it is the registry check of the strategy.
func CheckOptions(opts models.Options) error {
	_, err := models.DecodeRenderOptions(opts)
	return err
}

// Generate renders the credential and returns its public URL.
func (r *Renderer) Generate(ctx context.Context, req strategy.GenerationRequest) (string, error) {
	opts, err := models.DecodeRenderOptions(req.Options)
	if err != nil {
		return "", err
	}
	r.logger.InfoContext(ctx, "starting credential render",
		"learner_id", req.Learner.ID,
		"credential_id", req.CredentialID.String(),
	)

	resourceName, err := r.resourceName(ctx, req.Resource, opts)
	if err != nil {
		return "", err
	}

	templateSlug := opts.Template
	if strings.Contains(resourceName, ";") && opts.TemplateTwoLines != "" {
		templateSlug = opts.TemplateTwoLines
		resourceName = strings.ReplaceAll(resourceName, ";", "\n")
	}
	template, err := r.assets.AssetBySlug(ctx, templateSlug)
	if err != nil {
		return "", err
	}

	font := Font{Family: DefaultFontFamily}
	if opts.Font != "" {
		asset, err := r.assets.AssetBySlug(ctx, opts.Font)
		if err != nil {
			return "", err
		}
		font = Font{Family: opts.Font, TTF: asset.Data}
	}

	artifact, err := r.compose(template.Data, font, req.Learner.DisplayName(), resourceName, opts)
	if err != nil {
		return "", err
	}

	url, err := r.publisher.Publish(ctx, req.CredentialID, artifact)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("store artifact: %v", err))
	}
	r.logger.InfoContext(ctx, "credential saved",
		"credential_id", req.CredentialID.String(),
		"url", url,
	)
	return url, nil
}

func (r *Renderer) compose(template []byte, font Font, learnerName, resourceName string, opts models.RenderOptions) ([]byte, error) {
	width, height, err := r.engine.PageSize(template)
	if err != nil {
		return nil, err
	}
	ov, err := newOverlay(width, height, font)
	if err != nil {
		return nil, err
	}
	lines, err := Layout(width, learnerName, resourceName, r.dates.Format(r.now()), opts, ov.measure)
	if err != nil {
		return nil, err
	}
	ov.draw(lines)
	page, err := ov.bytes()
	if err != nil {
		return nil, err
	}
	return r.engine.Compose(template, page)
}

// resourceName prefers the configured override. Learning path lookups never
// fail the render; a missing catalog or title yields "".
func (r *Renderer) resourceName(ctx context.Context, res models.Resource, opts models.RenderOptions) (string, error) {
	switch res.Type {
	case models.ResourceTypeCourse:
		if opts.ResourceName != "" {
			return opts.ResourceName, nil
		}
		title, err := r.courses.CourseTitle(ctx, res.ID)
		if err != nil {
			return "", fmt.Errorf("look up course title of %s: %w", res.ID, err)
		}
		if title == "" {
			return res.ID, nil
		}
		return title, nil
	case models.ResourceTypeLearningPath:
		if opts.ResourceName != "" {
			return opts.ResourceName, nil
		}
		if r.learningPaths == nil {
			return "", nil
		}
		title, err := r.learningPaths.LearningPathTitle(ctx, res.ID)
		if err != nil {
			r.logger.WarnContext(ctx, "learning path title unavailable",
				"resource_id", res.ID,
				"error", err,
			)
			return "", nil
		}
		return title, nil
	default:
		return "", dErrors.New(dErrors.CodeConfiguration, fmt.Sprintf("unsupported resource type: %s", res.Type))
	}
}
