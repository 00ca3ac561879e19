package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports/mocks"
	"coursecred/internal/credential/strategy"
	dErrors "coursecred/pkg/domain-errors"
)

// passthroughEngine reports a fixed page and returns the overlay unmerged so
// tests can inspect the drawn text.
type passthroughEngine struct {
	template []byte
}

func (e *passthroughEngine) PageSize([]byte) (float64, float64, error) { return 842, 595, nil }

func (e *passthroughEngine) Compose(template, overlay []byte) ([]byte, error) {
	e.template = template
	return overlay, nil
}

type capturePublisher struct {
	id   models.CredentialID
	data []byte
	err  error
}

func (p *capturePublisher) Publish(_ context.Context, id models.CredentialID, data []byte) (string, error) {
	p.id, p.data = id, data
	if p.err != nil {
		return "", p.err
	}
	return "https://media.example.com/external_certificates/" + id.String() + ".pdf", nil
}

type RendererSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	assets    *mocks.MockAssetResolver
	courses   *mocks.MockCourseCatalog
	paths     *mocks.MockLearningPathCatalog
	engine    *passthroughEngine
	publisher *capturePublisher
	renderer  *Renderer
	learner   models.Learner
}

func (s *RendererSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.assets = mocks.NewMockAssetResolver(s.ctrl)
	s.courses = mocks.NewMockCourseCatalog(s.ctrl)
	s.paths = mocks.NewMockLearningPathCatalog(s.ctrl)
	s.engine = &passthroughEngine{}
	s.publisher = &capturePublisher{}
	s.renderer = New(s.assets, s.courses, s.publisher,
		WithEngine(s.engine),
		WithLearningPaths(s.paths),
		WithClock(func() time.Time { return time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC) }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.learner = models.Learner{ID: 7, FirstName: "Ada", LastName: "Lovelace"}
}

func (s *RendererSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererSuite))
}

func (s *RendererSuite) request(res models.Resource, opts models.Options) strategy.GenerationRequest {
	return strategy.GenerationRequest{
		Resource:     res,
		Learner:      s.learner,
		CredentialID: models.NewCredentialID(),
		Options:      opts,
	}
}

func (s *RendererSuite) course() models.Resource {
	return models.Resource{ID: "course-v1:edX+Go+2026", Type: models.ResourceTypeCourse}
}

func (s *RendererSuite) TestGenerate() {
	ctx := context.Background()

	s.T().Run("draws name, course title and date", func(t *testing.T) {
		s.courses.EXPECT().CourseTitle(ctx, s.course().ID).Return("Go Fundamentals", nil)
		s.assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Slug: "single", Data: []byte("tpl-single")}, nil)

		req := s.request(s.course(), models.Options{"template": "single", "template_two_lines": "double"})
		url, err := s.renderer.Generate(ctx, req)
		s.Require().NoError(err)

		s.Equal("https://media.example.com/external_certificates/"+req.CredentialID.String()+".pdf", url)
		s.Equal(req.CredentialID, s.publisher.id)
		s.Equal([]byte("tpl-single"), s.engine.template)
		s.Contains(string(s.publisher.data), "(Ada Lovelace) Tj")
		s.Contains(string(s.publisher.data), "(Go Fundamentals) Tj")
		s.Contains(string(s.publisher.data), "(March 5, 2026) Tj")
	})

	s.T().Run("semicolon selects the two line template", func(t *testing.T) {
		s.assets.EXPECT().AssetBySlug(ctx, "double").Return(&models.Asset{Data: []byte("tpl-double")}, nil)

		opts := models.Options{"template": "single", "template_two_lines": "double", "resource_name": "A;B"}
		_, err := s.renderer.Generate(ctx, s.request(s.course(), opts))
		s.Require().NoError(err)

		out := string(s.publisher.data)
		s.Equal([]byte("tpl-double"), s.engine.template)
		s.Contains(out, "(A) Tj")
		s.Contains(out, "(B) Tj")
		s.NotContains(out, "(A;B) Tj")
	})

	s.T().Run("semicolon is literal without a two line template", func(t *testing.T) {
		s.assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Data: []byte("tpl-single")}, nil)

		_, err := s.renderer.Generate(ctx, s.request(s.course(), models.Options{"template": "single", "resource_name": "A;B"}))
		s.Require().NoError(err)
		s.Contains(string(s.publisher.data), "(A;B) Tj")
	})

	s.T().Run("empty course title falls back to the course id", func(t *testing.T) {
		s.courses.EXPECT().CourseTitle(ctx, s.course().ID).Return("", nil)
		s.assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Data: []byte("t")}, nil)

		_, err := s.renderer.Generate(ctx, s.request(s.course(), models.Options{"template": "single"}))
		s.Require().NoError(err)
		s.Contains(string(s.publisher.data), "(course-v1:edX+Go+2026) Tj")
	})

	s.T().Run("learning path lookup failure renders an empty name", func(t *testing.T) {
		path := models.Resource{ID: "path-1", Type: models.ResourceTypeLearningPath}
		s.paths.EXPECT().LearningPathTitle(ctx, "path-1").Return("", assert.AnError)
		s.assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Data: []byte("t")}, nil)

		_, err := s.renderer.Generate(ctx, s.request(path, models.Options{"template": "single"}))
		s.Require().NoError(err)
		s.Contains(string(s.publisher.data), "(Ada Lovelace) Tj")
	})

	s.T().Run("missing template asset is a hard failure", func(t *testing.T) {
		s.courses.EXPECT().CourseTitle(ctx, gomock.Any()).Return("Go", nil)
		s.assets.EXPECT().AssetBySlug(ctx, "gone").Return(nil, dErrors.New(dErrors.CodeAssetNotFound, "asset gone not found"))

		_, err := s.renderer.Generate(ctx, s.request(s.course(), models.Options{"template": "gone"}))
		s.True(dErrors.HasCode(err, dErrors.CodeAssetNotFound))
	})

	s.T().Run("missing font asset is a hard failure", func(t *testing.T) {
		s.courses.EXPECT().CourseTitle(ctx, gomock.Any()).Return("Go", nil)
		s.assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Data: []byte("t")}, nil)
		s.assets.EXPECT().AssetBySlug(ctx, "comic").Return(nil, dErrors.New(dErrors.CodeAssetNotFound, "asset comic not found"))

		_, err := s.renderer.Generate(ctx, s.request(s.course(), models.Options{"template": "single", "font": "comic"}))
		s.True(dErrors.HasCode(err, dErrors.CodeAssetNotFound))
	})

	s.T().Run("missing template option is a configuration error", func(t *testing.T) {
		_, err := s.renderer.Generate(ctx, s.request(s.course(), models.Options{}))
		s.True(dErrors.HasCode(err, dErrors.CodeConfiguration))
	})

	s.T().Run("unsupported resource type", func(t *testing.T) {
		_, err := s.renderer.Generate(ctx, s.request(models.Resource{ID: "p", Type: "program"}, models.Options{"template": "single"}))
		s.True(dErrors.HasCode(err, dErrors.CodeConfiguration))
	})

	s.T().Run("storage failures are render failures", func(t *testing.T) {
		s.publisher.err = assert.AnError
		defer func() { s.publisher.err = nil }()
		s.assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Data: []byte("t")}, nil)

		_, err := s.renderer.Generate(ctx, s.request(s.course(), models.Options{"template": "single", "resource_name": "Go"}))
		s.True(dErrors.HasCode(err, dErrors.CodeRenderFailure))
		s.ErrorIs(err, assert.AnError)
	})
}

func blankTemplate(t *testing.T) []byte {
	t.Helper()
	pdf := fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: fpdf.SizeType{Wd: 842, Ht: 595}})
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 20, "template")
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("build template: %v", err)
	}
	return buf.Bytes()
}

func TestPDFCPUEngineSealsArtifact(t *testing.T) {
	engine := NewPDFCPUEngine()
	tpl := blankTemplate(t)

	w, h, err := engine.PageSize(tpl)
	if !assert.NoError(t, err) {
		return
	}
	assert.InDelta(t, 842, w, 0.5)
	assert.InDelta(t, 595, h, 0.5)

	ov, err := newOverlay(w, h, Font{Family: DefaultFontFamily})
	if !assert.NoError(t, err) {
		return
	}
	ov.draw([]TextLine{{Text: "Ada Lovelace", X: 100, Y: 290, Size: NameFontSize}})
	page, err := ov.bytes()
	if !assert.NoError(t, err) {
		return
	}

	sealed, err := engine.Compose(tpl, page)
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, bytes.HasPrefix(sealed, []byte("%PDF")))
	assert.Contains(t, string(sealed), "/Encrypt")
	assert.Contains(t, artifactText(t, sealed), "(Ada Lovelace) Tj")
}

// artifactText opens a sealed artifact with the empty user password, checks
// its permission bits and returns every decoded stream of the decrypted copy.
func artifactText(t *testing.T, sealed []byte) string {
	t.Helper()
	perms, err := api.GetPermissions(bytes.NewReader(sealed), relaxed())
	require.NoError(t, err)
	require.NotNil(t, perms, "artifact is not encrypted")
	granted := model.PermissionFlags(uint16(*perms))
	assert.Equal(t, uint16(Permissions), uint16(granted))
	assert.NotZero(t, granted&model.PermissionPrintRev3)
	assert.NotZero(t, granted&model.PermissionExtractRev3)
	assert.Zero(t, granted&model.PermissionModify)

	var plain bytes.Buffer
	require.NoError(t, api.Decrypt(bytes.NewReader(sealed), &plain, model.NewAESConfiguration("", "", AESKeyLength)))
	pdfCtx, err := api.ReadContext(bytes.NewReader(plain.Bytes()), relaxed())
	require.NoError(t, err)
	require.Nil(t, pdfCtx.E)

	var text strings.Builder
	for _, entry := range pdfCtx.Table {
		if entry == nil || entry.Free {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok || sd.Decode() != nil {
			continue
		}
		text.Write(sd.Content)
		text.WriteByte('\n')
	}
	return text.String()
}

func TestGenerateRoundTripsThroughPDFCPU(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mocks.NewMockAssetResolver(ctrl)
	courses := mocks.NewMockCourseCatalog(ctrl)
	publisher := &capturePublisher{}
	renderer := New(assets, courses, publisher,
		WithEngine(NewPDFCPUEngine()),
		WithClock(func() time.Time { return time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC) }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	ctx := context.Background()
	resource := models.Resource{ID: "course-v1:edX+Go+2026", Type: models.ResourceTypeCourse}

	courses.EXPECT().CourseTitle(ctx, resource.ID).Return("Go Fundamentals", nil)
	assets.EXPECT().AssetBySlug(ctx, "single").Return(&models.Asset{Slug: "single", Data: blankTemplate(t)}, nil)

	_, err := renderer.Generate(ctx, strategy.GenerationRequest{
		Resource:     resource,
		Learner:      models.Learner{ID: 7, FirstName: "Ada", LastName: "Lovelace"},
		CredentialID: models.NewCredentialID(),
		Options:      models.Options{"template": "single"},
	})
	require.NoError(t, err)

	text := artifactText(t, publisher.data)
	assert.Contains(t, text, "(Ada Lovelace) Tj")
	assert.Contains(t, text, "(Go Fundamentals) Tj")
	assert.Contains(t, text, "(March 5, 2026) Tj")
}
