// Package handler exposes the credential queries and commands over HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,AssetStore

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"coursecred/internal/credential/models"
	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/httputil"
	adminmw "coursecred/pkg/platform/middleware/admin"
	"coursecred/pkg/requestcontext"
)

// MaxAssetBytes bounds a single asset upload.
const MaxAssetBytes = 16 << 20

// Service is the credential API consumed by the handlers. It returns domain
// objects, not response DTOs.
type Service interface {
	CredentialMetadata(ctx context.Context, id models.CredentialID) (*models.Metadata, error)
	EligibleLearnersByType(ctx context.Context, resourceID string, learnerID *models.LearnerID) (map[string][]models.LearnerID, error)
	LearnerCredentialsByType(ctx context.Context, resourceID string, learnerID models.LearnerID) (map[string]models.Summary, error)
	GenerateCredentialForLearner(ctx context.Context, resourceID, credentialType string, learnerID models.LearnerID, force bool) (string, error)
	InvalidateCredential(ctx context.Context, id models.CredentialID, reason string) (*models.Metadata, error)

	SaveCredentialType(ctx context.Context, t *models.CredentialType) (*models.CredentialType, error)
	ListCredentialTypes(ctx context.Context) ([]models.CredentialType, error)
	CreateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error)
	UpdateConfiguration(ctx context.Context, c *models.Configuration) (*models.Configuration, error)
	DeleteConfiguration(ctx context.Context, id models.ConfigurationID) error
	GetConfiguration(ctx context.Context, id models.ConfigurationID) (*models.Configuration, error)
	ListConfigurations(ctx context.Context, resourceID string) ([]models.Configuration, error)
	RunConfiguration(ctx context.Context, id models.ConfigurationID) ([]models.LearnerID, error)
}

// AssetStore manages the renderer's binary inputs.
type AssetStore interface {
	Save(ctx context.Context, a *models.Asset) error
	List(ctx context.Context) ([]models.Asset, error)
	Delete(ctx context.Context, slug string) error
}

type Handler struct {
	service Service
	assets  AssetStore
	logger  *slog.Logger
}

func New(service Service, assets AssetStore, logger *slog.Logger) *Handler {
	return &Handler{service: service, assets: assets, logger: logger}
}

// Register mounts the public read routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/credentials/v1/metadata/{credentialID}", h.HandleMetadata)
	r.Get("/api/credentials/v1/resources/{resourceID}/eligible", h.HandleEligible)
	r.Get("/api/credentials/v1/resources/{resourceID}/learners/{learnerID}", h.HandleLearnerCredentials)
	r.Post("/api/credentials/v1/resources/{resourceID}/learners/{learnerID}/generate", h.HandleLearnerGenerate)
}

// RegisterAdmin mounts the operator routes. Callers wrap r with the admin
// token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/credential-types", h.HandleListTypes)
	r.Put("/admin/credential-types", h.HandleSaveType)
	r.Get("/admin/configurations", h.HandleListConfigurations)
	r.Post("/admin/configurations", h.HandleCreateConfiguration)
	r.Get("/admin/configurations/{id}", h.HandleGetConfiguration)
	r.Put("/admin/configurations/{id}", h.HandleUpdateConfiguration)
	r.Delete("/admin/configurations/{id}", h.HandleDeleteConfiguration)
	r.Post("/admin/configurations/{id}/run", h.HandleRunConfiguration)
	r.Post("/admin/resources/{resourceID}/generate", h.HandleGenerate)
	r.Post("/admin/credentials/{credentialID}/invalidate", h.HandleInvalidate)
	if h.assets != nil {
		r.Get("/admin/assets", h.HandleListAssets)
		r.Put("/admin/assets/{slug}", h.HandleUploadAsset)
		r.Delete("/admin/assets/{slug}", h.HandleDeleteAsset)
	}
}

// HandleMetadata returns the public metadata of one credential.
func (h *Handler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := models.ParseCredentialID(chi.URLParam(r, "credentialID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "credential not found"))
		return
	}

	md, err := h.service.CredentialMetadata(ctx, id)
	if err != nil {
		h.fail(ctx, w, "credential metadata failed", err, "credential_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, md)
}

// HandleEligible returns the eligible learners per credential type. An
// optional learner_id query parameter narrows the check to one learner.
func (h *Handler) HandleEligible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := chi.URLParam(r, "resourceID")

	var learnerID *models.LearnerID
	if raw := r.URL.Query().Get("learner_id"); raw != "" {
		id, err := models.ParseLearnerID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		learnerID = &id
	}

	eligible, err := h.service.EligibleLearnersByType(ctx, resourceID, learnerID)
	if err != nil {
		h.fail(ctx, w, "eligible learners failed", err, "resource_id", resourceID)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, eligible)
}

// HandleLearnerCredentials returns a learner's credentials on a resource.
func (h *Handler) HandleLearnerCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := chi.URLParam(r, "resourceID")
	learnerID, err := models.ParseLearnerID(chi.URLParam(r, "learnerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	credentials, err := h.service.LearnerCredentialsByType(ctx, resourceID, learnerID)
	if err != nil {
		h.fail(ctx, w, "learner credentials failed", err, "resource_id", resourceID, "learner_id", int64(learnerID))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, credentials)
}

// HandleGenerate starts a manual single learner generation.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	resourceID := chi.URLParam(r, "resourceID")

	req, ok := httputil.Bind[GenerateRequest](w, r, h.logger)
	if !ok {
		return
	}

	learnerID := models.LearnerID(req.LearnerID)
	taskID, err := h.service.GenerateCredentialForLearner(ctx, resourceID, req.CredentialType, learnerID, req.Force)
	if err != nil {
		h.fail(ctx, w, "manual generation failed", err,
			"resource_id", resourceID,
			"learner_id", req.LearnerID,
			"credential_type", req.CredentialType,
		)
		return
	}
	h.logger.InfoContext(ctx, "manual generation accepted",
		"resource_id", resourceID,
		"learner_id", req.LearnerID,
		"credential_type", req.CredentialType,
		"forced", req.Force,
		"actor_id", adminmw.ActorID(ctx),
		"request_id", requestID,
	)

	writeGenerated(w, taskID)
}

// HandleLearnerGenerate lets a learner claim a credential they are eligible
// for. It never forces: existing records keep suppressing generation.
func (h *Handler) HandleLearnerGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := chi.URLParam(r, "resourceID")
	learnerID, err := models.ParseLearnerID(chi.URLParam(r, "learnerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.Bind[LearnerGenerateRequest](w, r, h.logger)
	if !ok {
		return
	}

	taskID, err := h.service.GenerateCredentialForLearner(ctx, resourceID, req.CredentialType, learnerID, false)
	if err != nil {
		h.fail(ctx, w, "learner generation failed", err,
			"resource_id", resourceID,
			"learner_id", int64(learnerID),
			"credential_type", req.CredentialType,
		)
		return
	}
	h.logger.InfoContext(ctx, "learner generation accepted",
		"resource_id", resourceID,
		"learner_id", int64(learnerID),
		"credential_type", req.CredentialType,
		"request_id", requestcontext.RequestID(ctx),
	)
	writeGenerated(w, taskID)
}

// writeGenerated answers 200 when the credential was generated inline and 202
// when it was queued.
func writeGenerated(w http.ResponseWriter, taskID string) {
	if taskID == "" {
		httputil.WriteJSON(w, http.StatusOK, &GenerateResponse{Status: "generated"})
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, &GenerateResponse{TaskID: taskID, Status: "submitted"})
}

// HandleInvalidate revokes a credential.
func (h *Handler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := models.ParseCredentialID(chi.URLParam(r, "credentialID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid credential id"))
		return
	}

	req, ok := httputil.Bind[InvalidateRequest](w, r, h.logger)
	if !ok {
		return
	}
	md, err := h.service.InvalidateCredential(ctx, id, req.Reason)
	if err != nil {
		h.fail(ctx, w, "invalidate credential failed", err, "credential_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, md)
}

func (h *Handler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	types, err := h.service.ListCredentialTypes(ctx)
	if err != nil {
		h.fail(ctx, w, "list credential types failed", err)
		return
	}
	if types == nil {
		types = []models.CredentialType{}
	}
	httputil.WriteJSON(w, http.StatusOK, &CredentialTypeListResponse{CredentialTypes: types})
}

func (h *Handler) HandleSaveType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Bind[CredentialTypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	saved, err := h.service.SaveCredentialType(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, w, "save credential type failed", err, "credential_type", req.Name)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) HandleListConfigurations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resourceID := strings.TrimSpace(r.URL.Query().Get("resource_id"))
	if resourceID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "resource_id is required"))
		return
	}
	configs, err := h.service.ListConfigurations(ctx, resourceID)
	if err != nil {
		h.fail(ctx, w, "list configurations failed", err, "resource_id", resourceID)
		return
	}
	res := &ConfigurationListResponse{Configurations: make([]ConfigurationResponse, 0, len(configs))}
	for i := range configs {
		res.Configurations = append(res.Configurations, toConfigurationResponse(&configs[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) HandleCreateConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Bind[ConfigurationRequest](w, r, h.logger)
	if !ok {
		return
	}
	created, err := h.service.CreateConfiguration(ctx, req.toModel(models.ConfigurationID{}))
	if err != nil {
		h.fail(ctx, w, "create configuration failed", err,
			"resource_id", req.ResourceID,
			"credential_type", req.CredentialType,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toConfigurationResponse(created))
}

func (h *Handler) HandleGetConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := configurationID(w, r)
	if !ok {
		return
	}
	c, err := h.service.GetConfiguration(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get configuration failed", err, "configuration_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConfigurationResponse(c))
}

func (h *Handler) HandleUpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := configurationID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Bind[ConfigurationRequest](w, r, h.logger)
	if !ok {
		return
	}
	updated, err := h.service.UpdateConfiguration(ctx, req.toModel(id))
	if err != nil {
		h.fail(ctx, w, "update configuration failed", err, "configuration_id", id.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toConfigurationResponse(updated))
}

func (h *Handler) HandleDeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := configurationID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteConfiguration(ctx, id); err != nil {
		h.fail(ctx, w, "delete configuration failed", err, "configuration_id", id.String())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRunConfiguration generates every eligible learner of a configuration
// synchronously.
func (h *Handler) HandleRunConfiguration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := configurationID(w, r)
	if !ok {
		return
	}
	learners, err := h.service.RunConfiguration(ctx, id)
	if err != nil {
		h.fail(ctx, w, "configuration run failed", err, "configuration_id", id.String())
		return
	}
	if learners == nil {
		learners = []models.LearnerID{}
	}
	httputil.WriteJSON(w, http.StatusOK, &RunResponse{ConfigurationID: id.String(), LearnerIDs: learners})
}

func (h *Handler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assets, err := h.assets.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list assets failed", err)
		return
	}
	res := &AssetListResponse{Assets: make([]AssetResponse, 0, len(assets))}
	for i := range assets {
		res.Assets = append(res.Assets, toAssetResponse(&assets[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleUploadAsset stores the raw request body under the slug, replacing
// any previous payload.
func (h *Handler) HandleUploadAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxAssetBytes))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "asset body too large or unreadable"))
		return
	}
	asset := &models.Asset{
		Slug:        slug,
		Description: r.URL.Query().Get("description"),
		ContentType: r.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := h.assets.Save(ctx, asset); err != nil {
		h.fail(ctx, w, "upload asset failed", err, "slug", slug)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAssetResponse(asset))
}

func (h *Handler) HandleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	if err := h.assets.Delete(ctx, slug); err != nil {
		h.fail(ctx, w, "delete asset failed", err, "slug", slug)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func configurationID(w http.ResponseWriter, r *http.Request) (models.ConfigurationID, bool) {
	id, err := models.ParseConfigurationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return models.ConfigurationID{}, false
	}
	return id, true
}

// fail logs err with the request id and writes the translated response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", requestcontext.RequestID(ctx))
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
