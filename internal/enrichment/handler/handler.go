package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/orchestrator"
	"enricher/pkg/platform/httputil"
	"enricher/pkg/requestcontext"
)

// Service is the enrichment engine as seen by the HTTP layer.
type Service interface {
	EnrichPerson(ctx context.Context, req models.PersonRequest) (*models.PersonRecord, error)
	EnrichCompany(ctx context.Context, req models.CompanyRequest) (*models.CompanyRecord, error)
	Providers(ctx context.Context) []orchestrator.ProviderInfo
	CheckHealth(ctx context.Context) map[string]orchestrator.ProviderHealth
}

// QuotaResetter clears a provider's monthly usage.
type QuotaResetter interface {
	Reset(ctx context.Context, provider string) error
}

// Handler wires enrichment endpoints to the engine.
type Handler struct {
	service Service
	quota   QuotaResetter
	logger  *slog.Logger
}

func New(service Service, quota QuotaResetter, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		quota:   quota,
		logger:  logger,
	}
}

// Register mounts the public enrichment endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Post("/v1/enrich/person", h.HandleEnrichPerson)
	r.Post("/v1/enrich/company", h.HandleEnrichCompany)
	r.Get("/v1/providers", h.HandleListProviders)
}

// RegisterAdmin mounts operator endpoints. Callers guard r.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/v1/providers/{provider}/quota/reset", h.HandleResetQuota)
}

// HandleEnrichPerson handles POST /v1/enrich/person.
func (h *Handler) HandleEnrichPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	body, ok := httputil.DecodeAndPrepare[PersonBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.EnrichPerson(ctx, body.PersonRequest)
	if err != nil {
		h.logger.WarnContext(ctx, "person enrichment rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person enrichment served",
		"request_id", requestID,
		"data_sources", record.DataSources,
		"synthetic", record.Synthetic,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleEnrichCompany handles POST /v1/enrich/company.
func (h *Handler) HandleEnrichCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	body, ok := httputil.DecodeAndPrepare[CompanyBody](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.EnrichCompany(ctx, body.CompanyRequest)
	if err != nil {
		h.logger.WarnContext(ctx, "company enrichment rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "company enrichment served",
		"request_id", requestID,
		"data_sources", record.DataSources,
		"synthetic", record.Synthetic,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, record)
}

// ProvidersResponse is the body of GET /v1/providers.
type ProvidersResponse struct {
	Providers []orchestrator.ProviderInfo `json:"providers"`
}

// HandleListProviders handles GET /v1/providers. With ?health=true the
// providers are health checked before listing.
func (h *Handler) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if check, _ := strconv.ParseBool(r.URL.Query().Get("health")); check {
		h.service.CheckHealth(ctx)
	}
	httputil.WriteJSON(w, http.StatusOK, ProvidersResponse{Providers: h.service.Providers(ctx)})
}

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// HealthResponse is the body of GET /healthz. Status is "degraded" when any
// provider failed its check; the service itself is still up.
type HealthResponse struct {
	Status    string                                 `json:"status"`
	Providers map[string]orchestrator.ProviderHealth `json:"providers"`
}

// HandleHealth handles GET /healthz. It always answers 200 so an upstream
// outage does not restart the service.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results := h.service.CheckHealth(ctx)

	resp := HealthResponse{Status: StatusOK, Providers: results}
	if down := orchestrator.Unavailable(results); len(down) > 0 {
		resp.Status = StatusDegraded
		h.logger.WarnContext(ctx, "providers unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"providers", down,
		)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleResetQuota handles POST /v1/providers/{provider}/quota/reset.
func (h *Handler) HandleResetQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	provider := chi.URLParam(r, "provider")

	if err := h.quota.Reset(ctx, provider); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "provider quota reset",
		"request_id", requestcontext.RequestID(ctx),
		"provider", provider,
	)
	w.WriteHeader(http.StatusNoContent)
}
