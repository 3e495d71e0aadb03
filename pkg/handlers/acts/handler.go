package acts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/pulse-atlas/pkg/adapters"
	"github.com/de-tools/pulse-atlas/pkg/models/api"
	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/services/survey"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Runner computes acts and personas over a dataset.
type Runner interface {
	Acts() []domain.ActInfo
	Run(ctx context.Context, ds *domain.Dataset, name string) (*domain.ActReport, error)
	Persona(ctx context.Context, ds *domain.Dataset, name string) (domain.PersonaResult, error)
}

// DatasetProvider hands out the session dataset.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*domain.Dataset, error)
}

type Handler struct {
	runner  Runner
	dataset DatasetProvider
}

func NewHandler(runner Runner, dataset DatasetProvider) *Handler {
	return &Handler{
		runner:  runner,
		dataset: dataset,
	}
}

func (h *Handler) ListActs(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, adapters.MapDomainActInfoToAPI(h.runner.Acts()))
}

func (h *Handler) GetAct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "act")

	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	report, err := h.runner.Run(ctx, ds, name)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("act", name).Msg("failed to compute act")
		}
		writeError(ctx, w, status, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapDomainActReportToAPI(*report))
}

func (h *Handler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	personas := survey.Personas()
	response := make([]api.Persona, 0, len(personas))
	for _, p := range personas {
		response = append(response, api.Persona{Name: p.Name, Description: p.Description})
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) GetPersona(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "persona")

	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	result, err := h.runner.Persona(ctx, ds, name)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("persona", name).Msg("failed to apply persona")
		}
		writeError(ctx, w, status, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapDomainPersonaToAPI(result))
}

func (h *Handler) loadDataset(w http.ResponseWriter, r *http.Request) (*domain.Dataset, bool) {
	ctx := r.Context()
	ds, err := h.dataset.Dataset(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("dataset unavailable")
		writeError(ctx, w, http.StatusInternalServerError, err)
		return nil, false
	}
	return ds, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownAct), errors.Is(err, domain.ErrUnknownPersona):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	writeJSON(ctx, w, status, api.Error{Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
