package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/models"
	"github.com/evyataryagoni/postcode-checker/internal/settings"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// SettingsHandler exposes the two allow-lists for administration
type SettingsHandler struct {
	settings  *settings.Settings
	validator *validator.Validate
	logger    *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(s *settings.Settings, log *logger.Logger) *SettingsHandler {
	if log == nil {
		log = logger.NewDefault()
	}
	return &SettingsHandler{
		settings:  s,
		validator: newRequestValidator(),
		logger:    log.WithComponent("SettingsHandler"),
	}
}

// List handles GET /v1/settings
// @Summary      Show admission settings
// @Description  Returns both allow-lists; an absent setting is null
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  models.SettingsResponse
// @Failure      401  {string}  string                "Unauthorized"
// @Failure      500  {object}  models.ErrorResponse  "Settings store unavailable"
// @Router       /v1/settings [get]
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.current(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Update handles PUT /v1/settings/{key}
// @Summary      Replace an allow-list
// @Description  Sets allowed_postcodes_lsoa or specific_allowed_postcodes; an empty list is a valid, restrictive value
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        key      path      string                      true  "Setting key"  Enums(allowed_postcodes_lsoa, specific_allowed_postcodes)
// @Param        request  body      models.SettingUpdateRequest true  "New values"
// @Success      200      {object}  models.SettingsResponse
// @Failure      400      {object}  models.ErrorResponse  "Malformed body"
// @Failure      401      {string}  string                "Unauthorized"
// @Failure      404      {object}  models.ErrorResponse  "Unknown setting"
// @Failure      500      {object}  models.ErrorResponse  "Settings store unavailable"
// @Router       /v1/settings/{key} [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !settings.ValidKey(key) {
		respondError(w, http.StatusNotFound, "Unknown setting '"+key+"'")
		return
	}

	var req models.SettingUpdateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.settings.Set(r.Context(), key, req.Values); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.logger.Info().
		Str("setting", key).
		Int("values", len(req.Values)).
		Msg("Setting updated")

	resp, err := h.current(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /v1/settings/{key}
// @Summary      Unset an allow-list
// @Description  Returns the setting to the absent state; postcode checks fail until it is set again
// @Tags         Settings
// @Param        key  path  string  true  "Setting key"  Enums(allowed_postcodes_lsoa, specific_allowed_postcodes)
// @Success      204
// @Failure      401  {string}  string                "Unauthorized"
// @Failure      404  {object}  models.ErrorResponse  "Unknown setting"
// @Failure      500  {object}  models.ErrorResponse  "Settings store unavailable"
// @Router       /v1/settings/{key} [delete]
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.settings.Unset(r.Context(), key); err != nil {
		if errors.Is(err, settings.ErrUnknownSetting) {
			respondError(w, http.StatusNotFound, "Unknown setting '"+key+"'")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.logger.Warn().Str("setting", key).Msg("Setting unset")
	w.WriteHeader(http.StatusNoContent)
}

// current reads both settings concurrently
func (h *SettingsHandler) current(r *http.Request) (models.SettingsResponse, error) {
	var resp models.SettingsResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		values, _, err := h.settings.AllowedAreaPrefixes(ctx)
		resp.AllowedPostcodesLSOA = values
		return err
	})
	g.Go(func() error {
		values, _, err := h.settings.SpecificAllowedPostcodes(ctx)
		resp.SpecificAllowedPostcodes = values
		return err
	})

	return resp, g.Wait()
}

func (h *SettingsHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithRequestID(middleware.GetReqID(r.Context())).
		Error().
		Msgf("Runtime error: %s", err.Error())
	respondError(w, http.StatusInternalServerError, internalErrorMessage)
}
