package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/models"
	"github.com/evyataryagoni/postcode-checker/internal/service"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// invalidFormatTitle describes a postcode that fails the input pattern
const invalidFormatTitle = "Invalid postcode format"

// maxBodyBytes bounds request bodies on the JSON endpoints
const maxBodyBytes = 1 << 14

// PostcodeHandler handles HTTP requests for postcode checks
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Parse HTTP requests (JSON body, query parameters)
//   - Call service methods
//   - Format HTTP responses (JSON)
//   - Map configuration failures to a generic 500
type PostcodeHandler struct {
	service   *service.PostcodeService
	validator *validator.Validate
	logger    *logger.Logger
}

// NewPostcodeHandler creates a new postcode handler with the given service
func NewPostcodeHandler(service *service.PostcodeService, log *logger.Logger) *PostcodeHandler {
	if log == nil {
		log = logger.NewDefault()
	}
	return &PostcodeHandler{
		service:   service,
		validator: newRequestValidator(),
		logger:    log.WithComponent("PostcodeHandler"),
	}
}

// Check handles POST /v1/postcodes/check
// @Summary      Check whether a postcode is allowed
// @Description  Admits a postcode if it is on the specific allow-list or its LSOA starts with an allowed prefix
// @Tags         Postcodes
// @Accept       json
// @Produce      json
// @Param        request  body      models.CheckRequest  true  "Postcode to check"
// @Success      200      {object}  models.CheckResponse
// @Failure      400      {object}  models.ErrorResponse  "Malformed body or oversized postcode"
// @Failure      500      {object}  models.ErrorResponse  "Settings missing or unreadable"
// @Router       /v1/postcodes/check [post]
func (h *PostcodeHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.CheckRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	allowed, err := h.service.IsAllowed(r.Context(), req.Postcode)
	if err != nil {
		// Configuration and store failures both fail closed with the generic message
		h.logger.WithRequestID(middleware.GetReqID(r.Context())).
			Error().
			Bool("configuration", service.IsConfigurationError(err)).
			Msgf("Runtime error: %s", err.Error())
		respondError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	message := fmt.Sprintf("Postcode %s isn't allowed.", req.Postcode)
	if allowed {
		message = fmt.Sprintf("Postcode %s is allowed.", req.Postcode)
	}

	respondJSON(w, http.StatusOK, models.CheckResponse{
		Postcode: req.Postcode,
		Allowed:  allowed,
		Message:  message,
	})
}

// Validate handles GET /v1/postcodes/validate?postcode=<postcode>
// @Summary      Validate postcode format
// @Description  Reports whether the input is a well-formed postcode, without reading settings or calling the lookup service
// @Tags         Postcodes
// @Produce      json
// @Param        postcode  query     string  true  "Postcode"  example(AB0 1CD)
// @Success      200       {object}  models.ValidateResponse
// @Failure      400       {object}  models.ErrorResponse  "Missing postcode parameter"
// @Router       /v1/postcodes/validate [get]
func (h *PostcodeHandler) Validate(w http.ResponseWriter, r *http.Request) {
	postcode := r.URL.Query().Get("postcode")
	if postcode == "" {
		respondError(w, http.StatusBadRequest, "Missing 'postcode' query parameter")
		return
	}

	respondJSON(w, http.StatusOK, models.ValidateResponse{
		Postcode: postcode,
		Valid:    h.service.IsValidFormat(postcode),
		Pattern:  service.PostcodePattern,
		Title:    invalidFormatTitle,
	})
}
