package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/lookup"
	"github.com/evyataryagoni/postcode-checker/internal/models"
	"github.com/evyataryagoni/postcode-checker/internal/service"
	"github.com/evyataryagoni/postcode-checker/internal/settings"
)

// newTestPostcodeHandler wires a handler over a mock store and a scripted lookup
func newTestPostcodeHandler(store *settings.MockStore, log *logger.Logger) (*PostcodeHandler, *lookup.MockClient) {
	client := lookup.NewMockClient()
	client.Results["AB01CD"] = models.Found("http://postcodes.io/postcodes/AB01CD", "Lsoa1 034A")
	client.Results["AB01CC"] = models.Found("http://postcodes.io/postcodes/AB01CC", "Lsoa2 034A")

	if log == nil {
		log = logger.NewNop()
	}
	svc := service.NewPostcodeService(settings.New(store, "mock", nil), client, nil, log)
	return NewPostcodeHandler(svc, log), client
}

func postCheck(h *PostcodeHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/postcodes/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Check(rec, req)
	return rec
}

// TestPostcodeHandler_Check_Outcomes tests allowed and rejected postcodes
func TestPostcodeHandler_Check_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		postcode    string
		wantAllowed bool
		wantMessage string
	}{
		{"allowed area", "AB0 1CD", true, "Postcode AB0 1CD is allowed."},
		{"other area", "AB0 1CC", false, "Postcode AB0 1CC isn't allowed."},
		{"unknown postcode", "AB00 1CC", false, "Postcode AB00 1CC isn't allowed."},
		{"invalid format", "3245435", false, "Postcode 3245435 isn't allowed."},
		{"specific list", "AA00 0AA", true, "Postcode AA00 0AA is allowed."},
		{"padded with whitespace", "  AB0    1CD    ", true, "Postcode   AB0    1CD     is allowed."},
		{"empty postcode", "", false, "Postcode  isn't allowed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestPostcodeHandler(settings.NewMockStore(), nil)

			rec := postCheck(handler, fmt.Sprintf(`{"postcode":%q}`, tt.postcode))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}

			var resp models.CheckResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Postcode != tt.postcode {
				t.Errorf("expected postcode %q echoed, got %q", tt.postcode, resp.Postcode)
			}
			if resp.Allowed != tt.wantAllowed {
				t.Errorf("expected allowed=%v, got %v", tt.wantAllowed, resp.Allowed)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, resp.Message)
			}
		})
	}
}

// TestPostcodeHandler_Check_MissingSettings tests the generic 500 and the runtime error log
func TestPostcodeHandler_Check_MissingSettings(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Output: &buf})
	handler, client := newTestPostcodeHandler(settings.NewEmptyMockStore(), log)

	rec := postCheck(handler, `{"postcode":"AB0 1CD"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&errResp)
	if errResp.Error != "Internal Error. Please try later." {
		t.Errorf("unexpected error message: %s", errResp.Error)
	}

	want := "Runtime error: Required settings specific_allowed_postcodes or allowed_postcodes_lsoa are missing."
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected log to contain %q, got %q", want, buf.String())
	}
	if client.Calls() != 0 {
		t.Errorf("expected no lookup, got %d", client.Calls())
	}
}

// TestPostcodeHandler_Check_StoreError tests that store failures are hidden from clients
func TestPostcodeHandler_Check_StoreError(t *testing.T) {
	store := settings.NewMockStore()
	store.GetError = fmt.Errorf("dial tcp: connection refused")
	handler, _ := newTestPostcodeHandler(store, nil)

	rec := postCheck(handler, `{"postcode":"AB0 1CD"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("store error leaked into the response")
	}
}

// TestPostcodeHandler_Check_BadRequest tests malformed bodies
func TestPostcodeHandler_Check_BadRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"not json", `postcode=AB0`, "Invalid JSON request body"},
		{"empty body", ``, "Invalid JSON request body"},
		{"too long", `{"postcode":"` + strings.Repeat("A", 257) + `"}`, "Field 'postcode' is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, client := newTestPostcodeHandler(settings.NewMockStore(), nil)

			rec := postCheck(handler, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var errResp models.ErrorResponse
			json.NewDecoder(rec.Body).Decode(&errResp)
			if errResp.Error != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, errResp.Error)
			}
			if client.Calls() != 0 {
				t.Error("expected no lookup for a bad request")
			}
		})
	}
}

// TestPostcodeHandler_Validate tests the format endpoint
func TestPostcodeHandler_Validate(t *testing.T) {
	tests := []struct {
		postcode string
		valid    bool
	}{
		{"AB0 1CD", true},
		{"ab01cd", true},
		{"3245435", false},
		{"AB0-1CD", false},
	}

	for _, tt := range tests {
		t.Run(tt.postcode, func(t *testing.T) {
			// Validation must not need settings
			handler, client := newTestPostcodeHandler(settings.NewEmptyMockStore(), nil)

			req := httptest.NewRequest(http.MethodGet, "/v1/postcodes/validate?postcode="+strings.ReplaceAll(tt.postcode, " ", "+"), nil)
			rec := httptest.NewRecorder()
			handler.Validate(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			var resp models.ValidateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Valid != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, resp.Valid)
			}
			if resp.Postcode != tt.postcode {
				t.Errorf("expected postcode %q, got %q", tt.postcode, resp.Postcode)
			}
			if resp.Pattern != service.PostcodePattern {
				t.Errorf("unexpected pattern %q", resp.Pattern)
			}
			if resp.Title != "Invalid postcode format" {
				t.Errorf("unexpected title %q", resp.Title)
			}
			if client.Calls() != 0 {
				t.Error("expected no lookup")
			}
		})
	}
}

// TestPostcodeHandler_Validate_MissingParameter tests missing query parameter
func TestPostcodeHandler_Validate_MissingParameter(t *testing.T) {
	handler, _ := newTestPostcodeHandler(settings.NewMockStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/postcodes/validate", nil)
	rec := httptest.NewRecorder()
	handler.Validate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&errResp)
	if errResp.Error != "Missing 'postcode' query parameter" {
		t.Errorf("unexpected error message: %s", errResp.Error)
	}
}

// TestPostcodeHandler_Check_NoPostcodeUnconfigured tests that the policy is checked before the input
func TestPostcodeHandler_Check_NoPostcodeUnconfigured(t *testing.T) {
	for _, body := range []string{`{}`, `{"postcode":""}`} {
		t.Run(body, func(t *testing.T) {
			handler, _ := newTestPostcodeHandler(settings.NewEmptyMockStore(), nil)

			rec := postCheck(handler, body)

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("expected status 500, got %d", rec.Code)
			}
		})
	}
}
