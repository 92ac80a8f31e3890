package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/models"
	"github.com/evyataryagoni/postcode-checker/internal/settings"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSettingsRouter mounts the handler so chi URL params resolve
func newSettingsRouter(store *settings.MockStore) http.Handler {
	h := NewSettingsHandler(settings.New(store, "mock", nil), logger.NewNop())

	r := chi.NewRouter()
	r.Get("/v1/settings", h.List)
	r.Put("/v1/settings/{key}", h.Update)
	r.Delete("/v1/settings/{key}", h.Delete)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSettingsHandler_List(t *testing.T) {
	rec := serve(newSettingsRouter(settings.NewMockStore()), http.MethodGet, "/v1/settings", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SettingsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Lsoa1"}, resp.AllowedPostcodesLSOA)
	assert.Equal(t, []string{"AA00 0AA"}, resp.SpecificAllowedPostcodes)
}

func TestSettingsHandler_List_AbsentIsNull(t *testing.T) {
	store := settings.NewEmptyMockStore()
	store.Data[settings.KeySpecificAllowedPostcodes] = []string{}

	rec := serve(newSettingsRouter(store), http.MethodGet, "/v1/settings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"allowed_postcodes_lsoa":null,"specific_allowed_postcodes":[]}`, rec.Body.String())
}

func TestSettingsHandler_List_StoreError(t *testing.T) {
	store := settings.NewMockStore()
	store.GetError = fmt.Errorf("redis down")

	rec := serve(newSettingsRouter(store), http.MethodGet, "/v1/settings", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Error. Please try later."}`, rec.Body.String())
}

func TestSettingsHandler_Update(t *testing.T) {
	store := settings.NewMockStore()
	router := newSettingsRouter(store)

	rec := serve(router, http.MethodPut, "/v1/settings/allowed_postcodes_lsoa", `{"values":["Southwark","Lambeth"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Southwark", "Lambeth"}, store.Data[settings.KeyAllowedPostcodesLSOA])

	var resp models.SettingsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Southwark", "Lambeth"}, resp.AllowedPostcodesLSOA)
	assert.Equal(t, []string{"AA00 0AA"}, resp.SpecificAllowedPostcodes)
}

func TestSettingsHandler_Update_EmptyList(t *testing.T) {
	store := settings.NewEmptyMockStore()

	rec := serve(newSettingsRouter(store), http.MethodPut, "/v1/settings/specific_allowed_postcodes", `{"values":[]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	values, ok := store.Data[settings.KeySpecificAllowedPostcodes]
	assert.True(t, ok, "empty list must be stored as configured")
	assert.Empty(t, values)
}

func TestSettingsHandler_Update_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"unknown key", "/v1/settings/allowed_ips", `{"values":[]}`, http.StatusNotFound, "Unknown setting 'allowed_ips'"},
		{"not json", "/v1/settings/allowed_postcodes_lsoa", `values`, http.StatusBadRequest, "Invalid JSON request body"},
		{"missing values", "/v1/settings/allowed_postcodes_lsoa", `{}`, http.StatusBadRequest, "Missing 'values' field"},
		{"blank entry", "/v1/settings/allowed_postcodes_lsoa", `{"values":["Lsoa1",""]}`, http.StatusBadRequest, "Missing 'values[1]' field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := settings.NewMockStore()

			rec := serve(newSettingsRouter(store), http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			var errResp models.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
			assert.Equal(t, tt.wantErr, errResp.Error)
			assert.Empty(t, store.SetCalls)
		})
	}
}

func TestSettingsHandler_Update_StoreError(t *testing.T) {
	store := settings.NewMockStore()
	store.SetError = fmt.Errorf("read-only replica")

	rec := serve(newSettingsRouter(store), http.MethodPut, "/v1/settings/allowed_postcodes_lsoa", `{"values":["Lsoa1"]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "read-only")
}

func TestSettingsHandler_Delete(t *testing.T) {
	store := settings.NewMockStore()

	rec := serve(newSettingsRouter(store), http.MethodDelete, "/v1/settings/allowed_postcodes_lsoa", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := store.Data[settings.KeyAllowedPostcodesLSOA]
	assert.False(t, ok)
	assert.Equal(t, []string{settings.KeyAllowedPostcodesLSOA}, store.UnsetCalls)
}

func TestSettingsHandler_Delete_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		store := settings.NewMockStore()

		rec := serve(newSettingsRouter(store), http.MethodDelete, "/v1/settings/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, store.UnsetCalls)
	})

	t.Run("store error", func(t *testing.T) {
		store := settings.NewMockStore()
		store.UnsetError = fmt.Errorf("timeout")

		rec := serve(newSettingsRouter(store), http.MethodDelete, "/v1/settings/specific_allowed_postcodes", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
