package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"motohub/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) (*echo.Echo, config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.Backend = "memory"
	cfg.DataDir = t.TempDir()
	cfg.UploadsDir = t.TempDir()

	e, s, err := buildServer(cfg)
	require.NoError(t, err)
	t.Cleanup(s.db.Close)
	return e, cfg
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeRecord(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	return out
}

func TestCreateBikeListsFirst(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doJSON(e, http.MethodPost, "/bikes", `{"name":"NMAX","brand":"YAMAHA"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/bikes", `{"name":"PCX125","brand":"HONDA"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored := decodeRecord(t, rec)
	assert.NotNil(t, stored["id"])
	assert.NotEmpty(t, stored["created_at"])
	assert.Equal(t, stored["created_at"], stored["updated_at"])

	listRec := doJSON(e, http.MethodGet, "/bikes", "")
	require.Equal(t, http.StatusOK, listRec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "PCX125", list[0]["name"], "newest create lists first")
}

func TestSuccessionRoutingAndSlugLookup(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doJSON(e, http.MethodPost, "/bikes", `{"brand":"SUCCESSION","name":"Lease A","slug":"lease-a"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	getRec := doJSON(e, http.MethodGet, "/bikes/lease-a", "")
	require.Equal(t, http.StatusOK, getRec.Code)
	got := decodeRecord(t, getRec)
	assert.Equal(t, "Lease A", got["name"])

	listRec := doJSON(e, http.MethodGet, "/bikes", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Len(t, list, 1, "succession records appear in the combined list")
}

func TestGetBikeBySlugNotFound(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doJSON(e, http.MethodGet, "/bikes/no-such-slug", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestUpdateBikeKeepsCreatedAt(t *testing.T) {
	e, _ := setupTestServer(t)

	created := decodeRecord(t, doJSON(e, http.MethodPost, "/bikes", `{"name":"PCX125","brand":"HONDA"}`))
	id := created["id"].(json.Number).String()

	updRec := doJSON(e, http.MethodPost, "/bikes", fmt.Sprintf(`{"id":%s,"name":"PCX125 ABS","brand":"HONDA"}`, id))
	require.Equal(t, http.StatusOK, updRec.Code, "update answers 200, not 201")

	updated := decodeRecord(t, updRec)
	assert.Equal(t, "PCX125 ABS", updated["name"])
	assert.Equal(t, created["created_at"], updated["created_at"])
}

func TestDeleteBikeAlways204(t *testing.T) {
	e, _ := setupTestServer(t)

	created := decodeRecord(t, doJSON(e, http.MethodPost, "/bikes", `{"brand":"SUCCESSION","name":"Lease A"}`))
	id := created["id"].(json.Number).String()

	rec := doJSON(e, http.MethodDelete, "/bikes/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// unknown ids delete "successfully" too
	rec = doJSON(e, http.MethodDelete, "/bikes/999999", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNoticeLifecycle(t *testing.T) {
	e, _ := setupTestServer(t)

	created := decodeRecord(t, doJSON(e, http.MethodPost, "/notices", `{"title":"Open hours","category":"news"}`))
	id := created["id"].(json.Number).String()

	getRec := doJSON(e, http.MethodGet, "/notices/"+id, "")
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, "Open hours", decodeRecord(t, getRec)["title"])

	missRec := doJSON(e, http.MethodGet, "/notices/12345", "")
	assert.Equal(t, http.StatusNotFound, missRec.Code)

	delRec := doJSON(e, http.MethodDelete, "/notices/"+id, "")
	assert.Equal(t, http.StatusNoContent, delRec.Code)

	listRec := doJSON(e, http.MethodGet, "/notices", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestUploadStoresImage(t *testing.T) {
	e, cfg := setupTestServer(t)

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp["url"], "/uploads/"))

	b, err := os.ReadFile(filepath.Join(cfg.UploadsDir, strings.TrimPrefix(resp["url"], "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), b)
}

func TestUploadWithoutFileIs400(t *testing.T) {
	e, _ := setupTestServer(t)

	rec := doJSON(e, http.MethodPost, "/upload", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No file uploaded", resp["message"])
}

func TestInquiryEnvelope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	cfg := config.Default()
	cfg.Backend = "memory"
	cfg.DataDir = t.TempDir()
	cfg.UploadsDir = t.TempDir()
	cfg.CRM.BaseURL = upstream.URL

	e, s, err := buildServer(cfg)
	require.NoError(t, err)
	defer s.db.Close()

	rec := doJSON(e, http.MethodPost, "/inquiry", `{"name":"Kim","phone":"010-1234-5678"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	upstream.Close()

	rec = doJSON(e, http.MethodPost, "/inquiry", `{"name":"Kim"}`)
	require.Equal(t, http.StatusOK, rec.Code, "upstream failure still answers 200")
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}
