package inquiry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"motohub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCRM(upstream *httptest.Server) config.CRM {
	return config.CRM{
		BaseURL: upstream.URL,
		Token:   "test-token",
		BaseID:  "appTest",
		Table:   "Inquiries",
	}
}

func TestForwardMapsFieldsAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	r := NewRelay(testCRM(upstream))
	res := r.Forward(context.Background(), map[string]any{
		"name":     "Kim",
		"phone":    "010-1234-5678",
		"password": "should-not-forward",
	})

	assert.True(t, res.Success)
	assert.Equal(t, "/v0/appTest/Inquiries", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)

	var payload struct {
		Records []struct {
			Fields map[string]any `json:"fields"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Len(t, payload.Records, 1)
	fields := payload.Records[0].Fields
	assert.Equal(t, "Kim", fields["Name"])
	assert.Equal(t, "010-1234-5678", fields["Phone"])
	assert.NotContains(t, fields, "password")
	assert.Contains(t, fields, "Submitted At")
}

func TestForwardUpstreamErrorIsSoftFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer upstream.Close()

	r := NewRelay(testCRM(upstream))
	res := r.Forward(context.Background(), map[string]any{"name": "Kim"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "422")
}

func TestForwardNetworkErrorIsSoftFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	r := NewRelay(testCRM(upstream))
	res := r.Forward(context.Background(), map[string]any{"name": "Kim"})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}
