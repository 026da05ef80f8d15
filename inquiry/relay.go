// Package inquiry forwards contact-form submissions to the external CRM.
// Nothing is persisted locally and there is no retry: the call is made once
// and the outcome is reported back to the client as a soft envelope.
package inquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"motohub/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Result is the envelope returned to the browser. The route always answers
// HTTP 200; upstream failures surface here, never as an error status.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// fieldLabels maps form field names onto the CRM's column labels. Fields
// outside this mapping are dropped.
var fieldLabels = map[string]string{
	"name":    "Name",
	"phone":   "Phone",
	"model":   "Model",
	"region":  "Region",
	"message": "Message",
	"channel": "Channel",
}

type Relay struct {
	client  *http.Client
	baseURL string
	token   string
	baseID  string
	table   string
}

func NewRelay(cfg config.CRM) *Relay {
	return &Relay{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		baseID:  cfg.BaseID,
		table:   cfg.Table,
	}
}

// Forward relays one submission. Any 2xx from the CRM is success; anything
// else, including a transport error, becomes a failure envelope.
func (r *Relay) Forward(ctx context.Context, form map[string]any) Result {
	fields := map[string]any{}
	for k, v := range form {
		if label, ok := fieldLabels[k]; ok {
			fields[label] = v
		}
	}
	fields["Submitted At"] = time.Now().UTC().Format(time.RFC3339)

	payload := map[string]any{
		"records": []map[string]any{{"fields": fields}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Message: "could not encode inquiry"}
	}

	url := fmt.Sprintf("%s/v0/%s/%s", r.baseURL, r.baseID, r.table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Message: "could not build crm request"}
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("inquiry relay failed", "err", err)
		return Result{Success: false, Message: "inquiry relay failed"}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Success: true}
	}

	slog.Error("crm rejected inquiry", "status", resp.StatusCode)
	return Result{Success: false, Message: fmt.Sprintf("crm returned status %d", resp.StatusCode)}
}
