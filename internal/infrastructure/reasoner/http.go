// Package reasoner implements the optional external reasoning capability
// over HTTP. When no endpoint is configured the pipeline runs without it.
package reasoner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doeshing/intentshell/internal/domain"
	"github.com/doeshing/intentshell/internal/ports"
)

// HTTPReasoner talks to a JSON reasoning service. Two routes are used:
// POST {endpoint}/propose and POST {endpoint}/repair.
type HTTPReasoner struct {
	endpoint   string
	authEnvVar string
	httpClient *http.Client
}

// NewHTTP builds a reasoner client from configuration.
func NewHTTP(settings domain.ReasonerSettings) *HTTPReasoner {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPReasoner{
		endpoint:   strings.TrimRight(settings.Endpoint, "/"),
		authEnvVar: settings.AuthEnvVar,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type proposeRequest struct {
	Input        string   `json:"input"`
	WorkingDir   string   `json:"working_dir,omitempty"`
	RecentInputs []string `json:"recent_inputs,omitempty"`
}

type proposeResponse struct {
	ActionID   string  `json:"action_id"`
	HandlerID  string  `json:"handler_id"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type repairRequest struct {
	Input        string `json:"input"`
	ErrorKind    string `json:"error_kind"`
	ErrorMessage string `json:"error_message"`
}

type repairResponse struct {
	CorrectedInput string `json:"corrected_input"`
}

// Propose implements ports.Reasoner.
func (r *HTTPReasoner) Propose(ctx context.Context, input string, recent ports.RecentContext) (ports.Proposal, error) {
	var resp proposeResponse
	err := r.post(ctx, "/propose", proposeRequest{
		Input:        input,
		WorkingDir:   recent.WorkingDir,
		RecentInputs: recent.RecentInputs,
	}, &resp)
	if err != nil {
		return ports.Proposal{}, err
	}
	if resp.ActionID == "" {
		return ports.Proposal{}, fmt.Errorf("reasoner returned no proposal for %q", input)
	}
	return ports.Proposal{
		ActionID:   resp.ActionID,
		HandlerID:  resp.HandlerID,
		Confidence: resp.Confidence,
		Reasoning:  resp.Reasoning,
	}, nil
}

// Repair implements ports.Reasoner.
func (r *HTTPReasoner) Repair(ctx context.Context, req ports.RepairRequest) (string, error) {
	var resp repairResponse
	err := r.post(ctx, "/repair", repairRequest{
		Input:        req.OriginalInput,
		ErrorKind:    string(req.ErrorKind),
		ErrorMessage: req.ErrorMessage,
	}, &resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.CorrectedInput), nil
}

func (r *HTTPReasoner) post(ctx context.Context, route string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+route, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("content-type", "application/json")
	if r.authEnvVar != "" {
		if key := os.Getenv(r.authEnvVar); key != "" {
			httpReq.Header.Set("authorization", "Bearer "+key)
		}
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("reasoner: %s", resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(responseBody.Bytes(), out)
}

var _ ports.Reasoner = (*HTTPReasoner)(nil)
