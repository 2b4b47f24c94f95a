// Package client is an HTTP implementation of the wizard's collaborator
// interfaces, letting a wizard.Session run against a remote vendorhub
// server instead of in-process services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vendorhub/internal/domain"
	"vendorhub/internal/wizard"
)

const defaultTimeout = 30 * time.Second

// Client talks to the vendorhub REST API. It satisfies
// wizard.DraftStore and wizard.CatalogLoader.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithHTTPClient allows callers to supply their own http.Client, for
// custom transports or test servers.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

type apiError struct {
	Status int
	Reason string
}

func (e *apiError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &apiError{Status: resp.StatusCode, Reason: payload.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// FetchReferenceCatalog loads the option catalog from the server.
func (c *Client) FetchReferenceCatalog(ctx context.Context) (*domain.Catalog, error) {
	var catalog domain.Catalog
	if err := c.do(ctx, http.MethodGet, "/api/reference", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// InitDraft creates or resumes the draft for the given invitation token.
func (c *Client) InitDraft(ctx context.Context, vendorToken, inviterEmail string) (*wizard.InitResult, error) {
	req := struct {
		VendorToken  string `json:"vendorToken"`
		InviterEmail string `json:"inviterEmail"`
	}{vendorToken, inviterEmail}

	var result wizard.InitResult
	if err := c.do(ctx, http.MethodPost, "/api/drafts/init", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SavePage persists one page fragment on the server.
func (c *Client) SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error {
	path := "/api/drafts/" + draftID + "/page/" + strconv.Itoa(int(step))
	return c.do(ctx, http.MethodPut, path, frag, nil)
}

// SubmitDraft finalizes the draft. A true result means the server had
// already recorded the submission.
func (c *Client) SubmitDraft(ctx context.Context, draftID string) (bool, error) {
	var result struct {
		AlreadySubmitted bool `json:"alreadySubmitted"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/drafts/"+draftID+"/submit", nil, &result); err != nil {
		return false, err
	}
	return result.AlreadySubmitted, nil
}

var _ wizard.DraftStore = (*Client)(nil)
var _ wizard.CatalogLoader = (*Client)(nil)
