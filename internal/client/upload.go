package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"vendorhub/internal/domain"
)

// RequestUploadTarget asks the server for a pre-signed tax document
// upload URL.
func (c *Client) RequestUploadTarget(ctx context.Context, fileName, contentType string, sizeBytes int64, vendorToken string) (*domain.UploadTarget, error) {
	req := struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		SizeBytes   int64  `json:"sizeBytes"`
		VendorToken string `json:"vendorToken"`
	}{fileName, contentType, sizeBytes, vendorToken}

	var target domain.UploadTarget
	if err := c.do(ctx, http.MethodPost, "/api/uploads/taxdoc/sas", req, &target); err != nil {
		return nil, err
	}
	return &target, nil
}

// Upload streams the file body to a pre-signed target with a single PUT.
func (c *Client) Upload(ctx context.Context, target *domain.UploadTarget, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.UploadURL, body)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("upload rejected with status %d", resp.StatusCode)
	}
	return nil
}
