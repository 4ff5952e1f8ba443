package rendershare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/realchief/RenderShotPanel/internal/config"
)

// FileMeta is what the storage provider knows about one source file.
type FileMeta struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path"`
}

// Client talks to the RenderShare file storage HTTP API: metadata and
// download links at submission time, link liveness before resubmission.
// The provider's internals are not our problem; this is a thin facade.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.StorageBaseURL,
		token:   cfg.StorageToken,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("file storage is not configured")
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build storage request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storage request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode storage response: %w", err)
	}
	return nil
}

// FileMetadata resolves a user-selected file reference.
func (c *Client) FileMetadata(ctx context.Context, path string) (*FileMeta, error) {
	var meta FileMeta
	if err := c.get(ctx, "/files/metadata", url.Values{"path": {path}}, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// DownloadLink returns a temporary direct URL for the farm workers.
func (c *Client) DownloadLink(ctx context.Context, path string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.get(ctx, "/files/link", url.Values{"path": {path}}, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// OutputLink returns the share URL of a finished job's output folder.
func (c *Client) OutputLink(ctx context.Context, username, jobName string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	query := url.Values{"user": {username}, "job": {jobName}}
	if err := c.get(ctx, "/outputs/link", query, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// ListSourceFiles lists the user's uploaded scene files with the given
// extensions.
func (c *Client) ListSourceFiles(ctx context.Context, username string, exts []string) ([]FileMeta, error) {
	var out struct {
		Files []FileMeta `json:"files"`
	}
	query := url.Values{"user": {username}, "ext": exts}
	if err := c.get(ctx, "/files", query, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// CheckLink verifies a previously issued download URL still resolves.
func (c *Client) CheckLink(ctx context.Context, link string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return fmt.Errorf("build link check: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("link check: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("link expired with status %d", resp.StatusCode)
	}
	return nil
}
