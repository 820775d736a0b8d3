package githubactions

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"buildrun-agent/src/provider"
)

// Client is a GitHub Actions API client bound to one repository
type Client struct {
	token      string
	owner      string
	repo       string
	httpClient *http.Client
	baseURL    string

	// ProgressWriter, when set, receives a byte-count progress bar
	// during artifact downloads.
	ProgressWriter io.Writer
}

// NewClient creates a new GitHub Actions client for owner/repo
func NewClient(token, owner, repo string) *Client {
	return &Client{
		token: token,
		owner: owner,
		repo:  repo,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// apiError maps an unexpected response to an error carrying the status and body
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	err := fmt.Errorf("GitHub API error %d: %s", resp.StatusCode, string(body))
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", provider.ErrAuthFailed, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", provider.ErrNotFound, err)
	case http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return fmt.Errorf("%w: %v", provider.ErrRateLimited, err)
		}
	}
	return err
}

// DispatchWorkflow triggers a workflow_dispatch event for the workflow file
// at the given ref. The API returns 204 with no body; the run it creates is
// not identified in the response.
func (c *Client) DispatchWorkflow(ctx context.Context, workflow, ref string, inputs map[string]string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/dispatches", c.baseURL, c.owner, c.repo, workflow)

	payload, err := json.Marshal(dispatchPayload{Ref: ref, Inputs: inputs})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

// ListWorkflowRuns fetches up to limit recent runs of a workflow file,
// filtered by branch and triggering event.
func (c *Client) ListWorkflowRuns(ctx context.Context, workflow, branch, event string, limit int) ([]WorkflowRun, error) {
	query := url.Values{}
	if branch != "" {
		query.Set("branch", branch)
	}
	if event != "" {
		query.Set("event", event)
	}
	query.Set("per_page", fmt.Sprintf("%d", limit))

	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/runs?%s",
		c.baseURL, c.owner, c.repo, workflow, query.Encode())

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var runsResp WorkflowRunsResponse
	if err := json.NewDecoder(resp.Body).Decode(&runsResp); err != nil {
		return nil, err
	}
	return runsResp.WorkflowRuns, nil
}

// GetWorkflowRun fetches workflow run metadata
func (c *Client) GetWorkflowRun(ctx context.Context, runID int64) (*WorkflowRun, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/runs/%d", c.baseURL, c.owner, c.repo, runID)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var run WorkflowRun
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetArtifacts fetches artifacts for a workflow run
func (c *Client) GetArtifacts(ctx context.Context, runID int64) ([]Artifact, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/runs/%d/artifacts", c.baseURL, c.owner, c.repo, runID)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var artifactsResp ArtifactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&artifactsResp); err != nil {
		return nil, err
	}
	return artifactsResp.Artifacts, nil
}

// DeleteArtifact removes one artifact from remote storage
func (c *Client) DeleteArtifact(ctx context.Context, artifactID int64) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/artifacts/%d", c.baseURL, c.owner, c.repo, artifactID)

	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	return nil
}

// DownloadArtifact downloads the artifact's zip archive and extracts its
// files into destDir, overwriting existing content. The artifact endpoint
// redirects to signed storage; net/http follows it and drops the auth
// header on the cross-host hop.
func (c *Client) DownloadArtifact(ctx context.Context, artifactID int64, destDir string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/actions/artifacts/%d/zip", c.baseURL, c.owner, c.repo, artifactID)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	zipData, err := c.readBody(resp)
	if err != nil {
		return err
	}

	return extractZip(zipData, destDir)
}

// readBody reads the archive, drawing a byte progress bar when enabled
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	if c.ProgressWriter == nil {
		return io.ReadAll(resp.Body)
	}

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionSetWriter(c.ProgressWriter),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(18),
		progressbar.OptionClearOnFinish(),
	)

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// extractZip writes every file in the archive under destDir
func extractZip(zipData []byte, destDir string) error {
	zipReader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return err
	}

	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		// Reject entries that would escape destDir
		if strings.Contains(file.Name, "..") {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}

		target := filepath.Join(destDir, filepath.FromSlash(file.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, content, 0o644); err != nil {
			return err
		}
	}
	return nil
}
