package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.vercel.com/v13/deployments"

// Client deploys single-file sites through the Vercel deployments API.
type Client struct {
	token    string
	teamID   string
	endpoint string
	http     *http.Client
}

func NewClient(token, teamID string) *Client {
	return &Client{
		token:    token,
		teamID:   teamID,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether a deployment credential is present.
// Publishing without one is a configuration error at request time.
func (c *Client) Configured() bool {
	return c.token != ""
}

// SetEndpoint overrides the API endpoint, used in tests.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

type deployRequest struct {
	Name            string            `json:"name"`
	Files           []deployFile      `json:"files"`
	ProjectSettings map[string]any    `json:"projectSettings"`
}

type deployFile struct {
	File string `json:"file"`
	Data string `json:"data"`
}

type deployResponse struct {
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Deploy pushes html as index.html under the given deployment name and
// returns the resulting site URL.
func (c *Client) Deploy(ctx context.Context, name, html string) (string, error) {
	body, err := json.Marshal(deployRequest{
		Name:            name,
		Files:           []deployFile{{File: "index.html", Data: html}},
		ProjectSettings: map[string]any{"framework": nil},
	})
	if err != nil {
		return "", fmt.Errorf("marshal deployment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.teamID != "" {
		req.Header.Set("x-vercel-team-id", c.teamID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("publishing service error: %w", err)
	}
	defer resp.Body.Close()

	var out deployResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && resp.StatusCode < 400 {
		return "", fmt.Errorf("decode deployment response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("publishing service error: %s", out.Error.Message)
		}
		return "", fmt.Errorf("publishing service error: status %d", resp.StatusCode)
	}
	if out.URL == "" {
		return "", fmt.Errorf("publishing service error: no url in response")
	}
	return "https://" + out.URL, nil
}

// DeploymentName derives the deployment slug from the owner and the
// project's timestamp key.
func DeploymentName(userID string, timestamp int64) string {
	slug := strings.ReplaceAll(strings.ToLower(userID), "_", "-")
	return "sitee-" + slug + "-" + strconv.FormatInt(timestamp, 10)
}
