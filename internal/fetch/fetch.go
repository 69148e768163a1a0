package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greenroom/internal/config"
	"greenroom/internal/services"
)

// FileInfo describes one remote file in a download manifest.
type FileInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	MD5  string `json:"md5Checksum"`
}

// Fetcher retrieves the bytes of a remote file.
type Fetcher interface {
	Fetch(ctx context.Context, file FileInfo, dst io.Writer) error
}

// HTTPFetcher downloads file bytes over HTTP with bearer-token auth.
// File bytes are requested as {base_url}/files/{id}.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPFetcher builds a fetcher from the fetch configuration.
func NewHTTPFetcher(cfg config.Fetch) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch streams the file into dst. Errors carry the service taxonomy so
// the retry loop can distinguish permanent failures from transient ones.
func (f *HTTPFetcher) Fetch(ctx context.Context, file FileInfo, dst io.Writer) error {
	url := f.baseURL + "/files/" + file.ID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "fetch", "request", "build request", err)
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "fetch", "request",
			fmt.Sprintf("fetch %s", file.Name), err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp, file.Name); err != nil {
		return err
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return services.Wrap(services.ErrTransient, "fetch", "stream",
			fmt.Sprintf("stream %s", file.Name), err)
	}
	return nil
}

func classifyStatus(resp *http.Response, name string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	marker := services.ErrTransient
	message := fmt.Sprintf("fetch %s: HTTP %d", name, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		marker = services.ErrNotFound
		message = fmt.Sprintf("fetch %s: file not found", name)
	case resp.StatusCode == http.StatusTooManyRequests:
		marker = services.ErrRateLimited
		message = fmt.Sprintf("fetch %s: rate limit exceeded", name)
	case resp.StatusCode == http.StatusForbidden:
		// The storage API reports quota exhaustion as 403 with a
		// descriptive body; everything else under 403 is a real
		// permission problem and not worth retrying.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		lowered := strings.ToLower(string(body))
		if strings.Contains(lowered, "rate") || strings.Contains(lowered, "quota") {
			marker = services.ErrRateLimited
			message = fmt.Sprintf("fetch %s: rate limit exceeded", name)
		} else {
			marker = services.ErrPermission
			message = fmt.Sprintf("fetch %s: permission denied", name)
		}
	case resp.StatusCode >= 500:
		marker = services.ErrTransient
	}

	return services.Wrap(marker, "fetch", "request", message, nil)
}
