// Package fetch downloads remote CSV inputs to a local staging directory
// before import.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 60 * time.Second

// ProgressCallback is called periodically with the number of bytes received.
type ProgressCallback func(source string, bytesRead int64)

// IsRemote reports whether an input is an http(s) URL rather than a local path.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Download retrieves rawURL into destDir, naming the file after the last
// URL path segment, and returns the local path.
func Download(ctx context.Context, rawURL, destDir string, progress ProgressCallback) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive a file name from %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: DefaultTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	localPath := filepath.Join(destDir, name)
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}

	reader := io.Reader(resp.Body)
	if progress != nil {
		reader = &countingReader{reader: resp.Body, source: rawURL, progress: progress}
	}

	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", localPath, err)
	}

	return localPath, nil
}

type countingReader struct {
	reader   io.Reader
	source   string
	progress ProgressCallback
	total    int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.total += int64(n)
		c.progress(c.source, c.total)
	}
	return n, err
}
