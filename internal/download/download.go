// Package download stores remote mod files on disk.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/steviee/cfdl/internal/fsutil"
)

// ErrInvalidFileName is returned when the target file name is unusable.
var ErrInvalidFileName = errors.New("invalid file name")

// StatusError is returned when the download server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.StatusCode)
}

// ProgressFunc returns a writer that observes every downloaded byte of a
// file. size is -1 when unknown.
type ProgressFunc func(fileName string, size int64) io.Writer

// Downloader fetches files over HTTP into a directory.
type Downloader struct {
	httpClient *http.Client
	fs         afero.Fs
	dir        string
	userAgent  string
	progress   ProgressFunc
}

// Config holds downloader configuration.
type Config struct {
	Dir        string
	UserAgent  string
	HTTPClient *http.Client
	Fs         afero.Fs
	Progress   ProgressFunc
}

// New creates a Downloader. A nil Fs means the OS filesystem and an empty
// Dir means the working directory.
func New(config *Config) *Downloader {
	if config == nil {
		config = &Config{}
	}

	d := &Downloader{
		httpClient: config.HTTPClient,
		fs:         config.Fs,
		dir:        config.Dir,
		userAgent:  config.UserAgent,
		progress:   config.Progress,
	}

	if d.httpClient == nil {
		d.httpClient = &http.Client{}
	}
	if d.fs == nil {
		d.fs = afero.NewOsFs()
	}
	if d.dir == "" {
		d.dir = "."
	}

	return d
}

// Dir returns the target directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Fetch downloads url into the target directory as fileName and returns the
// final path. The body is streamed into a temporary file which is renamed on
// success and removed otherwise.
func (d *Downloader) Fetch(ctx context.Context, url, fileName string) (string, error) {
	name, err := cleanFileName(fileName)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(d.dir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	slog.Debug("downloading file", "url", url, "destination", dest)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if d.progress != nil {
		if w := d.progress(name, resp.ContentLength); w != nil {
			body = io.TeeReader(resp.Body, w)
		}
	}

	n, err := fsutil.AtomicWrite(d.fs, dest, body, 0644)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	slog.Info("file downloaded",
		"url", url,
		"destination", dest,
		"bytes", n)

	return dest, nil
}

// cleanFileName reduces name to a bare file name inside the target directory.
func cleanFileName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return base, nil
}
