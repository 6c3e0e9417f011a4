package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/steviee/cfdl/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	d := New(nil)

	assert.Equal(t, ".", d.Dir())
	assert.NotNil(t, d.httpClient)
	assert.IsType(t, &afero.OsFs{}, d.fs)
}

func TestDownloader_Fetch(t *testing.T) {
	payload := []byte("PK\x03\x04 jar bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f.jar", r.URL.Path)
		assert.Equal(t, "cfdl-test", r.Header.Get("User-Agent"))
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	fs := afero.NewMemMapFs()
	d := New(&Config{Dir: "/mods", Fs: fs, UserAgent: "cfdl-test"})

	path, err := d.Fetch(context.Background(), server.URL+"/files/f.jar", "f.jar")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/mods", "f.jar"), path)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, payload, content)

	assertOnlyFile(t, fs, "/mods", "f.jar")
}

func TestDownloader_Fetch_Progress(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 4096)

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantSize int64
	}{
		{
			name: "known length",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
				_, _ = w.Write(payload)
			},
			wantSize: int64(len(payload)),
		},
		{
			name: "unknown length",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.(http.Flusher).Flush()
				_, _ = w.Write(payload)
			},
			wantSize: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			var seen bytes.Buffer
			var gotName string
			var gotSize int64

			d := New(&Config{
				Dir: "/mods",
				Fs:  afero.NewMemMapFs(),
				Progress: func(name string, size int64) io.Writer {
					gotName = name
					gotSize = size
					return &seen
				},
			})

			_, err := d.Fetch(context.Background(), server.URL, "big.jar")

			require.NoError(t, err)
			assert.Equal(t, "big.jar", gotName)
			assert.Equal(t, tt.wantSize, gotSize)
			assert.Equal(t, len(payload), seen.Len())
		})
	}
}

func TestDownloader_Fetch_BadStatusLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fs := afero.NewMemMapFs()
	d := New(&Config{Dir: "/mods", Fs: fs})

	_, err := d.Fetch(context.Background(), server.URL, "f.jar")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)

	exists, err := afero.Exists(fs, "/mods/f.jar")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDownloader_Fetch_TruncatedBodyLeavesNoTempFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("short"))
	}))
	defer server.Close()

	fs := afero.NewMemMapFs()
	d := New(&Config{Dir: "/mods", Fs: fs})

	_, err := d.Fetch(context.Background(), server.URL, "f.jar")
	require.Error(t, err)

	matches, err := afero.Glob(fs, filepath.Join("/mods", fsutil.TempPattern))
	require.NoError(t, err)
	assert.Empty(t, matches)

	exists, err := afero.Exists(fs, "/mods/f.jar")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDownloader_Fetch_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(&Config{Dir: "/mods", Fs: afero.NewMemMapFs()})
	_, err := d.Fetch(ctx, server.URL, "f.jar")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "jei-1.20.1-forge-15.2.0.27.jar", want: "jei-1.20.1-forge-15.2.0.27.jar"},
		{name: "traversal", input: "../../etc/passwd", want: "passwd"},
		{name: "windows separators", input: `..\..\evil.jar`, want: "evil.jar"},
		{name: "trimmed", input: "  f.jar ", want: "f.jar"},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "dot dot", input: "..", wantErr: true},
		{name: "slash", input: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cleanFileName(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFileName)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func assertOnlyFile(t *testing.T, fs afero.Fs, dir, name string) {
	t.Helper()

	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name())
}
