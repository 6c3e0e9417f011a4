// Package clienv carries the resolved global CLI state to subcommands
// through the command context.
package clienv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/steviee/cfdl/internal/catalog"
	"github.com/steviee/cfdl/internal/config"
	"github.com/steviee/cfdl/internal/cursetools"
	"github.com/steviee/cfdl/internal/download"
	"github.com/steviee/cfdl/internal/resolver"
)

// Env is the state shared by every subcommand.
type Env struct {
	Config     *config.Config
	ConfigFile string
	JSON       bool
	Quiet      bool
	Verbose    bool
	Fs         afero.Fs
}

type envKey struct{}

// WithEnv returns a copy of ctx carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env stored in ctx, or defaults when none is set.
func FromContext(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
			return env
		}
	}
	return &Env{Config: config.DefaultConfig(), Fs: afero.NewOsFs()}
}

// APIClient builds a curse.tools client from the configuration.
func (e *Env) APIClient() *cursetools.Client {
	return cursetools.NewClient(&cursetools.Config{
		BaseURL:           e.Config.API.BaseURL,
		Timeout:           e.Config.API.Timeout,
		UserAgent:         e.Config.API.UserAgent,
		RequestsPerMinute: e.Config.API.RequestsPerMinute,
	})
}

// VersionSource returns the catalog source used by the version commands.
func (e *Env) VersionSource() catalog.VersionSource {
	return e.APIClient()
}

// Resolver builds a resolver from the configuration.
func (e *Env) Resolver() *resolver.Resolver {
	return resolver.New(e.APIClient(), &resolver.Options{SlugTTL: e.Config.Cache.SlugTTL})
}

// Downloader builds a downloader writing into dir, or the configured
// download directory when dir is empty.
func (e *Env) Downloader(dir string, progress download.ProgressFunc) (*download.Downloader, error) {
	if dir == "" {
		dir = e.Config.Downloads.Directory
	}

	dir, err := config.ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	return download.New(&download.Config{
		Dir:       dir,
		UserAgent: e.Config.API.UserAgent,
		Fs:        e.Fs,
		Progress:  progress,
	}), nil
}

// Output is the JSON envelope written in --json mode.
type Output struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WriteJSON writes a success envelope around data.
func WriteJSON(w io.Writer, data interface{}) error {
	return encode(w, Output{Status: "success", Data: data})
}

// WriteJSONError writes an error envelope and returns err unchanged.
func WriteJSONError(w io.Writer, err error) error {
	return WriteJSONErrorData(w, err, nil)
}

// WriteJSONErrorData writes an error envelope that also carries data and
// returns err unchanged.
func WriteJSONErrorData(w io.Writer, err error, data interface{}) error {
	_ = encode(w, Output{Status: "error", Data: data, Error: err.Error()})
	return err
}

func encode(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}
