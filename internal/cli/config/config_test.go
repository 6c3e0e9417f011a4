package config

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/steviee/cfdl/internal/cli/clienv"
	appconfig "github.com/steviee/cfdl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testPath = "/home/user/.config/cfdl/config.yaml"

func newEnv() *clienv.Env {
	return &clienv.Env{
		Config:     appconfig.DefaultConfig(),
		ConfigFile: testPath,
		Fs:         afero.NewMemMapFs(),
	}
}

func run(env *clienv.Env, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(clienv.WithEnv(context.Background(), env))
	return out.String(), err
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "Manage configuration", cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.Contains(t, cmd.Aliases, "cfg")

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"path", "show", "init", "validate"}, names)
}

func TestPathCommand(t *testing.T) {
	out, err := run(newEnv(), "path")
	require.NoError(t, err)
	assert.Equal(t, testPath+"\n", out)
}

func TestShowCommand(t *testing.T) {
	env := newEnv()
	env.Config.Defaults.GameVersion = "1.20.1"

	out, err := run(env, "show")
	require.NoError(t, err)

	var cfg appconfig.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "1.20.1", cfg.Defaults.GameVersion)
	assert.Equal(t, env.Config.API.BaseURL, cfg.API.BaseURL)
}

func TestInitCommand(t *testing.T) {
	env := newEnv()

	_, err := run(env, "init")
	require.NoError(t, err)

	cfg, err := appconfig.LoadConfig(env.Fs, testPath)
	require.NoError(t, err)
	assert.Equal(t, appconfig.DefaultConfig(), cfg)

	_, err = run(env, "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(env, "init", "--force")
	assert.NoError(t, err)
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid file",
			content: "defaults:\n  game_version: 1.20.1\n  loader: Fabric\n",
		},
		{
			name:    "invalid loader",
			content: "defaults:\n  loader: Bukkit\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "api: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv()
			require.NoError(t, afero.WriteFile(env.Fs, testPath, []byte(tt.content), 0644))

			out, err := run(env, "validate")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "is valid")
		})
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := run(newEnv(), "validate", "/nowhere.yaml")
	assert.Error(t, err)
}
