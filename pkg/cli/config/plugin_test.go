package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shipnote/pkg/cli/config"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

func TestParsePluginConfig(t *testing.T) {
	tests := []struct {
		name      string
		toml      string
		url       string
		mode      model.LabelMode
		templates []string
		wantErr   bool
	}{
		{
			name:      "empty",
			toml:      "",
			mode:      model.LabelModeDefault,
			templates: []string{model.DefaultReleasedLabel},
		},
		{
			name:      "url and list",
			toml:      "githubUrl = \"https://ghe.example.com/api/v3\"\nreleasedLabels = [\"released\", \"v{{.NextRelease.Version}}\"]\n",
			url:       "https://ghe.example.com/api/v3",
			mode:      model.LabelModeCustom,
			templates: []string{"released", "v{{.NextRelease.Version}}"},
		},
		{
			name:      "single string",
			toml:      "releasedLabels = \"shipped\"\n",
			mode:      model.LabelModeCustom,
			templates: []string{"shipped"},
		},
		{
			name: "disabled",
			toml: "releasedLabels = false\n",
			mode: model.LabelModeDisabled,
		},
		{
			name:    "invalid type",
			toml:    "releasedLabels = 3\n",
			wantErr: true,
		},
		{
			name:    "broken TOML",
			toml:    "releasedLabels = [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.ParsePluginConfig([]byte(tt.toml))
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, cfg.GitHubURL, tt.url)
			gt.Equal(t, cfg.ReleasedLabels.Mode(), tt.mode)
			gt.Equal(t, cfg.ReleasedLabels.Templates(), tt.templates)
		})
	}
}

func TestPlugin_Load(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		cfg, err := (&config.Plugin{}).Load()
		gt.NoError(t, err)
		gt.True(t, cfg.ReleasedLabels.Enabled())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shipnote.toml")
		gt.NoError(t, os.WriteFile(path, []byte("releasedLabels = false\n"), 0600))

		cfg, err := (&config.Plugin{File: path}).Load()
		gt.NoError(t, err)
		gt.False(t, cfg.ReleasedLabels.Enabled())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&config.Plugin{File: filepath.Join(t.TempDir(), "missing.toml")}).Load()
		gt.Error(t, err)
	})
}
