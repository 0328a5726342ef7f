package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Plugin holds the path of the plugin configuration file
type Plugin struct {
	File string
}

// pluginFile is the TOML layout of the plugin configuration file
type pluginFile struct {
	GitHubURL      string `toml:"githubUrl"`
	ReleasedLabels any    `toml:"releasedLabels"`
}

// Flags returns CLI flags for the plugin configuration
func (c *Plugin) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Plugin configuration file (TOML). pluginConfig in the release context takes precedence",
			Destination: &c.File,
			Sources:     cli.EnvVars("SHIPNOTE_CONFIG"),
		},
	}
}

// Load reads the plugin configuration file. Without a file the default
// configuration is returned.
func (c *Plugin) Load() (model.PluginConfig, error) {
	if c.File == "" {
		return model.PluginConfig{ReleasedLabels: model.DefaultLabels()}, nil
	}

	raw, err := os.ReadFile(c.File)
	if err != nil {
		return model.PluginConfig{}, goerr.Wrap(err, "failed to read plugin config", goerr.V("file", c.File))
	}

	return ParsePluginConfig(raw)
}

// ParsePluginConfig decodes TOML plugin configuration
func ParsePluginConfig(raw []byte) (model.PluginConfig, error) {
	var file pluginFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return model.PluginConfig{}, goerr.Wrap(err, "failed to parse plugin config")
	}

	labels, err := model.ParseLabelConfig(file.ReleasedLabels)
	if err != nil {
		return model.PluginConfig{}, goerr.Wrap(err, "invalid releasedLabels in plugin config")
	}

	return model.PluginConfig{
		GitHubURL:      file.GitHubURL,
		ReleasedLabels: labels,
	}, nil
}
