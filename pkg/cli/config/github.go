package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/shipnote/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration. Either Token or all of the App
// fields must be set.
type GitHub struct {
	APIURL         string
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	MaxRetries     int
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-url",
			Usage:       "GitHub API base URL, overridden by githubUrl of the plugin config",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("SHIPNOTE_GITHUB_URL", "GITHUB_API_URL", "GH_URL", "GITHUB_URL"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SHIPNOTE_GITHUB_TOKEN", "GH_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used when no token is given",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("SHIPNOTE_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("SHIPNOTE_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("SHIPNOTE_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.IntFlag{
			Name:        "github-max-retries",
			Usage:       "Retries of a rate limited GitHub API request",
			Value:       3,
			Destination: &c.MaxRetries,
			Sources:     cli.EnvVars("SHIPNOTE_GITHUB_MAX_RETRIES"),
		},
	}
}

// ResolveAPIURL returns the API base URL. A URL from the plugin config takes
// precedence over flags and environment variables.
func (c *GitHub) ResolveAPIURL(pluginURL string) string {
	if pluginURL != "" {
		return pluginURL
	}
	return c.APIURL
}

func (c *GitHub) hasApp() bool {
	return c.AppID != 0 || c.InstallationID != 0 || c.PrivateKey != ""
}

// Validate checks that the API URL is set and credentials are complete.
// apiURL is the resolved API base URL.
func (c *GitHub) Validate(apiURL string) error {
	if apiURL == "" {
		return goerr.New("GitHub API URL is required: set githubUrl in the plugin config, --github-url, GITHUB_API_URL, GH_URL or GITHUB_URL")
	}
	return c.ValidateCredential()
}

// ValidateCredential checks that either a token or a complete GitHub App
// credential is set
func (c *GitHub) ValidateCredential() error {
	if c.Token != "" {
		return nil
	}
	if !c.hasApp() {
		return goerr.New("GitHub credential is required: set --github-token, GH_TOKEN or GITHUB_TOKEN")
	}
	if c.AppID == 0 || c.InstallationID == 0 || c.PrivateKey == "" {
		return goerr.New("GitHub App credential is incomplete",
			goerr.V("app_id", c.AppID),
			goerr.V("installation_id", c.InstallationID),
			goerr.V("has_private_key", c.PrivateKey != ""),
		)
	}
	return nil
}

// NewClient creates a GitHub client for the resolved API URL. It fails
// before any network access when configuration is missing.
func (c *GitHub) NewClient(pluginURL string) (interfaces.GitHubClient, error) {
	apiURL := c.ResolveAPIURL(pluginURL)
	if err := c.Validate(apiURL); err != nil {
		return nil, err
	}

	opts := []githubinfra.Option{githubinfra.WithMaxRetries(c.MaxRetries)}
	if c.Token != "" {
		return githubinfra.NewClient(apiURL, c.Token, opts...)
	}
	return githubinfra.NewAppClient(apiURL, c.AppID, c.InstallationID, []byte(c.PrivateKey), opts...)
}
