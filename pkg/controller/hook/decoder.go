// Package hook turns a release context into a success hook run.
package hook

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

//go:embed schema.yaml
var schemaYAML []byte

const releaseContextSchema = "ReleaseContext"

var loadSchema = sync.OnceValues(func() (*openapi3.Schema, error) {
	doc, err := openapi3.NewLoader().LoadFromData(schemaYAML)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load release context schema")
	}
	if doc.Components == nil {
		return nil, goerr.New("release context schema has no components")
	}
	ref, ok := doc.Components.Schemas[releaseContextSchema]
	if !ok || ref.Value == nil {
		return nil, goerr.New("release context schema not found", goerr.V("name", releaseContextSchema))
	}
	return ref.Value, nil
})

// ErrTagInvalidContext marks a release context rejected by the schema
var ErrTagInvalidContext = goerr.NewTag("invalid_context")

type releaseContext struct {
	Options struct {
		RepositoryURL string `json:"repositoryUrl"`
	} `json:"options"`
	Commits []struct {
		Hash    string `json:"hash"`
		Message string `json:"message"`
	} `json:"commits"`
	NextRelease struct {
		GitTag  string `json:"gitTag"`
		Version string `json:"version"`
		Channel string `json:"channel"`
		Name    string `json:"name"`
		Type    string `json:"type"`
		Notes   string `json:"notes"`
	} `json:"nextRelease"`
	Releases []struct {
		Name       string `json:"name"`
		URL        string `json:"url"`
		PluginName string `json:"pluginName"`
	} `json:"releases"`
	PluginConfig struct {
		GitHubURL      string          `json:"githubUrl"`
		ReleasedLabels json.RawMessage `json:"releasedLabels"`
	} `json:"pluginConfig"`
}

// Decoder validates and decodes release contexts
type Decoder struct {
	defaults   model.PluginConfig
	trustedURL string
}

// DecoderOption is a functional option for Decoder
type DecoderOption func(*Decoder)

// WithDefaults sets plugin configuration used for fields missing in the
// context's pluginConfig
func WithDefaults(cfg model.PluginConfig) DecoderOption {
	return func(d *Decoder) {
		d.defaults = cfg
	}
}

// WithTrustedGitHubURL pins the GitHub API URL of every decoded context to
// url. A context naming another githubUrl is rejected, so that credentials
// held by the server are only ever sent to url.
func WithTrustedGitHubURL(url string) DecoderOption {
	return func(d *Decoder) {
		d.trustedURL = url
	}
}

// NewDecoder creates a Decoder
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{defaults: model.PluginConfig{ReleasedLabels: model.DefaultLabels()}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode validates data against the release context schema and converts it
// into a SuccessInput
func (d *Decoder) Decode(data []byte) (*model.SuccessInput, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "release context is not valid JSON", goerr.T(ErrTagInvalidContext))
	}
	if err := schema.VisitJSON(raw); err != nil {
		return nil, goerr.Wrap(err, "release context does not match schema", goerr.T(ErrTagInvalidContext))
	}

	var rc releaseContext
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode release context", goerr.T(ErrTagInvalidContext))
	}

	cfg := d.defaults
	if rc.PluginConfig.GitHubURL != "" {
		cfg.GitHubURL = rc.PluginConfig.GitHubURL
	}
	if d.trustedURL != "" {
		if cfg.GitHubURL != "" && !sameURL(cfg.GitHubURL, d.trustedURL) {
			return nil, goerr.New("githubUrl is not allowed",
				goerr.V("github_url", cfg.GitHubURL),
				goerr.T(ErrTagInvalidContext))
		}
		cfg.GitHubURL = d.trustedURL
	}
	if len(rc.PluginConfig.ReleasedLabels) > 0 {
		var v any
		if err := json.Unmarshal(rc.PluginConfig.ReleasedLabels, &v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode releasedLabels", goerr.T(ErrTagInvalidContext))
		}
		labels, err := model.ParseLabelConfig(v)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid releasedLabels", goerr.T(ErrTagInvalidContext))
		}
		cfg.ReleasedLabels = labels
	}

	input := &model.SuccessInput{
		RepositoryURL: rc.Options.RepositoryURL,
		NextRelease: model.NextRelease{
			GitTag:  rc.NextRelease.GitTag,
			Version: rc.NextRelease.Version,
			Channel: rc.NextRelease.Channel,
			Name:    rc.NextRelease.Name,
			Type:    rc.NextRelease.Type,
			Notes:   rc.NextRelease.Notes,
		},
		Config: cfg,
	}
	for _, c := range rc.Commits {
		input.Commits = append(input.Commits, model.Commit{Hash: c.Hash, Message: c.Message})
	}
	for _, r := range rc.Releases {
		input.Releases = append(input.Releases, model.ReleaseTarget{
			Name:       r.Name,
			URL:        r.URL,
			PluginName: r.PluginName,
		})
	}

	return input, nil
}

func sameURL(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "/"), strings.TrimSuffix(b, "/"))
}
