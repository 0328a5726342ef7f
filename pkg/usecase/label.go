package usecase

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// renderLabels renders every configured label template against the release
// input. Empty and duplicated labels are dropped. It returns nil when
// labeling is disabled.
func renderLabels(cfg model.LabelConfig, input *model.SuccessInput) ([]string, error) {
	var labels []string
	seen := make(map[string]struct{})

	for _, text := range cfg.Templates() {
		tmpl, err := template.New("label").Option("missingkey=zero").Parse(text)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid label template", goerr.V("template", text))
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, input); err != nil {
			return nil, goerr.Wrap(err, "failed to render label", goerr.V("template", text))
		}

		label := strings.TrimSpace(buf.String())
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	return labels, nil
}
