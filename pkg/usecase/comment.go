package usecase

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

//go:embed templates/success_comment.md
var successCommentTemplate string

var successComment = template.Must(template.New("success_comment").Funcs(template.FuncMap{
	"link": releaseLink,
}).Parse(successCommentTemplate))

type successCommentData struct {
	PullRequest bool
	GitTag      string
	Targets     []model.ReleaseTarget
}

// releaseLink renders a markdown link, or the name as inline code when the
// target has no URL
func releaseLink(target model.ReleaseTarget) string {
	if target.URL == "" {
		return "`" + target.Name + "`"
	}
	return "[" + target.Name + "](" + target.URL + ")"
}

// renderComment builds the comment posted on an issue or pull request
// included in the release. targets must only contain named targets.
func renderComment(issue *model.Issue, release model.NextRelease, targets []model.ReleaseTarget) (string, error) {
	var buf bytes.Buffer
	if err := successComment.Execute(&buf, successCommentData{
		PullRequest: issue.PullRequest,
		GitTag:      release.GitTag,
		Targets:     targets,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render comment", goerr.V("number", issue.Number))
	}
	return strings.TrimSpace(buf.String()), nil
}
