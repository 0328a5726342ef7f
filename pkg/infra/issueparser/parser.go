// Package issueparser finds GitHub close-keyword references such as
// "fixes #12" or "closes owner/repo#34" in commit messages and PR bodies.
package issueparser

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

const defaultHost = "github.com"

var (
	fencedCode = regexp.MustCompile("(?s)```.*?```")
	inlineCode = regexp.MustCompile("`[^`\n]*`")
)

const keywordPattern = `close[sd]?|closing|fix(?:e[sd])?|fixing|resolve[sd]?|resolving`

// Parser extracts close actions from text
type Parser struct {
	action    *regexp.Regexp
	reference *regexp.Regexp
}

// New creates a Parser. URL references are recognized for github.com and
// the hosts of the given base URLs (e.g. a GitHub Enterprise API URL).
func New(baseURLs ...string) *Parser {
	hosts := []string{regexp.QuoteMeta(defaultHost)}
	for _, base := range baseURLs {
		if host := hostOf(base); host != "" && host != defaultHost {
			hosts = append(hosts, regexp.QuoteMeta(host))
		}
	}

	ref := `(?:[\w.-]+/[\w.-]+)?#\d+` +
		`|https?://(?:` + strings.Join(hosts, "|") + `)/[\w.-]+/[\w.-]+/(?:issues|pull)/\d+`
	sep := `(?:\s*,\s*(?:and\s+)?|\s+and\s+|\s*&\s*|\s+)`

	return &Parser{
		action: regexp.MustCompile(`(?i)(?:^|[^\w/#])(` + keywordPattern + `):?\s+((?:` + ref + `)(?:` + sep + `(?:` + ref + `))*)`),
		reference: regexp.MustCompile(`(?i)(?:([\w.-]+/[\w.-]+)?#(\d+))` +
			`|https?://(?:` + strings.Join(hosts, "|") + `)/([\w.-]+/[\w.-]+)/(?:issues|pull)/(\d+)`),
	}
}

// CloseActions returns close actions in order of appearance. References
// inside fenced or inline code are ignored.
func (x *Parser) CloseActions(text string) []model.CloseAction {
	text = fencedCode.ReplaceAllString(text, "")
	text = inlineCode.ReplaceAllString(text, "")

	var actions []model.CloseAction
	for _, m := range x.action.FindAllStringSubmatch(text, -1) {
		keyword, refs := m[1], m[2]

		for _, r := range x.reference.FindAllStringSubmatch(refs, -1) {
			slug, number := r[1], r[2]
			if r[4] != "" {
				slug, number = r[3], r[4]
			}

			n, err := strconv.Atoi(number)
			if err != nil || n <= 0 {
				continue
			}
			actions = append(actions, model.CloseAction{
				Keyword: keyword,
				Slug:    slug,
				Issue:   n,
			})
		}
	}

	return actions
}

// hostOf returns the web host for a base URL. API hosts such as
// api.github.example.com are mapped to github.example.com.
func hostOf(base string) string {
	if base == "" {
		return ""
	}
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "api.")
}
