package usecase

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// scpLikeURL matches "[user@]host:path" that has no scheme
var scpLikeURL = regexp.MustCompile(`^(?:(.*)@)?(.*?):(.*)$`)

// ParseRepositoryURL extracts owner and repository name from a web URL
// (scheme://[user@]host/owner/repo[.git]) or an SCP-like git URL
// ([user@]host:owner/repo[.git]). It returns the zero Repository when the
// URL cannot be parsed.
func ParseRepositoryURL(repositoryURL string) model.Repository {
	raw := repositoryURL
	if !strings.Contains(raw, "://") {
		m := scpLikeURL.FindStringSubmatch(raw)
		if m == nil {
			return model.Repository{}
		}
		auth := ""
		if m[1] != "" {
			auth = m[1] + "@"
		}
		raw = "ssh://" + auth + m[2] + "/" + m[3]
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return model.Repository{}
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return model.Repository{}
	}

	owner := segments[len(segments)-2]
	name := strings.TrimSuffix(segments[len(segments)-1], ".git")
	if name == "" {
		return model.Repository{}
	}

	return model.Repository{Owner: owner, Name: name}
}

// resolveRepository returns the canonical repository for repositoryURL. The
// search API does not follow renames, so owner and name are taken from
// GitHub rather than from the URL.
func resolveRepository(ctx context.Context, client interfaces.GitHubClient, repositoryURL string) (model.Repository, error) {
	logger := ctxlog.From(ctx)

	parsed := ParseRepositoryURL(repositoryURL)
	if parsed.IsZero() {
		return model.Repository{}, goerr.New("failed to parse repository URL",
			goerr.V("repository_url", repositoryURL))
	}

	repo, err := client.GetRepository(ctx, parsed)
	if err != nil {
		return model.Repository{}, goerr.Wrap(err, "failed to resolve repository",
			goerr.V("repository_url", repositoryURL))
	}

	if repo != parsed {
		logger.Info("Repository has been renamed",
			"from", parsed.FullName(),
			"to", repo.FullName(),
		)
	}

	return repo, nil
}
