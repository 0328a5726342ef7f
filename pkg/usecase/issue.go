package usecase

import (
	"github.com/m-mizutani/shipnote/pkg/domain/interfaces"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// extractIssues returns issue numbers referenced with close keywords in PR
// bodies and commit messages. References to other repositories are dropped.
// Numbers may repeat.
func extractIssues(parser interfaces.CloseKeywordParser, repo model.Repository, prs []*model.Issue, commits []model.Commit) []int {
	texts := make([]string, 0, len(prs)+len(commits))
	for _, pr := range prs {
		texts = append(texts, pr.Body)
	}
	for _, commit := range commits {
		texts = append(texts, commit.Message)
	}

	var numbers []int
	for _, text := range texts {
		if text == "" {
			continue
		}
		for _, action := range parser.CloseActions(text) {
			if action.Slug != "" && !repo.Matches(action.Slug) {
				continue
			}
			numbers = append(numbers, action.Issue)
		}
	}
	return numbers
}
