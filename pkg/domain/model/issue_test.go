package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

func TestIssueSet(t *testing.T) {
	t.Run("keeps first insertion order", func(t *testing.T) {
		set := model.NewIssueSet()
		set.Add(&model.Issue{Number: 3})
		set.Add(&model.Issue{Number: 1})
		set.Add(&model.Issue{Number: 3})
		set.Add(&model.Issue{Number: 2})

		items := set.Items()
		gt.Equal(t, set.Len(), 3)
		gt.Equal(t, items[0].Number, 3)
		gt.Equal(t, items[1].Number, 1)
		gt.Equal(t, items[2].Number, 2)
	})

	t.Run("pull request record wins over bare issue", func(t *testing.T) {
		set := model.NewIssueSet()
		set.Add(&model.Issue{Number: 5})
		set.Add(&model.Issue{Number: 6})
		set.Add(&model.Issue{Number: 5, PullRequest: true, Body: "Fixes #6"})

		items := set.Items()
		gt.Equal(t, set.Len(), 2)
		gt.Equal(t, items[0].Number, 5)
		gt.True(t, items[0].PullRequest)
		gt.Equal(t, items[0].Body, "Fixes #6")
	})

	t.Run("bare issue does not replace pull request", func(t *testing.T) {
		set := model.NewIssueSet()
		set.Add(&model.Issue{Number: 5, PullRequest: true})
		set.Add(&model.Issue{Number: 5})

		gt.True(t, set.Items()[0].PullRequest)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		set := model.NewIssueSet()
		set.Add(nil)
		gt.Equal(t, set.Len(), 0)
	})
}

func TestRepository(t *testing.T) {
	repo := model.ParseFullName("Owner/Repo")
	gt.Equal(t, repo, model.Repository{Owner: "Owner", Name: "Repo"})
	gt.True(t, repo.Matches("owner/repo"))
	gt.False(t, repo.Matches("other/repo"))

	gt.True(t, model.ParseFullName("invalid").IsZero())
	gt.True(t, model.ParseFullName("a/b/c").IsZero())
	gt.True(t, model.ParseFullName("/repo").IsZero())
}
