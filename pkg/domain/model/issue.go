package model

// Issue is a pull request or issue that may have been resolved by the release
type Issue struct {
	Number         int
	Title          string
	Body           string
	HTMLURL        string
	PullRequest    bool   // true if the item is a pull request
	MergeCommitSHA string // set only when fetched from the pull request API
}

// Kind returns "PR" or "issue"
func (x *Issue) Kind() string {
	if x.PullRequest {
		return "PR"
	}
	return "issue"
}

// CloseAction is a close-keyword reference found in free text such as "fixes owner/repo#12"
type CloseAction struct {
	Keyword string // Keyword as written (e.g. "Fixes")
	Slug    string // "owner/repo" qualifier, empty for local references
	Issue   int    // Referenced issue number
}

// IssueSet is an insertion ordered set of issues keyed by number
type IssueSet struct {
	order []int
	items map[int]*Issue
}

// NewIssueSet creates an empty IssueSet
func NewIssueSet() *IssueSet {
	return &IssueSet{items: make(map[int]*Issue)}
}

// Add inserts issue unless its number is already present. A pull request
// record replaces a bare issue record of the same number in place.
func (x *IssueSet) Add(issue *Issue) {
	if issue == nil {
		return
	}
	cur, ok := x.items[issue.Number]
	if !ok {
		x.order = append(x.order, issue.Number)
		x.items[issue.Number] = issue
		return
	}
	if !cur.PullRequest && issue.PullRequest {
		x.items[issue.Number] = issue
	}
}

// Len returns number of distinct issues
func (x *IssueSet) Len() int {
	return len(x.order)
}

// Items returns issues in first insertion order
func (x *IssueSet) Items() []*Issue {
	items := make([]*Issue, 0, len(x.order))
	for _, n := range x.order {
		items = append(items, x.items[n])
	}
	return items
}
