package usecase

var (
	FindPullRequests = findPullRequests
	ExtractIssues    = extractIssues
	RenderComment    = renderComment
	RenderLabels     = renderLabels
)
