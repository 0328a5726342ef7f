package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/shipnote/pkg/domain/model"
)

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	getRepositoryFunc          func(ctx context.Context, repo model.Repository) (model.Repository, error)
	searchIssuesFunc           func(ctx context.Context, query string) ([]*model.Issue, error)
	listPullRequestCommitsFunc func(ctx context.Context, repo model.Repository, number int) ([]string, error)
	getPullRequestFunc         func(ctx context.Context, repo model.Repository, number int) (*model.Issue, error)
	createCommentFunc          func(ctx context.Context, repo model.Repository, number int, body string) (string, error)
	addLabelsFunc              func(ctx context.Context, repo model.Repository, number int, labels []string) error

	mu           sync.Mutex
	queries      []string
	comments     map[int]string
	labels       map[int][]string
	repoRequests []model.Repository
}

var errMockNotConfigured = errors.New("mock not configured")

func (m *MockGitHubClient) GetRepository(ctx context.Context, repo model.Repository) (model.Repository, error) {
	m.mu.Lock()
	m.repoRequests = append(m.repoRequests, repo)
	m.mu.Unlock()

	if m.getRepositoryFunc != nil {
		return m.getRepositoryFunc(ctx, repo)
	}
	return repo, nil
}

func (m *MockGitHubClient) SearchIssues(ctx context.Context, query string) ([]*model.Issue, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.searchIssuesFunc != nil {
		return m.searchIssuesFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockGitHubClient) ListPullRequestCommits(ctx context.Context, repo model.Repository, number int) ([]string, error) {
	if m.listPullRequestCommitsFunc != nil {
		return m.listPullRequestCommitsFunc(ctx, repo, number)
	}
	return nil, errMockNotConfigured
}

func (m *MockGitHubClient) GetPullRequest(ctx context.Context, repo model.Repository, number int) (*model.Issue, error) {
	if m.getPullRequestFunc != nil {
		return m.getPullRequestFunc(ctx, repo, number)
	}
	return nil, errMockNotConfigured
}

func (m *MockGitHubClient) CreateComment(ctx context.Context, repo model.Repository, number int, body string) (string, error) {
	m.mu.Lock()
	if m.comments == nil {
		m.comments = make(map[int]string)
	}
	m.comments[number] = body
	m.mu.Unlock()

	if m.createCommentFunc != nil {
		return m.createCommentFunc(ctx, repo, number, body)
	}
	return "https://github.com/" + repo.FullName() + "/issues/1#issuecomment-1", nil
}

func (m *MockGitHubClient) AddLabels(ctx context.Context, repo model.Repository, number int, labels []string) error {
	m.mu.Lock()
	if m.labels == nil {
		m.labels = make(map[int][]string)
	}
	m.labels[number] = labels
	m.mu.Unlock()

	if m.addLabelsFunc != nil {
		return m.addLabelsFunc(ctx, repo, number, labels)
	}
	return nil
}

// MockReporter records reported results
type MockReporter struct {
	reportFunc func(ctx context.Context, req *model.HookRequest, result *model.SuccessResult) error
	results    []*model.SuccessResult
}

func (m *MockReporter) Report(ctx context.Context, req *model.HookRequest, result *model.SuccessResult) error {
	m.results = append(m.results, result)
	if m.reportFunc != nil {
		return m.reportFunc(ctx, req, result)
	}
	return nil
}
