package model

// Commit is one commit included in the release
type Commit struct {
	Hash    string // Full commit SHA
	Message string // Raw commit message
}

// NextRelease describes the release that has just been published
type NextRelease struct {
	GitTag  string // Git tag of the release (e.g. v1.2.0)
	Version string // Semantic version without prefix
	Channel string // Distribution channel, empty for the default channel
	Name    string // Release name
	Type    string // Release type (major, minor, patch, ...)
	Notes   string // Generated release notes
}

// ReleaseTarget is a destination the release was published to (e.g. a package registry)
type ReleaseTarget struct {
	Name       string // Display name, targets without a name are not linked
	URL        string // Optional link to the published artifact
	PluginName string // Plugin that published the target
}

// PluginConfig holds the hook configuration provided with the release context
type PluginConfig struct {
	GitHubURL      string
	ReleasedLabels LabelConfig
}

// SuccessInput is the immutable input of one success hook invocation
type SuccessInput struct {
	RepositoryURL string
	Commits       []Commit
	NextRelease   NextRelease
	Releases      []ReleaseTarget
	Config        PluginConfig
}

// CommitHashes returns hashes of all commits in release order
func (x *SuccessInput) CommitHashes() []string {
	hashes := make([]string, 0, len(x.Commits))
	for _, c := range x.Commits {
		hashes = append(hashes, c.Hash)
	}
	return hashes
}

// NamedTargets returns release targets having a display name
func (x *SuccessInput) NamedTargets() []ReleaseTarget {
	var targets []ReleaseTarget
	for _, r := range x.Releases {
		if r.Name != "" {
			targets = append(targets, r)
		}
	}
	return targets
}
