package model

import "github.com/m-mizutani/goerr/v2"

var (
	errMissingInput         = goerr.New("release context is missing")
	errMissingRepositoryURL = goerr.New("options.repositoryUrl is required")
	errMissingGitTag        = goerr.New("nextRelease.gitTag is required")
)
