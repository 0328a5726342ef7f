package model

import "strings"

// Repository identifies a repository on the hosting service
type Repository struct {
	Owner string
	Name  string
}

// IsZero returns true if the repository could not be determined
func (x Repository) IsZero() bool {
	return x.Owner == "" && x.Name == ""
}

// FullName returns "owner/name"
func (x Repository) FullName() string {
	return x.Owner + "/" + x.Name
}

// Matches reports whether slug ("owner/name") refers to this repository.
// GitHub treats owner and repository names case-insensitively.
func (x Repository) Matches(slug string) bool {
	return strings.EqualFold(slug, x.FullName())
}

// ParseFullName splits "owner/name" into a Repository. It returns the zero
// Repository if fullName is not in that form.
func ParseFullName(fullName string) Repository {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}
	}
	return Repository{Owner: owner, Name: name}
}
