package types

import "github.com/google/uuid"

// RunID identifies one invocation of the success hook
type RunID string

// NewRunID returns a fresh random RunID
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string {
	return string(x)
}
