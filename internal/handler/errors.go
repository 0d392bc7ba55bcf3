package handler

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactUnavailable means the artifact disappeared between
	// resolution and construction, or its content could not be read.
	ErrArtifactUnavailable = errors.New("artifact unavailable")

	// ErrArtifactInvalid means the artifact content could not be turned into
	// a function, including when no hook handles its extension.
	ErrArtifactInvalid = errors.New("artifact invalid")
)

// ConstructError reports a failed construction for one artifact.
type ConstructError struct {
	FileName string
	Kind     error // ErrArtifactUnavailable or ErrArtifactInvalid
	Err      error
}

// Error implements the error interface.
func (e *ConstructError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.FileName, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.FileName, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ConstructError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unavailable(fileName string, err error) error {
	return &ConstructError{FileName: fileName, Kind: ErrArtifactUnavailable, Err: err}
}

func invalid(fileName string, err error) error {
	return &ConstructError{FileName: fileName, Kind: ErrArtifactInvalid, Err: err}
}
