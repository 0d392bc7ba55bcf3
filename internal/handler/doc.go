// Package handler constructs the cacheable unit of behavior behind a script
// function.
//
// A Handler is bound to the artifact it was built from, as that artifact was
// at construction time. Construction re-checks that the artifact still exists,
// reads it, and hands it to the hook registered for its extension. Failures
// fall into two classes: ErrArtifactUnavailable when the artifact vanished or
// could not be read, and ErrArtifactInvalid when no hook accepts it.
package handler
