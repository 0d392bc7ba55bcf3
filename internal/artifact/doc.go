// Package artifact defines the read-only contract between the function
// factory and the place function scripts live.
//
// An Artifact is one named resource, usually a file such as "sum.hcl". Its
// extension doubles as the namespace of the function it defines and its base
// name as the local part. Stores only have to enumerate names, answer
// existence checks and hand out content; the factory never writes to them.
package artifact
