package artifact

import (
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/fsutil"
)

// Artifact is a named backing resource in a Store.
type Artifact struct {
	FileName  string
	BaseName  string
	Extension string
}

// New splits fileName into base name and extension. The file name is
// normalized first so that comparisons against logical names are stable.
func New(fileName string) Artifact {
	fileName = NormalizeName(fileName)
	base, ext := fsutil.SplitFileName(fileName)
	return Artifact{FileName: fileName, BaseName: base, Extension: ext}
}

// Name returns the logical name the artifact is listed under.
func (a Artifact) Name() fnname.Name {
	return fnname.Qualified(a.BaseName, a.Extension)
}

// IsZero reports whether a is the zero Artifact.
func (a Artifact) IsZero() bool {
	return a == Artifact{}
}

// NormalizeName returns the canonical form of an artifact or name component.
// Stores may hand back names composed differently from what callers type.
func NormalizeName(s string) string {
	return fnname.NormalizeComponent(s)
}
