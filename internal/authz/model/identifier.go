// Package model holds the value types shared by every stage of the
// authorization pipeline: resource identifiers, access modes, credentials,
// the three-valued permission lattice, and the identifier-keyed maps built
// on top of them.
package model

import "strings"

// ResourceIdentifier is the absolute URL of a resource. Equality is by
// Path alone, never by pointer identity, so two identifiers built from the
// same string are interchangeable anywhere a map key is needed.
type ResourceIdentifier struct {
	Path string
}

// NewResourceIdentifier builds a ResourceIdentifier from a path.
func NewResourceIdentifier(path string) ResourceIdentifier {
	return ResourceIdentifier{Path: path}
}

// PathKey returns the string used to key identifier-indexed maps.
func (id ResourceIdentifier) PathKey() string {
	return id.Path
}

func (id ResourceIdentifier) String() string {
	return id.Path
}

// IsRootContainer reports whether id is the root of its authority, i.e. its
// path has no non-empty segment after the scheme and host.
func (id ResourceIdentifier) IsRootContainer() bool {
	trimmed := strings.TrimSuffix(id.Path, "/")
	idx := strings.Index(trimmed, "://")
	if idx < 0 {
		return trimmed == "" || trimmed == "/"
	}
	rest := trimmed[idx+3:]
	return !strings.Contains(rest, "/")
}

// IsContainer reports whether id denotes a container (its path ends in "/").
func (id ResourceIdentifier) IsContainer() bool {
	return strings.HasSuffix(id.Path, "/")
}
