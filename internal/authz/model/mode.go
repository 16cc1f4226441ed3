package model

import (
	"encoding/json"
	"fmt"
)

// AccessMode is an operational verb a pipeline stage can require or grant.
type AccessMode string

const (
	ModeRead   AccessMode = "read"
	ModeAppend AccessMode = "append"
	ModeWrite  AccessMode = "write"
	ModeCreate AccessMode = "create"
	ModeDelete AccessMode = "delete"
)

var validAccessModes = map[AccessMode]struct{}{
	ModeRead:   {},
	ModeAppend: {},
	ModeWrite:  {},
	ModeCreate: {},
	ModeDelete: {},
}

// UnmarshalJSON validates the decoded string against the known mode set,
// in the same idiom as the generated grammar.RightsEnum enums this module
// is descended from.
func (m *AccessMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	candidate := AccessMode(s)
	if _, ok := validAccessModes[candidate]; !ok {
		return fmt.Errorf("invalid access mode %q", s)
	}
	*m = candidate
	return nil
}

// AclMode is the WebACL-specific mode, conceptually a superset alongside
// the five AccessModes: it only ever applies to the ACL resource itself.
type AclMode string

// ModeControl grants every operation on the ACL resource of a subject.
const ModeControl AclMode = "control"

// ModeSet is an unordered set of access modes required on one identifier.
type ModeSet map[AccessMode]struct{}

// NewModeSet builds a ModeSet from the given modes.
func NewModeSet(modes ...AccessMode) ModeSet {
	set := make(ModeSet, len(modes))
	for _, m := range modes {
		set[m] = struct{}{}
	}
	return set
}

// Has reports whether mode is present in the set.
func (s ModeSet) Has(mode AccessMode) bool {
	_, ok := s[mode]
	return ok
}

// With returns a new ModeSet that is s plus the given modes. s is never
// mutated: every transform stage constructs new maps instead of mutating
// maps it was handed.
func (s ModeSet) With(modes ...AccessMode) ModeSet {
	out := make(ModeSet, len(s)+len(modes))
	for m := range s {
		out[m] = struct{}{}
	}
	for _, m := range modes {
		out[m] = struct{}{}
	}
	return out
}

// Union returns a new ModeSet containing every mode in s or other.
func (s ModeSet) Union(other ModeSet) ModeSet {
	out := make(ModeSet, len(s)+len(other))
	for m := range s {
		out[m] = struct{}{}
	}
	for m := range other {
		out[m] = struct{}{}
	}
	return out
}
