package model

// TriState is the sum type behind an access-mode verdict: absent means no
// reader has made a statement, Allow means at least one source grants the
// mode, Deny is an explicit, absorbing refusal. Using an explicit 3-valued
// type rather than a nullable bool makes the merge lattice in Combine total
// and exhaustively pattern-matchable, per the data-model invariants.
type TriState int

const (
	Undefined TriState = iota
	Allow
	Deny
)

// Combine merges two verdicts for the same (identifier, credential group,
// mode) under the lattice false > true > undefined: a single Deny anywhere
// is absorbing, otherwise any Allow wins, otherwise the result stays
// Undefined. Combine is commutative and associative, and Undefined is its
// identity element.
func (t TriState) Combine(other TriState) TriState {
	if t == Deny || other == Deny {
		return Deny
	}
	if t == Allow || other == Allow {
		return Allow
	}
	return Undefined
}

// Permission maps a mode name (an AccessMode or AclMode cast to string) to
// its tri-state verdict. The zero value is the empty Permission: no
// statement on any mode.
type Permission map[string]TriState

// NewPermission returns an empty Permission.
func NewPermission() Permission {
	return Permission{}
}

// Get returns the verdict for mode, or Undefined if absent.
func (p Permission) Get(mode string) TriState {
	if p == nil {
		return Undefined
	}
	return p[mode]
}

// With returns a new Permission equal to p with mode set to state. p is
// never mutated, so the same Permission object can be shared by multiple
// PermissionSet entries without aliasing surprises when one caller derives
// a variant of it.
func (p Permission) With(mode string, state TriState) Permission {
	out := make(Permission, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[mode] = state
	return out
}

// Merge returns a new Permission combining every mode of p and other under
// the TriState lattice.
func (p Permission) Merge(other Permission) Permission {
	out := make(Permission, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = out[k].Combine(v)
	}
	return out
}

// AllowAll returns a Permission granting every mode in modes.
func AllowAll(modes ...string) Permission {
	p := make(Permission, len(modes))
	for _, m := range modes {
		p[m] = Allow
	}
	return p
}
