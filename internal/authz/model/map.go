package model

// AccessMap maps a resource identifier to the set of modes an operation
// requires on it. It is built by a ModesExtractor and consumed by readers;
// readers must treat it as read-only and build a new AccessMap for any
// transform, never mutate the one they were handed.
type AccessMap struct {
	order   []string
	ids     map[string]ResourceIdentifier
	entries map[string]ModeSet
}

// NewAccessMap returns an empty AccessMap.
func NewAccessMap() *AccessMap {
	return &AccessMap{
		ids:     make(map[string]ResourceIdentifier),
		entries: make(map[string]ModeSet),
	}
}

// Set records modes required on id, replacing any previous entry. Order of
// first insertion is preserved by Keys for deterministic iteration.
func (m *AccessMap) Set(id ResourceIdentifier, modes ModeSet) {
	key := id.PathKey()
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.ids[key] = id
	m.entries[key] = modes
}

// Merge adds modes to id's existing entry (union), creating the entry if
// absent. Used by transform readers that add derived requirements without
// dropping the original ones.
func (m *AccessMap) Merge(id ResourceIdentifier, modes ModeSet) {
	key := id.PathKey()
	existing, ok := m.entries[key]
	if !ok {
		m.Set(id, modes)
		return
	}
	m.entries[key] = existing.Union(modes)
	m.ids[key] = id
}

// Get returns the mode set for id and whether an entry exists. An entry may
// have an empty ModeSet and still be present: a reader may need to report
// on an identifier even when it grants no modes for it.
func (m *AccessMap) Get(id ResourceIdentifier) (ModeSet, bool) {
	modes, ok := m.entries[id.PathKey()]
	return modes, ok
}

// Has reports whether id has an entry, including one with an empty ModeSet.
func (m *AccessMap) Has(id ResourceIdentifier) bool {
	_, ok := m.entries[id.PathKey()]
	return ok
}

// Delete removes id's entry, if any.
func (m *AccessMap) Delete(id ResourceIdentifier) {
	key := id.PathKey()
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	delete(m.ids, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of entries.
func (m *AccessMap) Len() int {
	return len(m.order)
}

// Keys returns the identifiers in insertion order, for deterministic
// iteration in tests and in readers that must pick "the longest path".
func (m *AccessMap) Keys() []ResourceIdentifier {
	out := make([]ResourceIdentifier, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.ids[k])
	}
	return out
}

// Clone returns a deep-enough copy: a new AccessMap whose mutations never
// affect m. ModeSet values are shared since they are never mutated in
// place (see ModeSet.With/Union).
func (m *AccessMap) Clone() *AccessMap {
	out := NewAccessMap()
	for _, k := range m.order {
		out.Set(m.ids[k], m.entries[k])
	}
	return out
}

// PermissionSet maps credential group to the Permission granted to it.
type PermissionSet map[CredentialGroup]Permission

// Merge returns a new PermissionSet combining every group of ps and other
// under the Permission/TriState lattice.
func (ps PermissionSet) Merge(other PermissionSet) PermissionSet {
	out := make(PermissionSet, len(ps)+len(other))
	for g, p := range ps {
		out[g] = p
	}
	for g, p := range other {
		if existing, ok := out[g]; ok {
			out[g] = existing.Merge(p)
		} else {
			out[g] = p
		}
	}
	return out
}

// PermissionMap maps a resource identifier to the PermissionSet a reader
// produced for it. A reader may return an incomplete map; identifiers
// missing from it are treated downstream as granting no permission.
type PermissionMap struct {
	order   []string
	ids     map[string]ResourceIdentifier
	entries map[string]PermissionSet
}

// NewPermissionMap returns an empty PermissionMap.
func NewPermissionMap() *PermissionMap {
	return &PermissionMap{
		ids:     make(map[string]ResourceIdentifier),
		entries: make(map[string]PermissionSet),
	}
}

// Set records the PermissionSet for id, replacing any previous entry.
func (m *PermissionMap) Set(id ResourceIdentifier, set PermissionSet) {
	key := id.PathKey()
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.ids[key] = id
	m.entries[key] = set
}

// Get returns the PermissionSet for id, defaulting to an empty set when
// absent — "missing identifiers are treated as no permission downstream".
func (m *PermissionMap) Get(id ResourceIdentifier) PermissionSet {
	if set, ok := m.entries[id.PathKey()]; ok {
		return set
	}
	return PermissionSet{}
}

// Has reports whether id has an explicit entry (as opposed to the implicit
// empty default Get falls back to).
func (m *PermissionMap) Has(id ResourceIdentifier) bool {
	_, ok := m.entries[id.PathKey()]
	return ok
}

// Len reports the number of entries.
func (m *PermissionMap) Len() int {
	return len(m.order)
}

// Keys returns the identifiers in insertion order.
func (m *PermissionMap) Keys() []ResourceIdentifier {
	out := make([]ResourceIdentifier, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.ids[k])
	}
	return out
}

// Merge returns a new PermissionMap that is the per-identifier,
// per-credential-group, per-mode union of every non-nil map in maps under
// the TriState lattice. Used by UnionPermissionReader.
func Merge(maps ...*PermissionMap) *PermissionMap {
	out := NewPermissionMap()
	for _, pm := range maps {
		if pm == nil {
			continue
		}
		for _, k := range pm.order {
			id := pm.ids[k]
			if out.Has(id) {
				out.Set(id, out.Get(id).Merge(pm.entries[k]))
			} else {
				out.Set(id, pm.entries[k])
			}
		}
	}
	return out
}
