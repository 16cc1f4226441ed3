// Package quads implements the in-memory indexed RDF triple/quad
// representation the WebAcl reader parses ACL documents into. It models
// the "internal/quads" content type ResourceStore.GetRepresentation is
// asked for: a flat set of (subject, predicate, object) statements with
// the two index lookups ACL rule matching needs.
package quads

// Quad is a single RDF statement. Graph is unused by WebACL documents
// (they are unnamed-graph) but kept so the type can back a named-graph
// store elsewhere without a breaking change.
type Quad struct {
	Subject   string
	Predicate string
	Object    string
	Graph     string
}

// Store is an immutable-after-build, indexed set of quads. It is owned by
// the WebAclReader for the duration of one ACL fetch and is never shared
// across requests.
type Store struct {
	quads     []Quad
	bySubject map[string][]int
	byPredObj map[string][]int
}

// NewStore builds a Store from a flat quad slice, building both indexes
// once up front — ACL rule filtering does many subjectsWith/quadsOf
// lookups per fetched document, so paying the index cost once per fetch is
// cheaper than scanning the slice per lookup.
func NewStore(all []Quad) *Store {
	s := &Store{
		quads:     all,
		bySubject: make(map[string][]int, len(all)),
		byPredObj: make(map[string][]int, len(all)),
	}
	for i, q := range all {
		s.bySubject[q.Subject] = append(s.bySubject[q.Subject], i)
		s.byPredObj[predObjKey(q.Predicate, q.Object)] = append(s.byPredObj[predObjKey(q.Predicate, q.Object)], i)
	}
	return s
}

func predObjKey(predicate, object string) string {
	return predicate + "\x00" + object
}

// QuadsOf returns every quad whose subject is s, in insertion order.
func (s *Store) QuadsOf(subject string) []Quad {
	idx := s.bySubject[subject]
	out := make([]Quad, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.quads[i])
	}
	return out
}

// SubjectsWith returns, deduplicated and in first-seen order, every subject
// that has at least one quad with the given predicate and object.
func (s *Store) SubjectsWith(predicate, object string) []string {
	idx := s.byPredObj[predObjKey(predicate, object)]
	seen := make(map[string]struct{}, len(idx))
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		subj := s.quads[i].Subject
		if _, ok := seen[subj]; ok {
			continue
		}
		seen[subj] = struct{}{}
		out = append(out, subj)
	}
	return out
}

// HasSubjectWith reports whether subject has a quad with the given
// predicate and object, e.g. "is subject rdf:type acl:Authorization?".
func (s *Store) HasSubjectWith(subject, predicate, object string) bool {
	for _, q := range s.QuadsOf(subject) {
		if q.Predicate == predicate && q.Object == object {
			return true
		}
	}
	return false
}

// Len reports the number of quads in the store.
func (s *Store) Len() int {
	return len(s.quads)
}

// SubStore returns a new Store containing only the quads of the given
// subjects, preserving each subject's original quad order. Used to build
// the direct/indirect rule sub-stores in WebAclReader's rule filtering.
func (s *Store) SubStore(subjects []string) *Store {
	var all []Quad
	for _, subj := range subjects {
		all = append(all, s.QuadsOf(subj)...)
	}
	return NewStore(all)
}

// AllSubjectsWithType returns every subject with `rdf:type typeObject`.
func (s *Store) AllSubjectsWithType(typeObject string) []string {
	return s.SubjectsWith(RDFType, typeObject)
}
