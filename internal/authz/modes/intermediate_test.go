package modes

import (
	"context"
	"strings"
	"testing"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// pathIdentifierStrategy is a minimal IdentifierStrategy for tests: parent
// of ".../a/b/" is ".../a/", computed by trimming the last non-empty path
// segment.
type pathIdentifierStrategy struct{}

func (pathIdentifierStrategy) IsRootContainer(id model.ResourceIdentifier) bool {
	return id.IsRootContainer()
}

func (pathIdentifierStrategy) GetParentContainer(id model.ResourceIdentifier) (model.ResourceIdentifier, bool) {
	if id.IsRootContainer() {
		return model.ResourceIdentifier{}, false
	}
	trimmed := strings.TrimSuffix(id.Path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return model.ResourceIdentifier{}, false
	}
	return model.NewResourceIdentifier(trimmed[:idx+1]), true
}

type fakeResourceSet struct {
	existing map[string]bool
}

func (f fakeResourceSet) HasResource(_ context.Context, id model.ResourceIdentifier) (bool, error) {
	return f.existing[id.PathKey()], nil
}

func TestIntermediateModesExtractorAddsCreateForMissingAncestors(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/a/b/c")
	op := authz.Operation{Target: target, Method: "PUT"}

	resources := fakeResourceSet{existing: map[string]bool{
		"http://example.org/": true,
	}}

	extractor := NewIntermediateModesExtractor(NewMethodModesExtractor(), resources, pathIdentifierStrategy{})
	out, err := extractor.Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	for _, ancestor := range []string{"http://example.org/a/b/", "http://example.org/a/"} {
		modeSet, ok := out.Get(model.NewResourceIdentifier(ancestor))
		if !ok {
			t.Fatalf("expected an entry for missing ancestor %s", ancestor)
		}
		if !modeSet.Has(model.ModeCreate) {
			t.Errorf("expected create mode on missing ancestor %s, got %v", ancestor, modeSet)
		}
	}

	if _, ok := out.Get(model.NewResourceIdentifier("http://example.org/")); ok {
		t.Error("did not expect an entry for the existing root container")
	}
}

func TestIntermediateModesExtractorStopsAtExistingAncestor(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/a/b/c")
	op := authz.Operation{Target: target, Method: "PUT"}

	resources := fakeResourceSet{existing: map[string]bool{
		"http://example.org/a/": true,
	}}

	extractor := NewIntermediateModesExtractor(NewMethodModesExtractor(), resources, pathIdentifierStrategy{})
	out, err := extractor.Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if _, ok := out.Get(model.NewResourceIdentifier("http://example.org/a/b/")); !ok {
		t.Fatal("expected an entry for the missing direct parent")
	}
	if _, ok := out.Get(model.NewResourceIdentifier("http://example.org/a/")); ok {
		t.Error("did not expect the walk to continue past the existing ancestor")
	}
}

func TestIntermediateModesExtractorPreservesTargetModes(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/a/")
	op := authz.Operation{Target: target, Method: "GET"}

	resources := fakeResourceSet{existing: map[string]bool{
		"http://example.org/": true,
	}}

	extractor := NewIntermediateModesExtractor(NewMethodModesExtractor(), resources, pathIdentifierStrategy{})
	out, err := extractor.Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	modeSet, ok := out.Get(target)
	if !ok {
		t.Fatal("expected the target's own entry to survive")
	}
	if !modeSet.Has(model.ModeRead) {
		t.Errorf("expected the original read requirement to be preserved, got %v", modeSet)
	}
}

func TestIntermediateModesExtractorDoesNotAddCreateForReadOfMissingAncestor(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/a/b/c")
	op := authz.Operation{Target: target, Method: "GET"}

	// No ancestor exists, but the operation is a GET: create must never be
	// derived for a method that doesn't itself require it.
	resources := fakeResourceSet{existing: map[string]bool{}}

	extractor := NewIntermediateModesExtractor(NewMethodModesExtractor(), resources, pathIdentifierStrategy{})
	out, err := extractor.Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	modeSet, ok := out.Get(target)
	if !ok {
		t.Fatal("expected the target's own entry to survive")
	}
	if !modeSet.Has(model.ModeRead) {
		t.Errorf("expected the original read requirement to be preserved, got %v", modeSet)
	}
	if modeSet.Has(model.ModeCreate) {
		t.Errorf("did not expect create on the target itself for a GET, got %v", modeSet)
	}

	for _, ancestor := range []string{"http://example.org/a/b/", "http://example.org/a/"} {
		if _, ok := out.Get(model.NewResourceIdentifier(ancestor)); ok {
			t.Errorf("did not expect an entry for ancestor %s on a GET with no create mode", ancestor)
		}
	}
}
