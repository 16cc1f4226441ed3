package modes

import (
	"context"
	"testing"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

func TestMethodModesExtractorGET(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/foo")
	op := authz.Operation{Target: target, Method: "GET"}

	out, err := NewMethodModesExtractor().Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	modeSet, ok := out.Get(target)
	if !ok {
		t.Fatal("expected an entry for the target identifier")
	}
	if !modeSet.Has(model.ModeRead) {
		t.Error("expected GET to require read")
	}
	if modeSet.Has(model.ModeWrite) {
		t.Error("did not expect GET to require write")
	}
}

func TestMethodModesExtractorPUT(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/foo")
	op := authz.Operation{Target: target, Method: "PUT"}

	out, err := NewMethodModesExtractor().Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	modeSet, _ := out.Get(target)
	if !modeSet.Has(model.ModeWrite) || !modeSet.Has(model.ModeCreate) {
		t.Errorf("expected PUT to require write and create, got %v", modeSet)
	}
}

func TestMethodModesExtractorUnknownMethod(t *testing.T) {
	target := model.NewResourceIdentifier("http://example.org/foo")
	op := authz.Operation{Target: target, Method: "TRACE"}

	out, err := NewMethodModesExtractor().Extract(context.Background(), op)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	modeSet, ok := out.Get(target)
	if !ok {
		t.Fatal("expected an entry even for an unrecognized method")
	}
	if len(modeSet) != 0 {
		t.Errorf("expected an empty mode set, got %v", modeSet)
	}
}
