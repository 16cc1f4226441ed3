package modes

import (
	"context"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// IntermediateModesExtractor wraps a source ModesExtractor and adds "create"
// to every ancestor container that does not yet exist of each source
// identifier whose own mode set contains "create", walking up via IdentifierStrategy.GetParentContainer until it
// reaches a container ResourceSet reports as existing, or the root. A PUT
// or POST that creates a brand new deeply nested container must be allowed
// to create every intermediate container along the way, so each of those
// containers needs "create" in the resulting AccessMap the same way its
// direct target does.
type IntermediateModesExtractor struct {
	source     authz.ModesExtractor
	resources  authz.ResourceSet
	identifier authz.IdentifierStrategy
}

// NewIntermediateModesExtractor builds an IntermediateModesExtractor
// wrapping source.
func NewIntermediateModesExtractor(source authz.ModesExtractor, resources authz.ResourceSet, identifier authz.IdentifierStrategy) *IntermediateModesExtractor {
	return &IntermediateModesExtractor{source: source, resources: resources, identifier: identifier}
}

// Extract runs the source extractor then, for each identifier whose mode set
// contains "create", walks up the container hierarchy adding "create" to
// every ancestor container that does not exist yet. Identifiers that don't
// themselves require "create" (a GET, HEAD, PATCH, DELETE, or OPTIONS on an
// existing or nonexistent resource) are left untouched, even if their
// ancestors don't exist; a safe read must never be denied over an unrelated
// ancestor's missing container.
func (e *IntermediateModesExtractor) Extract(ctx context.Context, op authz.Operation) (*model.AccessMap, error) {
	base, err := e.source.Extract(ctx, op)
	if err != nil {
		return nil, err
	}

	out := base.Clone()
	for _, id := range base.Keys() {
		modes, ok := base.Get(id)
		if !ok || !modes.Has(model.ModeCreate) {
			continue
		}
		if err := e.addAncestorCreateModes(ctx, out, id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *IntermediateModesExtractor) addAncestorCreateModes(ctx context.Context, out *model.AccessMap, id model.ResourceIdentifier) error {
	current := id
	for {
		if e.identifier.IsRootContainer(current) {
			return nil
		}
		parent, ok := e.identifier.GetParentContainer(current)
		if !ok {
			return nil
		}
		exists, err := e.resources.HasResource(ctx, parent)
		if err != nil {
			return authz.NewInternalServerError("checking ancestor existence", err)
		}
		if exists {
			return nil
		}
		out.Merge(parent, model.NewModeSet(model.ModeCreate))
		current = parent
	}
}
