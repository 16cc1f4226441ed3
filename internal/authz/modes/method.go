// Package modes builds AccessMaps from operations: a base method-to-mode
// mapping and the IntermediateModesExtractor wrapper that adds create
// requirements for nonexistent ancestor containers.
package modes

import (
	"context"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// MethodModesExtractor is the base ModesExtractor: it maps an HTTP method
// on the operation's target to the modes that method requires. Solid's
// verb set is small and fixed, so a single lookup table suffices — there
// is no per-route rights table, since every resource is governed by its
// own ACL.
type MethodModesExtractor struct{}

// NewMethodModesExtractor returns the base extractor.
func NewMethodModesExtractor() *MethodModesExtractor {
	return &MethodModesExtractor{}
}

var methodModes = map[string]model.ModeSet{
	"GET":     model.NewModeSet(model.ModeRead),
	"HEAD":    model.NewModeSet(model.ModeRead),
	"OPTIONS": model.NewModeSet(),
	"PUT":     model.NewModeSet(model.ModeWrite, model.ModeCreate),
	"PATCH":   model.NewModeSet(model.ModeAppend, model.ModeRead),
	"POST":    model.NewModeSet(model.ModeAppend, model.ModeCreate),
	"DELETE":  model.NewModeSet(model.ModeDelete, model.ModeRead),
}

// Extract returns an AccessMap with a single entry for op.Target.
func (e *MethodModesExtractor) Extract(_ context.Context, op authz.Operation) (*model.AccessMap, error) {
	modeSet, ok := methodModes[op.Method]
	if !ok {
		modeSet = model.NewModeSet()
	}
	out := model.NewAccessMap()
	out.Set(op.Target, modeSet)
	return out, nil
}
