package reader

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// UnionPermissionReader invokes every child reader concurrently and merges
// their PermissionMaps under the TriState lattice. Any child's error
// propagates; there is no per-reader swallow.
type UnionPermissionReader struct {
	readers []authz.PermissionReader
}

// NewUnionPermissionReader builds a UnionPermissionReader over readers.
func NewUnionPermissionReader(readers ...authz.PermissionReader) *UnionPermissionReader {
	return &UnionPermissionReader{readers: readers}
}

// CanHandle never declines; individual child readers decline on their own
// Handle call via HandleSafe.
func (r *UnionPermissionReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

// Handle runs every child reader against the same accessMap and merges the
// results. Child readers run concurrently via errgroup; the first error
// cancels the group's context and is returned to the caller.
func (r *UnionPermissionReader) Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	results := make([]*model.PermissionMap, len(r.readers))
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range r.readers {
		g.Go(func() error {
			result, err := authz.HandleSafe(gctx, child, credentials, accessMap)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return model.Merge(results...), nil
}
