package reader

import (
	"context"
	"regexp"
	"strings"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
)

// Route pairs a regular expression (matched against an identifier's path
// with the reader's base URL stripped) with the sub-reader that handles
// every identifier matching it.
type Route struct {
	Pattern *regexp.Regexp
	Reader  authz.PermissionReader
}

// PathBasedReader dispatches identifiers to different sub-readers by
// URL-path regex, in route order: each identifier goes to the first
// matching route. Identifiers matching no route are dropped silently —
// they simply receive no verdict.
type PathBasedReader struct {
	base   string
	routes []Route
}

// NewPathBasedReader builds a PathBasedReader. base is trimmed from the
// front of each identifier's path before matching, so patterns can be
// written relative to the pod's root.
func NewPathBasedReader(base string, routes []Route) *PathBasedReader {
	return &PathBasedReader{base: base, routes: routes}
}

// CanHandle never declines.
func (r *PathBasedReader) CanHandle(context.Context, model.CredentialSet, *model.AccessMap) error {
	return nil
}

// Handle partitions accessMap by route, forwards each partition to its
// reader, and returns the union of the results.
func (r *PathBasedReader) Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	partitions := make([]*model.AccessMap, len(r.routes))
	for i := range partitions {
		partitions[i] = model.NewAccessMap()
	}

	for _, id := range accessMap.Keys() {
		relative := strings.TrimPrefix(id.Path, r.base)
		for i, route := range r.routes {
			if !route.Pattern.MatchString(relative) {
				continue
			}
			modes, _ := accessMap.Get(id)
			partitions[i].Set(id, modes)
			break
		}
	}

	results := make([]*model.PermissionMap, 0, len(r.routes))
	for i, route := range r.routes {
		if partitions[i].Len() == 0 {
			continue
		}
		result, err := authz.HandleSafe(ctx, route.Reader, credentials, partitions[i])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return model.Merge(results...), nil
}
