package authzhttp

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/solidgo/authz/internal/authz"
	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/common"
	commonmodel "github.com/solidgo/authz/internal/common/model"
)

// ResolveTarget derives the resource identifier an incoming request names,
// e.g. by joining the server's base URL with r.URL.Path.
type ResolveTarget func(r *http.Request) model.ResourceIdentifier

// operationHandlerFunc adapts a plain function to authz.OperationHandler.
type operationHandlerFunc func(ctx context.Context, op authz.Operation) error

func (f operationHandlerFunc) Handle(ctx context.Context, op authz.Operation) error {
	return f(ctx, op)
}

// Middleware builds a chi-compatible middleware that runs the
// authorization pipeline ahead of next: it resolves the request's target
// and credentials, derives required modes, evaluates the permission
// reader, and checks the verdict. On success it attaches a WAC-Allow
// header describing the requester's and the public's granted modes, then
// calls next. On failure it writes a structured JSON error response and
// next is never invoked.
func Middleware(
	credentials authz.CredentialsExtractor,
	modes authz.ModesExtractor,
	permissions authz.PermissionReader,
	resolveTarget ResolveTarget,
) func(http.Handler) http.Handler {
	authorizer := NewAuthorizer()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := uuid.NewString()

			downstream := operationHandlerFunc(func(ctx context.Context, op authz.Operation) error {
				writeWacAllowHeader(w, op.PermissionMap, op.Target)
				log.Printf("✅ authz: %s %s allowed [%s]", op.Method, op.Target.Path, correlationID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return nil
			})

			handler := NewAuthorizingHttpHandler(credentials, modes, permissions, authorizer, downstream)
			op := authz.Operation{Target: resolveTarget(r), Method: r.Method, Request: r}

			if err := handler.Handle(r.Context(), op); err != nil {
				log.Printf("❌ authz: %s %s denied: %v [%s]", op.Method, op.Target.Path, err, correlationID)
				resp := common.NewAuthzErrorResponse(err, correlationID)
				_ = commonmodel.EncodeJSONResponse(resp.Body, &resp.Code, w)
			}
		})
	}
}

// writeWacAllowHeader sets the WAC-Allow response header (the Solid
// protocol's way of telling a client which modes it, and the public, are
// granted on the resource) from the PermissionMap the pipeline produced.
// It is a best-effort addition: a nil or empty PermissionMap leaves the
// header unset.
func writeWacAllowHeader(w http.ResponseWriter, permissionMap *model.PermissionMap, target model.ResourceIdentifier) {
	if permissionMap == nil {
		return
	}
	set := permissionMap.Get(target)

	var parts []string
	if perm, ok := set[model.GroupAgent]; ok {
		if modes := grantedModes(perm); modes != "" {
			parts = append(parts, fmt.Sprintf("user=%q", modes))
		}
	}
	if perm, ok := set[model.GroupPublic]; ok {
		if modes := grantedModes(perm); modes != "" {
			parts = append(parts, fmt.Sprintf("public=%q", modes))
		}
	}
	if len(parts) == 0 {
		return
	}
	sort.Strings(parts)
	w.Header().Set("WAC-Allow", strings.Join(parts, ","))
}

// wacAllowModeOrder is the order in which granted modes are listed.
var wacAllowModeOrder = []model.AccessMode{
	model.ModeRead, model.ModeAppend, model.ModeWrite, model.ModeCreate, model.ModeDelete,
}

// grantedModes lists, space-separated, every AccessMode perm grants.
func grantedModes(perm model.Permission) string {
	var modes []string
	for _, m := range wacAllowModeOrder {
		if perm.Get(string(m)) == model.Allow {
			modes = append(modes, string(m))
		}
	}
	return strings.Join(modes, " ")
}
