package authzhttp

import (
	"context"

	"github.com/solidgo/authz/internal/authz"
)

// AuthorizingHttpHandler runs the full per-request pipeline:
// extract credentials, derive the required access modes, run the
// permission reader pipeline, check the verdict, and only then delegate
// to the downstream handler. Any failure along the way short-circuits the
// chain and downstream is never invoked.
type AuthorizingHttpHandler struct {
	credentials authz.CredentialsExtractor
	modes       authz.ModesExtractor
	permissions authz.PermissionReader
	authorizer  *Authorizer
	downstream  authz.OperationHandler
}

// NewAuthorizingHttpHandler builds an AuthorizingHttpHandler wiring the
// given pipeline stages.
func NewAuthorizingHttpHandler(
	credentials authz.CredentialsExtractor,
	modes authz.ModesExtractor,
	permissions authz.PermissionReader,
	authorizer *Authorizer,
	downstream authz.OperationHandler,
) *AuthorizingHttpHandler {
	return &AuthorizingHttpHandler{
		credentials: credentials,
		modes:       modes,
		permissions: permissions,
		authorizer:  authorizer,
		downstream:  downstream,
	}
}

// Handle runs the pipeline for op. op.Request must be set; op.PermissionMap
// is populated on success before downstream is invoked.
func (h *AuthorizingHttpHandler) Handle(ctx context.Context, op authz.Operation) error {
	credentials, err := h.credentials.Extract(ctx, op.Request)
	if err != nil {
		return err
	}

	accessMap, err := h.modes.Extract(ctx, op)
	if err != nil {
		return err
	}

	permissionMap, err := authz.HandleSafe(ctx, h.permissions, credentials, accessMap)
	if err != nil {
		return err
	}

	if err := h.authorizer.Authorize(ctx, accessMap, permissionMap); err != nil {
		return err
	}

	op.PermissionMap = permissionMap
	return h.downstream.Handle(ctx, op)
}
