// Package authz declares the interfaces every pipeline stage is built
// against: the external collaborators (ResourceStore, ResourceSet,
// AuxiliaryStrategy, IdentifierStrategy, Operation) and the PermissionReader
// contract each concrete reader in internal/authz/reader and
// internal/authz/webacl implements.
package authz

import (
	"context"
	"net/http"

	"github.com/solidgo/authz/internal/authz/model"
	"github.com/solidgo/authz/internal/authz/quads"
)

// PermissionReader is the composition unit of the authorizing pipeline.
// CanHandle lets a reader decline an input (returning a *BadInputError) so
// a caller composing several readers can try another; Handle performs the
// actual transform. HandleSafe is the provided helper that calls CanHandle
// before Handle.
type PermissionReader interface {
	CanHandle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) error
	Handle(ctx context.Context, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error)
}

// HandleSafe calls CanHandle and, if it succeeds, Handle. Readers that
// never decline input (the common case) can ignore CanHandle in callers by
// using this helper instead of calling Handle directly.
func HandleSafe(ctx context.Context, r PermissionReader, credentials model.CredentialSet, accessMap *model.AccessMap) (*model.PermissionMap, error) {
	if err := r.CanHandle(ctx, credentials, accessMap); err != nil {
		return nil, err
	}
	return r.Handle(ctx, credentials, accessMap)
}

// ContentPreferences mirrors the Accept-style preference weighting a
// ResourceStore is asked with. The WebAclReader always asks for the
// internal RDF-quad content type.
type ContentPreferences struct {
	Types map[string]float64
}

// ContentTypeInternalQuads is the internal representation ResourceStore
// must be able to serve ACL documents as.
const ContentTypeInternalQuads = "internal/quads"

// QuadsPreferences is the preference set the WebAclReader always requests.
func QuadsPreferences() ContentPreferences {
	return ContentPreferences{Types: map[string]float64{ContentTypeInternalQuads: 1}}
}

// Representation is what a ResourceStore resolves a GetRepresentation call
// to: a content type tag and, for the "internal/quads" type, the parsed
// quads. Other content types are out of scope for this core.
type Representation struct {
	ContentType string
	Quads       []quads.Quad
}

// ResourceStore fetches a representation of a resource. Implementations
// must raise a *NotFoundError when the resource does not exist and wrap
// any other failure as *InternalServerError — the WebAclReader relies on
// this to decide between "keep walking up the hierarchy" and "fail the
// request".
type ResourceStore interface {
	GetRepresentation(ctx context.Context, id model.ResourceIdentifier, prefs ContentPreferences) (Representation, error)
}

// ResourceSet is an existence probe used only by IntermediateModesExtractor.
// It must never raise for a nonexistent resource; the bool return is the
// only signal.
type ResourceSet interface {
	HasResource(ctx context.Context, id model.ResourceIdentifier) (bool, error)
}

// AuxiliaryStrategy classifies auxiliary resources (derived identifiers
// such as ACL documents) and relates them back to their subject.
type AuxiliaryStrategy interface {
	IsAuxiliaryIdentifier(id model.ResourceIdentifier) bool
	GetAuxiliaryIdentifier(subject model.ResourceIdentifier) model.ResourceIdentifier
	GetSubjectIdentifier(id model.ResourceIdentifier) model.ResourceIdentifier
	UsesOwnAuthorization(id model.ResourceIdentifier) bool
}

// AclAuxiliaryIdentifierStrategy additionally identifies which auxiliary resources
// specifically carry ACL documents, which WebAclReader's discovery walk
// depends on.
type AclAuxiliaryIdentifierStrategy interface {
	AuxiliaryStrategy
	IsAclIdentifier(id model.ResourceIdentifier) bool
}

// IdentifierStrategy exposes deterministic hierarchy navigation.
type IdentifierStrategy interface {
	GetParentContainer(id model.ResourceIdentifier) (model.ResourceIdentifier, bool)
	IsRootContainer(id model.ResourceIdentifier) bool
}

// Operation is the input to the pipeline and, after authorization
// succeeds, the carrier of the resulting PermissionMap for downstream use
// (e.g. WAC-Allow headers).
type Operation struct {
	Target        model.ResourceIdentifier
	Method        string
	Request       *http.Request
	PermissionMap *model.PermissionMap
}

// ModesExtractor maps an operation to the AccessMap of modes it requires.
type ModesExtractor interface {
	Extract(ctx context.Context, op Operation) (*model.AccessMap, error)
}

// CredentialsExtractor yields the CredentialSet for a request. Its concrete
// implementation (WebID-OIDC token verification) lives outside the core,
// in internal/authz/webid.
type CredentialsExtractor interface {
	Extract(ctx context.Context, r *http.Request) (model.CredentialSet, error)
}

// OperationHandler runs only after authorization succeeds.
type OperationHandler interface {
	Handle(ctx context.Context, op Operation) error
}
