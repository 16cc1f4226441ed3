package reader

import (
	"strings"

	"github.com/solidgo/authz/internal/authz/model"
)

// AclSuffixStrategy is the default AclAuxiliaryIdentifierStrategy and
// IdentifierStrategy: ACL documents are identified by the conventional
// ".acl" suffix, and container hierarchy is plain URL path ancestry. It
// holds no state and is safe to share across requests.
type AclSuffixStrategy struct{}

// AclSuffix is the conventional suffix identifying an ACL auxiliary
// resource.
const AclSuffix = ".acl"

// IsAuxiliaryIdentifier reports whether id is any kind of auxiliary
// resource. This core recognizes only ACL documents as auxiliary.
func (AclSuffixStrategy) IsAuxiliaryIdentifier(id model.ResourceIdentifier) bool {
	return strings.HasSuffix(id.Path, AclSuffix)
}

// IsAclIdentifier reports whether id is specifically an ACL document.
func (AclSuffixStrategy) IsAclIdentifier(id model.ResourceIdentifier) bool {
	return strings.HasSuffix(id.Path, AclSuffix)
}

// GetAuxiliaryIdentifier returns subject's ACL identifier.
func (AclSuffixStrategy) GetAuxiliaryIdentifier(subject model.ResourceIdentifier) model.ResourceIdentifier {
	return model.NewResourceIdentifier(subject.Path + AclSuffix)
}

// GetSubjectIdentifier strips the ACL suffix from id.
func (AclSuffixStrategy) GetSubjectIdentifier(id model.ResourceIdentifier) model.ResourceIdentifier {
	return model.NewResourceIdentifier(strings.TrimSuffix(id.Path, AclSuffix))
}

// UsesOwnAuthorization is always false: an ACL document's access is always
// governed by control over its subject, never by its own ACL document.
func (AclSuffixStrategy) UsesOwnAuthorization(model.ResourceIdentifier) bool {
	return false
}

// IsRootContainer reports whether id has no path segment below its
// authority.
func (AclSuffixStrategy) IsRootContainer(id model.ResourceIdentifier) bool {
	return id.IsRootContainer()
}

// GetParentContainer returns the container one level up from id, trimming
// id's own trailing slash (if a container) before dropping its last
// segment. Returns false for the root container.
func (s AclSuffixStrategy) GetParentContainer(id model.ResourceIdentifier) (model.ResourceIdentifier, bool) {
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
