package model

// CredentialGroup buckets the source of trust a Permission verdict is
// tracked against.
type CredentialGroup string

const (
	GroupPublic CredentialGroup = "public"
	GroupAgent  CredentialGroup = "agent"
)

// Credential is the identity data resolved for one credential group.
type Credential struct {
	// WebID identifies an authenticated agent (Solid WebID-OIDC). Empty for
	// the public group.
	WebID string
	// ClientID is the OAuth client the credential was issued to, if any.
	ClientID string
}

// IsEmpty reports whether the credential carries no identity information,
// i.e. the group is present but unauthenticated.
func (c Credential) IsEmpty() bool {
	return c.WebID == "" && c.ClientID == ""
}

// CredentialSet maps credential group to the credential resolved for it.
// A group absent from the set means "this request carries no credential of
// that kind" (distinct from a present-but-empty Credential).
type CredentialSet map[CredentialGroup]Credential

// Get returns the credential for group and whether it is present.
func (c CredentialSet) Get(group CredentialGroup) (Credential, bool) {
	cred, ok := c[group]
	return cred, ok
}
