package quads

// Predicate and class IRIs from the WebACL vocabulary, and the RDF type
// predicate they are matched through.
const (
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	AclAccessTo    = "http://www.w3.org/ns/auth/acl#accessTo"
	AclDefault     = "http://www.w3.org/ns/auth/acl#default"
	AclMode        = "http://www.w3.org/ns/auth/acl#mode"
	AclAgent       = "http://www.w3.org/ns/auth/acl#agent"
	AclAgentClass  = "http://www.w3.org/ns/auth/acl#agentClass"
	AclAgentGroup  = "http://www.w3.org/ns/auth/acl#agentGroup"
	AclMember      = "http://www.w3.org/ns/auth/acl#member"
	AclAuthorization = "http://www.w3.org/ns/auth/acl#Authorization"

	AclModeRead    = "http://www.w3.org/ns/auth/acl#Read"
	AclModeWrite   = "http://www.w3.org/ns/auth/acl#Write"
	AclModeAppend  = "http://www.w3.org/ns/auth/acl#Append"
	AclModeControl = "http://www.w3.org/ns/auth/acl#Control"

	FoafAgent         = "http://xmlns.com/foaf/0.1/Agent"
	AclAuthenticated  = "http://www.w3.org/ns/auth/acl#AuthenticatedAgent"
)
