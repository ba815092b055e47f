// model/neo4j/relationships.go
package hodei_neo4j

// Relationship Types
const (
	// RelBelongsTo links an Account to its OrganizationalUnit and an
	// OrganizationalUnit to its parent
	RelBelongsTo = "BELONGS_TO"

	// RelHasScp attaches a ScpPolicy to an organization node
	RelHasScp = "HAS_SCP"

	// RelHasPolicy attaches an IdentityPolicy to a Principal or Group
	RelHasPolicy = "HAS_POLICY"

	// RelMemberOf links a Principal to a Group
	RelMemberOf = "MEMBER_OF"

	// RelOwnedBy links a Resource to its owning Account
	RelOwnedBy = "OWNED_BY"
)
