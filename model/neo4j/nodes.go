// model/neo4j/nodes.go
package hodei_neo4j

// Node Labels
const (
	// LabelOrganizationalUnit represents an internal node of the organization tree
	LabelOrganizationalUnit = "OrganizationalUnit"

	// LabelAccount represents a leaf of the organization tree that owns resources
	LabelAccount = "Account"

	// LabelIdentityPolicy represents an IAM policy attached to principals
	LabelIdentityPolicy = "IdentityPolicy"

	// LabelScpPolicy represents a service control policy attached to organization nodes
	LabelScpPolicy = "ScpPolicy"

	// LabelPrincipal represents a user or service account submitting requests
	LabelPrincipal = "Principal"

	// LabelGroup represents a group of principals
	LabelGroup = "Group"

	// LabelResource represents an artifact-repository resource gated by authorization
	LabelResource = "Resource"
)
