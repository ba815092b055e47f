// model/neo4j/attributes.go
package hodei_neo4j

// Attribute Keys
const (
	// AttrID represents the unique identifier of a node
	AttrID = "id"

	// AttrHrn represents the canonical hrn of a principal or resource node
	AttrHrn = "hrn"

	// AttrName represents the name attribute of a node
	AttrName = "name"

	// AttrDescription represents the description attribute of a node
	AttrDescription = "description"

	// AttrText represents the raw policy source attached to a policy node
	AttrText = "text"

	// AttrKind represents the policy kind ("identity" or "scp")
	AttrKind = "kind"

	// AttrEffect represents the declared effect of a policy node
	AttrEffect = "effect"

	// AttrVersion represents the version counter of a policy node
	AttrVersion = "version"

	// AttrActive represents whether a policy node is active
	AttrActive = "active"

	// AttrCreatedAt represents the creation timestamp of a node
	AttrCreatedAt = "createdAt"

	// AttrUpdatedAt represents the last update timestamp of a node
	AttrUpdatedAt = "updatedAt"
)
