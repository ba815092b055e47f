// model/org.go
package model

import "time"

// OrganizationNodeType tags a node in the organization tree. Accounts are
// always leaves; organizational units may nest.
type OrganizationNodeType string

const (
	NodeTypeOrganizationalUnit OrganizationNodeType = "ou"
	NodeTypeAccount            OrganizationNodeType = "account"
)

// OrganizationNode is one node of the organization tree. The root has an
// empty ParentID (or is its own parent in legacy data). AttachedScpIDs
// reference SCP policies that apply to the node and everything beneath it.
type OrganizationNode struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Type           OrganizationNodeType `json:"type"`
	ParentID       string               `json:"parent_id,omitempty"`
	AttachedScpIDs []string             `json:"attached_scp_ids,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// IsRoot reports whether the node terminates the ancestor walk.
func (n *OrganizationNode) IsRoot() bool {
	return n.ParentID == "" || n.ParentID == n.ID
}
