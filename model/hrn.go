package model

import (
	"fmt"
	"strings"
)

// Hrn is a hierarchical resource name identifying principals, resources and
// organization nodes across the platform:
//
//	hrn:<partition>:<service>::<account_id>:<resource_type>/<resource_id>
//
// The region segment between service and account id is always empty.
type Hrn struct {
	Partition    string `json:"partition"`
	Service      string `json:"service"`
	AccountID    string `json:"account_id"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

func NewHrn(partition, service, accountID, resourceType, resourceID string) Hrn {
	return Hrn{
		Partition:    partition,
		Service:      strings.ToLower(service),
		AccountID:    accountID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// ParseHrn parses the canonical string form. The resource qualifier splits on
// the first '/' so resource ids may themselves contain slashes.
func ParseHrn(s string) (Hrn, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 || parts[0] != "hrn" {
		return Hrn{}, fmt.Errorf("malformed hrn %q: expected 6 colon-separated segments", s)
	}
	if parts[3] != "" {
		return Hrn{}, fmt.Errorf("malformed hrn %q: region segment must be empty", s)
	}

	qualifier := parts[5]
	typeAndID := strings.SplitN(qualifier, "/", 2)
	if len(typeAndID) != 2 || typeAndID[0] == "" || typeAndID[1] == "" {
		return Hrn{}, fmt.Errorf("malformed hrn %q: resource qualifier must be <type>/<id>", s)
	}

	hrn := Hrn{
		Partition:    parts[1],
		Service:      strings.ToLower(parts[2]),
		AccountID:    parts[4],
		ResourceType: typeAndID[0],
		ResourceID:   typeAndID[1],
	}
	if hrn.Partition == "" || hrn.Service == "" {
		return Hrn{}, fmt.Errorf("malformed hrn %q: partition and service are required", s)
	}
	return hrn, nil
}

func (h Hrn) String() string {
	return fmt.Sprintf("hrn:%s:%s::%s:%s/%s", h.Partition, h.Service, h.AccountID, h.ResourceType, h.ResourceID)
}

// IsZero reports whether the hrn carries no identity at all.
func (h Hrn) IsZero() bool {
	return h.Partition == "" && h.Service == "" && h.AccountID == "" && h.ResourceType == "" && h.ResourceID == ""
}

// EntityTypeName derives the policy-language entity type from the resource
// type: "user" -> "User", "service-account" -> "ServiceAccount".
func (h Hrn) EntityTypeName() string {
	return pascalCase(h.ResourceType)
}

func pascalCase(s string) string {
	splitter := func(r rune) bool { return r == '-' || r == '_' }
	var b strings.Builder
	for _, part := range strings.FieldsFunc(s, splitter) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
