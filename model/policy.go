// model/policy.go
package model

import (
	"strings"
	"time"
)

// Effect is the outcome a policy declares for requests it matches.
type Effect string

const (
	EffectPermit Effect = "permit"
	EffectForbid Effect = "forbid"
)

// PolicyKind distinguishes identity policies from organization SCPs.
type PolicyKind string

const (
	PolicyKindIdentity PolicyKind = "identity"
	PolicyKindScp      PolicyKind = "scp"
)

type Policy struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Kind        PolicyKind `json:"kind"`
	Effect      Effect     `json:"effect"` // "permit" or "forbid"
	Text        string     `json:"text"`   // raw Cedar source
	Version     int        `json:"version"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PolicySet is an ordered collection of policies with unique ids. Order does
// not affect evaluation semantics but is preserved so traces are
// deterministic.
type PolicySet []Policy

func (ps PolicySet) IDs() []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func (ps PolicySet) Get(id string) (Policy, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return Policy{}, false
}

// WithoutIndex returns a copy of the set excluding the policy at i.
func (ps PolicySet) WithoutIndex(i int) PolicySet {
	reduced := make(PolicySet, 0, len(ps)-1)
	reduced = append(reduced, ps[:i]...)
	reduced = append(reduced, ps[i+1:]...)
	return reduced
}

// PolicyForAnalysis is the corpus analyzer's input: an id and the raw policy
// text. The effect is derived from the text.
type PolicyForAnalysis struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// TextEffect reports the effect declared by a raw policy text, detected from
// its leading keyword.
func TextEffect(content string) Effect {
	if strings.HasPrefix(strings.TrimSpace(content), "forbid") {
		return EffectForbid
	}
	return EffectPermit
}
