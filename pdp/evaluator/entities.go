// pdp/evaluator/entities.go
package evaluator

import (
	"math"

	"github.com/cedar-policy/cedar-go"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

// buildEntityMap assembles the Cedar entity graph from resolved entities.
// Every parent referenced by an entity is guaranteed to exist in the map so
// hierarchy checks (principal in Group::"x") resolve; parents without their
// own resolved entity get an empty stub.
func buildEntityMap(entities []model.Entity) cedar.EntityMap {
	em := cedar.EntityMap{}

	for _, entity := range entities {
		uid := entityUID(entity.Hrn)

		parentUIDs := make([]cedar.EntityUID, 0, len(entity.Parents))
		for _, parent := range entity.Parents {
			parentUID := entityUID(parent)
			parentUIDs = append(parentUIDs, parentUID)
			if _, exists := em[parentUID]; !exists {
				em[parentUID] = cedar.Entity{
					UID:        parentUID,
					Parents:    cedar.NewEntityUIDSet(),
					Attributes: cedar.NewRecord(cedar.RecordMap{}),
				}
			}
		}

		em[uid] = cedar.Entity{
			UID:        uid,
			Parents:    cedar.NewEntityUIDSet(parentUIDs...),
			Attributes: cedar.NewRecord(toRecordMap(entity.Attributes)),
		}
	}

	return em
}

func entityUID(hrn model.Hrn) cedar.EntityUID {
	return cedar.NewEntityUID(cedar.EntityType(hrn.EntityTypeName()), cedar.String(hrn.ResourceID))
}

// buildCedarRequest maps an authorization request onto Cedar's evaluation
// format. Actions live in the fixed Action namespace.
func buildCedarRequest(req model.AuthorizationRequest) cedar.Request {
	return cedar.Request{
		Principal: entityUID(req.Principal),
		Action:    cedar.NewEntityUID("Action", cedar.String(req.Action)),
		Resource:  entityUID(req.Resource),
		Context:   cedar.NewRecord(toRecordMap(req.Context)),
	}
}

func toRecordMap(attributes map[string]interface{}) cedar.RecordMap {
	rm := cedar.RecordMap{}
	for k, v := range attributes {
		if value, ok := toCedarValue(v); ok {
			rm[cedar.String(k)] = value
		}
	}
	return rm
}

// toCedarValue converts a plain Go value into a Cedar value. Unsupported
// types (and fractional floats, which Cedar longs cannot carry) are dropped.
func toCedarValue(v interface{}) (cedar.Value, bool) {
	switch val := v.(type) {
	case string:
		return cedar.String(val), true
	case bool:
		return cedar.Boolean(val), true
	case int:
		return cedar.Long(int64(val)), true
	case int32:
		return cedar.Long(int64(val)), true
	case int64:
		return cedar.Long(val), true
	case float64:
		if val == math.Trunc(val) {
			return cedar.Long(int64(val)), true
		}
		return nil, false
	case []string:
		elems := make([]cedar.Value, 0, len(val))
		for _, s := range val {
			elems = append(elems, cedar.String(s))
		}
		return cedar.NewSet(elems...), true
	case []interface{}:
		elems := make([]cedar.Value, 0, len(val))
		for _, item := range val {
			if cv, ok := toCedarValue(item); ok {
				elems = append(elems, cv)
			}
		}
		return cedar.NewSet(elems...), true
	case map[string]interface{}:
		return cedar.NewRecord(toRecordMap(val)), true
	default:
		return nil, false
	}
}
