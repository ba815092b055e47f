// errors/authz_errors.go
package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid authorization request")
	ErrEntityResolution = errors.New("entity resolution failed")
	ErrEvaluation       = errors.New("policy evaluation failed")
	ErrPolicyRetrieval  = errors.New("identity policy retrieval failed")

	ErrBrokenHierarchy      = errors.New("broken organization hierarchy")
	ErrScpPolicyNotFound    = errors.New("scp policy not found")
	ErrOrganizationNotFound = errors.New("organization node not found")
	ErrEntityNotFound       = errors.New("entity not found")

	ErrPolicyNotFound    = errors.New("policy not found")
	ErrInvalidPolicyData = errors.New("invalid policy data")
	ErrPolicyConflict    = errors.New("policy conflict")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrCacheOperation    = errors.New("cache operation failed")
	ErrInternalServer    = errors.New("internal server error")
)
