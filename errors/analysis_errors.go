// errors/analysis_errors.go
package errors

import "errors"

var (
	ErrAtLeastOnePolicy = errors.New("at least one policy is required for conflict analysis")
	ErrTooManyPolicies  = errors.New("too many policies for analysis")
)
