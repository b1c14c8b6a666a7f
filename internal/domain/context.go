package domain

import "fmt"

// RequestContext is the request-scoped tenant/user configuration threaded
// explicitly into every backend call. There is no ambient tenant state.
type RequestContext struct {
	TenantID int64
	UserID   int64
	UnitID   int64
}

// Validate checks that the identifiers required by the backend are set
func (rc RequestContext) Validate() error {
	if rc.TenantID <= 0 {
		return fmt.Errorf("request context: tenantID must be positive")
	}
	if rc.UserID <= 0 {
		return fmt.Errorf("request context: userID must be positive")
	}
	return nil
}
