package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantFilterNoTenantIsNoOp(t *testing.T) {
	_, _, applies := tenantFilter(nil)
	assert.False(t, applies)
}

func TestTenantFilterWithTenant(t *testing.T) {
	tenantID := uint(7)
	query, args, applies := tenantFilter(&tenantID)
	assert.True(t, applies)
	assert.Equal(t, "tenant_id = ?", query)
	assert.Equal(t, []interface{}{uint(7)}, args)
}

func TestIncludeInactiveOnlyForAdminOnRequest(t *testing.T) {
	assert.True(t, IncludeInactive(admin(), true))
	assert.False(t, IncludeInactive(admin(), false))
	assert.False(t, IncludeInactive(employee(), true))
	assert.False(t, IncludeInactive(agency(), true))
}
