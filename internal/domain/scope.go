package domain

// Role distinguishes tenant-bound callers from platform operators. The
// names come from the upstream identity provider.
type Role string

const (
	RoleTenantUser Role = "tenant_user"
	RoleSuperAdmin Role = "super_admin"
)

// Scope is the caller's authorization context, supplied by the upstream
// identity provider on every request. It is the single place tenant
// isolation is decided; aggregation entry points call Filter once before
// touching the record store.
type Scope struct {
	Tenant string
	Role   Role
}

// IsPlatform reports whether the caller may span tenants.
func (s Scope) IsPlatform() bool {
	return s.Role == RoleSuperAdmin
}

// Filter resolves the effective tenant filter for a query. A requested
// tenant of "" means "my own tenant" for tenant callers and "all
// tenants" for platform callers. Tenant callers asking for any tenant
// other than their own get ErrPermissionDenied.
func (s Scope) Filter(requested string) (TenantFilter, error) {
	if s.IsPlatform() {
		return TenantFilter{Tenant: requested}, nil
	}
	if requested != "" && requested != s.Tenant {
		return TenantFilter{}, ErrPermissionDenied
	}
	return TenantFilter{Tenant: s.Tenant}, nil
}

// TenantFilter restricts a record-store query to one tenant. The zero
// value spans all tenants and is only ever produced for platform
// callers.
type TenantFilter struct {
	Tenant string
}

// All reports whether the filter spans every tenant.
func (f TenantFilter) All() bool {
	return f.Tenant == ""
}

// Matches reports whether a record's tenant falls inside the filter.
func (f TenantFilter) Matches(tenant string) bool {
	return f.All() || f.Tenant == tenant
}
