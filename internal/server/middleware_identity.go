package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/luckyvista/feedbackpulse/internal/domain"
	apperrors "github.com/luckyvista/feedbackpulse/internal/errors"
)

// Identity headers set by the upstream gateway after authentication.
const (
	headerTenantID = "X-Tenant-ID"
	headerUserID   = "X-User-ID"
	headerRole     = "X-Role"
)

// requireIdentity resolves the caller's scope from the gateway headers.
// Requests without a valid identity never reach a handler.
func (s *Server) requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role := domain.Role(c.Request().Header.Get(headerRole))
		switch role {
		case domain.RoleTenantUser, domain.RoleSuperAdmin:
		default:
			return apperrors.PermissionError("unknown or missing role header")
		}

		tenant := c.Request().Header.Get(headerTenantID)
		if role == domain.RoleTenantUser && tenant == "" {
			return apperrors.PermissionError("tenant header required for tenant users")
		}

		rawUserID := c.Request().Header.Get(headerUserID)
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			return apperrors.PermissionError("invalid user ID header").WithContext("user_id", rawUserID)
		}

		c.Set("scope", domain.Scope{Tenant: tenant, Role: role})
		c.Set("userID", userID)
		c.Set("tenant", tenant)
		return next(c)
	}
}

func callerScope(c echo.Context) domain.Scope {
	scope, _ := c.Get("scope").(domain.Scope)
	return scope
}

func callerUserID(c echo.Context) uuid.UUID {
	userID, _ := c.Get("userID").(uuid.UUID)
	return userID
}
