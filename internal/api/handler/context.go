package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

// actorFromContext builds the caller from the claims injected by the Auth
// middleware. A token without a subject or a known role is structurally
// valid but unusable, so it is rejected with 401 before any service call.
func actorFromContext(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	code, _ := c.Get("code").(string)
	role, _ := c.Get("role").(string)

	if userID == "" || !domain.Role(role).Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: userID, Code: code, Role: domain.Role(role)}, nil
}
