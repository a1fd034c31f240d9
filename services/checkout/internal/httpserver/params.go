package httpserver

import (
	"errors"
	"strconv"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/labstack/echo/v4"
)

var errUnauthorized = errors.New("unauthorized")

// actor reads the caller identity the auth middleware put on the context.
func actor(c echo.Context) (domain.Actor, error) {
	s, ok := c.Get(middleware.ContextUserID).(string)
	if !ok || s == "" {
		return domain.Actor{}, errUnauthorized
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return domain.Actor{}, errUnauthorized
	}
	role, _ := c.Get(middleware.ContextRole).(string)
	return domain.Actor{CustomerID: uint(id), Admin: role == tokens.RoleAdmin}, nil
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.Validationf("%s must be a positive integer", name)
	}
	return uint(id), nil
}
