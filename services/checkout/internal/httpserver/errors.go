package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/storefront/services/checkout/internal/domain"
	"github.com/Skotchmaster/storefront/services/checkout/internal/transport"
	"github.com/labstack/echo/v4"
)

// writeError logs err under event and renders it with the status its kind
// maps to. Unknown errors become a generic 500.
func writeError(c echo.Context, l *slog.Logger, event string, err error) error {
	var (
		transition *domain.InvalidStatusTransitionError
		stock      *domain.InsufficientStockError
	)

	switch {
	case errors.As(err, &transition):
		allowed := make([]string, len(transition.Allowed))
		for i, s := range transition.Allowed {
			allowed[i] = string(s)
		}
		l.Warn(event, "status", 409, "reason", "invalid transition", "error", err)
		return c.JSON(http.StatusConflict, transport.ErrorResponse{Message: err.Error(), Allowed: allowed})
	case errors.As(err, &stock):
		l.Warn(event, "status", 409, "reason", "insufficient stock", "product_id", stock.ProductID, "error", err)
		return c.JSON(http.StatusConflict, transport.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		l.Warn(event, "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		l.Warn(event, "status", 403, "reason", "forbidden", "error", err)
		return c.JSON(http.StatusForbidden, transport.ErrorResponse{Message: "forbidden"})
	case errors.Is(err, domain.ErrConflict):
		l.Warn(event, "status", 409, "reason", "conflict", "error", err)
		return c.JSON(http.StatusConflict, transport.ErrorResponse{Message: err.Error()})
	default:
		l.Error(event, "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Message: "internal error"})
	}
}
