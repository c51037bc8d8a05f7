package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lucaruboni/restaurant-advisor/internal/service"
)

// Validator is the slice of the validation service this surface needs.
type Validator interface {
	Validate(ctx context.Context, tenantID, code string) error
}

type validateReq struct {
	RestaurantID string `form:"restaurant_id" json:"restaurant_id"`
	Code         string `form:"code" json:"code"`
}

func validateHandler(validator Validator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req validateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "bad request"})
		}

		err := validator.Validate(c.Request().Context(), req.RestaurantID, req.Code)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, map[string]string{"detail": "Code validated successfully"})
		case errors.Is(err, service.ErrRestaurantNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Restaurant not found"})
		case errors.Is(err, service.ErrInvalidCode):
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Invalid code"})
		case errors.Is(err, service.ErrCodeAlreadyUsed):
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Code already used"})
		default:
			log.Errorf("validate failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
		}
	}
}
