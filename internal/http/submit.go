package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lucaruboni/restaurant-advisor/internal/model"
	"github.com/lucaruboni/restaurant-advisor/internal/service"
)

// Submitter is the slice of the submission service this surface needs.
type Submitter interface {
	Submit(ctx context.Context, req service.SubmitRequest) (string, error)
}

func submitHandler(submitter Submitter) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req service.SubmitRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "bad request"})
		}

		tenantID, err := submitter.Submit(c.Request().Context(), req)
		if err != nil {
			var ferrs model.FieldErrors
			if errors.As(err, &ferrs) {
				return c.JSON(http.StatusBadRequest, map[string]any{"detail": ferrs})
			}

			log.Errorf("submit failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal error"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"detail":        "Form submitted successfully",
			"restaurant_id": tenantID,
		})
	}
}
