package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lucaruboni/restaurant-advisor/internal/catalog"
)

type pageData struct {
	RestaurantID   string
	RestaurantName string
	BgImage        string
	Logo           string
	Message        string
	Countries      []catalog.Country
}

func restaurantPage(cat *catalog.Catalog, id string) (pageData, bool) {
	r, ok := cat.Restaurant(id)
	if !ok {
		return pageData{}, false
	}
	return pageData{
		RestaurantID:   id,
		RestaurantName: r.Name,
		BgImage:        "/static/img/" + r.BgImage,
		Logo:           "/static/img/" + r.Logo,
	}, true
}

func formPageHandler(cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, ok := restaurantPage(cat, c.Param("restaurant_id"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Restaurant not found"})
		}
		data.Countries = cat.Countries()
		return c.Render(http.StatusOK, "form.html", data)
	}
}

func thankYouPageHandler(cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, ok := restaurantPage(cat, c.QueryParam("restaurant_id"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Restaurant not found"})
		}
		data.Message = "Please check your WhatsApp for the validation code."
		return c.Render(http.StatusOK, "thankyou.html", data)
	}
}

func validatePageHandler(cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, ok := restaurantPage(cat, c.Param("restaurant_id"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Restaurant not found"})
		}
		return c.Render(http.StatusOK, "validate.html", data)
	}
}
