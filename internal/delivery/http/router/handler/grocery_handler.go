package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"plateful/internal/delivery/http/response"
	"plateful/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// GroceryHandler holds dependencies for the ingredient and shopping endpoints.
type GroceryHandler struct {
	uc     usecase.GroceryUsecase
	logger *slog.Logger
}

// NewGroceryHandler is the constructor for GroceryHandler, injected by Fx.
func NewGroceryHandler(uc usecase.GroceryUsecase, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{
		uc:     uc,
		logger: logger,
	}
}

// SearchIngredients handles ingredient catalog lookups.
func (h *GroceryHandler) SearchIngredients(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameter query is required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ingredients, err := h.uc.SearchIngredients(c.Request().Context(), query, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ingredients, "Ingredients retrieved successfully")
}

// BuildShoppingList aggregates ingredient lines across the selected recipes.
func (h *GroceryHandler) BuildShoppingList(c echo.Context) error {
	var input *usecase.BuildShoppingListInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shopping list input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.uc.BuildShoppingList(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, list, "Shopping list built successfully")
}

// NearbyStores returns grocery stores around a coordinate, closest first.
func (h *GroceryHandler) NearbyStores(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameters lat and lon are required")
	}

	input := &usecase.NearbyStoresInput{
		Latitude:  lat,
		Longitude: lon,
	}
	if radius := c.QueryParam("radius"); radius != "" {
		input.RadiusMeters, _ = strconv.ParseFloat(radius, 64)
	}
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	stores, err := h.uc.NearbyStores(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Nearby stores retrieved successfully")
}
