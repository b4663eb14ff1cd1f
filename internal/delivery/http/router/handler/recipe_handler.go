package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"plateful/internal/delivery/http/response"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecipeHandler holds dependencies for the recipe endpoints.
type RecipeHandler struct {
	uc     usecase.RecipeUsecase
	logger *slog.Logger
}

// NewRecipeHandler is the constructor for RecipeHandler, injected by Fx.
func NewRecipeHandler(uc usecase.RecipeUsecase, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		uc:     uc,
		logger: logger,
	}
}

// List handles the public recipe listing with optional filters and paging.
func (h *RecipeHandler) List(c echo.Context) error {
	input := &usecase.ListRecipesInput{
		Tag:   c.QueryParam("tag"),
		Query: c.QueryParam("q"),
	}

	if author := c.QueryParam("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid author id")
		}
		input.AuthorID = authorID
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.PerPage, _ = strconv.Atoi(c.QueryParam("perPage"))

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Recipes retrieved successfully")
}

// Get handles fetching a single recipe by id.
func (h *RecipeHandler) Get(c echo.Context) error {
	recipeID, err := pathRecipeID(c)
	if err != nil {
		return err
	}

	recipe, err := h.uc.Get(c.Request().Context(), recipeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, recipe, "Recipe retrieved successfully")
}

// Create handles saving a new recipe owned by the authenticated user.
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.SaveRecipeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recipe input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	recipe, err := h.uc.Create(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, recipe, "Recipe created successfully")
}

// Update handles replacing a recipe's content.
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	recipeID, err := pathRecipeID(c)
	if err != nil {
		return err
	}

	var input *usecase.SaveRecipeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recipe input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	recipe, err := h.uc.Update(c.Request().Context(), userID, recipeID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, recipe, "Recipe updated successfully")
}

// Delete handles removing a recipe.
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	recipeID, err := pathRecipeID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, recipeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": recipeID.String()}, "Recipe deleted successfully")
}

// Generate handles drafting a recipe with the AI backend. The draft is
// returned for review, not saved.
func (h *RecipeHandler) Generate(c echo.Context) error {
	userID, err := authenticatedUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.GenerateRecipeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid generation input")
	}
	if input == nil {
		input = &usecase.GenerateRecipeInput{}
	}

	recipe, err := h.uc.Generate(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, recipe, "Recipe draft generated successfully")
}

// ShareQR renders a QR code PNG linking to the recipe's public page.
func (h *RecipeHandler) ShareQR(c echo.Context) error {
	recipeID, err := pathRecipeID(c)
	if err != nil {
		return err
	}

	png, err := h.uc.ShareQR(c.Request().Context(), recipeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// pathRecipeID parses the :id path parameter.
func pathRecipeID(c echo.Context) (uuid.UUID, error) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid recipe id")
	}

	return recipeID, nil
}
