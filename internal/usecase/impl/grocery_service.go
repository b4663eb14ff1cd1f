package impl

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"

	deliverycontext "plateful/internal/delivery/context"
	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/domain/service"
	"plateful/internal/infra/metrics"
	"plateful/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxShoppingListRecipes = 50

// groceryService implements the GroceryUsecase interface.
type groceryService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	storeLocator   service.StoreLocator
	collector      *metrics.Collector
	logger         *slog.Logger
}

// GroceryServiceParams holds dependencies for groceryService, injected by Fx.
type GroceryServiceParams struct {
	fx.In

	RecipeRepo     repository.RecipeRepository
	IngredientRepo repository.IngredientRepository
	StoreLocator   service.StoreLocator
	Collector      *metrics.Collector
	Logger         *slog.Logger
}

// NewGroceryService is the constructor for groceryService.
func NewGroceryService(params GroceryServiceParams) usecase.GroceryUsecase {
	return &groceryService{
		recipeRepo:     params.RecipeRepo,
		ingredientRepo: params.IngredientRepo,
		storeLocator:   params.StoreLocator,
		collector:      params.Collector,
		logger:         params.Logger,
	}
}

func (srv *groceryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SearchIngredients matches the query against the ingredient catalog.
func (srv *groceryService) SearchIngredients(ctx context.Context, query string, limit int) ([]*entity.Ingredient, error) {
	ingredients, err := srv.ingredientRepo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search ingredients")
	}

	return ingredients, nil
}

// BuildShoppingList aggregates the ingredient lines of the selected recipes.
// Lines sharing a normalized (name, unit) pair merge into one item with
// summed quantities; every contributing recipe title is kept on the item.
func (srv *groceryService) BuildShoppingList(ctx context.Context, input *usecase.BuildShoppingListInput) (*entity.ShoppingList, error) {
	if len(input.RecipeIDs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("at least one recipe id is required")
	}
	if len(input.RecipeIDs) > maxShoppingListRecipes {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("too many recipes for one shopping list")
	}

	recipes, err := srv.recipeRepo.FindByIDs(ctx, input.RecipeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recipes for shopping list")
	}
	if len(recipes) == 0 {
		return nil, domainerrors.ErrNotFound.WrapMessage("none of the selected recipes exist")
	}

	type itemKey struct {
		name string
		unit string
	}

	merged := make(map[itemKey]*entity.ShoppingItem)
	var order []itemKey
	for _, recipe := range recipes {
		// A servings override scales every line of that recipe relative to
		// its stored serving count.
		scale := 1.0
		if want, ok := input.Servings[recipe.ID]; ok && want > 0 && recipe.Servings > 0 {
			scale = float64(want) / float64(recipe.Servings)
		}

		for _, line := range recipe.Ingredients {
			key := itemKey{
				name: strings.ToLower(strings.TrimSpace(line.Name)),
				unit: strings.ToLower(strings.TrimSpace(line.Unit)),
			}
			if key.name == "" {
				continue
			}

			item, ok := merged[key]
			if !ok {
				item = &entity.ShoppingItem{
					Name: line.Name,
					Unit: line.Unit,
				}
				merged[key] = item
				order = append(order, key)
			}
			item.Quantity += line.Quantity * scale
			if !slices.Contains(item.Recipes, recipe.Title) {
				item.Recipes = append(item.Recipes, recipe.Title)
			}
		}
	}

	items := make([]*entity.ShoppingItem, 0, len(order))
	for _, key := range order {
		items = append(items, merged[key])
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	srv.collector.RecordShoppingListSize(len(items))
	srv.log(ctx).Info("Shopping list built",
		slog.Int("recipes", len(recipes)),
		slog.Int("items", len(items)))

	return &entity.ShoppingList{
		RecipeIDs: input.RecipeIDs,
		Items:     items,
	}, nil
}

// NearbyStores returns grocery stores around a coordinate, closest first.
func (srv *groceryService) NearbyStores(ctx context.Context, input *usecase.NearbyStoresInput) ([]*entity.GroceryStore, error) {
	stores, err := srv.storeLocator.Nearby(ctx, input.Latitude, input.Longitude, input.RadiusMeters, input.Limit)
	if err != nil {
		srv.log(ctx).Warn("Nearby store lookup failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find nearby stores")
	}

	return stores, nil
}
