package postgres

import (
	"context"

	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultRecipePageSize = 20
	maxRecipePageSize     = 100
)

// recipeRepository implements the domain.RecipeRepository interface using GORM.
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository is the constructor for recipeRepository.
func NewRecipeRepository(db *gorm.DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

// preloadIngredients loads ingredient lines in their authored order.
func preloadIngredients(db *gorm.DB) *gorm.DB {
	return db.Preload("Ingredients", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// FindByID retrieves a single recipe with its ingredient lines.
func (repo *recipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipeM model.RecipeModel
	err := preloadIngredients(repo.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&recipeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecipeNotFound
		}

		return nil, errors.Wrap(err, "failed to find recipe by id")
	}

	return toRecipeDomain(&recipeM), nil
}

// FindByIDs retrieves multiple recipes at once. Missing ids are skipped.
func (repo *recipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var recipeMs []*model.RecipeModel
	err := preloadIngredients(repo.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&recipeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find recipes by ids")
	}

	recipes := make([]*entity.Recipe, 0, len(recipeMs))
	for _, recipeM := range recipeMs {
		recipes = append(recipes, toRecipeDomain(recipeM))
	}

	return recipes, nil
}

// List returns a page of recipes matching the filter, newest first, along
// with the total match count.
func (repo *recipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]*entity.Recipe, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.RecipeModel{})

	if filter.AuthorID != uuid.Nil {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Tag != "" {
		query = query.Where("tags @> ?", `["`+filter.Tag+`"]`)
	}
	if filter.Query != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count recipes")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = defaultRecipePageSize
	}
	if perPage > maxRecipePageSize {
		perPage = maxRecipePageSize
	}

	var recipeMs []*model.RecipeModel
	err := preloadIngredients(query).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&recipeMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list recipes")
	}

	recipes := make([]*entity.Recipe, 0, len(recipeMs))
	for _, recipeM := range recipeMs {
		recipes = append(recipes, toRecipeDomain(recipeM))
	}

	return recipes, total, nil
}

// Create persists a new recipe and its ingredient lines.
func (repo *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	recipeM := fromRecipeDomain(recipe)

	if err := repo.db.WithContext(ctx).Create(recipeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown recipe author")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create recipe")
	}

	recipe.ID = recipeM.ID
	recipe.CreatedAt = recipeM.CreatedAt
	recipe.UpdatedAt = recipeM.UpdatedAt
	for i, line := range recipeM.Ingredients {
		recipe.Ingredients[i].ID = line.ID
		recipe.Ingredients[i].RecipeID = line.RecipeID
	}

	return nil
}

// Update replaces a recipe's fields and ingredient lines. Lines are
// replaced wholesale: reconciling per-line diffs buys nothing for lists
// this small.
func (repo *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	recipeM := fromRecipeDomain(recipe)

	db := repo.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredientModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace recipe ingredients")
	}
	if err := db.Save(recipeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update recipe")
	}

	recipe.UpdatedAt = recipeM.UpdatedAt
	for i, line := range recipeM.Ingredients {
		recipe.Ingredients[i].ID = line.ID
		recipe.Ingredients[i].RecipeID = line.RecipeID
	}

	return nil
}

// Delete removes a recipe; ingredient lines follow via ON DELETE CASCADE.
func (repo *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RecipeModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete recipe")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecipeNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toRecipeDomain converts a GORM RecipeModel to a domain Recipe entity.
func toRecipeDomain(data *model.RecipeModel) *entity.Recipe {
	if data == nil {
		return nil
	}

	ingredients := make([]*entity.RecipeIngredient, 0, len(data.Ingredients))
	for _, line := range data.Ingredients {
		ingredients = append(ingredients, &entity.RecipeIngredient{
			ID:       line.ID,
			RecipeID: line.RecipeID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Note:     line.Note,
		})
	}

	return &entity.Recipe{
		ID:          data.ID,
		AuthorID:    data.AuthorID,
		Title:       data.Title,
		Description: data.Description,
		Servings:    data.Servings,
		PrepMinutes: data.PrepMinutes,
		CookMinutes: data.CookMinutes,
		Ingredients: ingredients,
		Steps:       data.Steps,
		Tags:        data.Tags,
		ImageURL:    data.ImageURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromRecipeDomain converts a domain Recipe entity to a GORM RecipeModel.
func fromRecipeDomain(data *entity.Recipe) *model.RecipeModel {
	if data == nil {
		return nil
	}

	lines := make([]*model.RecipeIngredientModel, 0, len(data.Ingredients))
	for i, ingredient := range data.Ingredients {
		lines = append(lines, &model.RecipeIngredientModel{
			ID:       ingredient.ID,
			RecipeID: data.ID,
			Position: i,
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
			Note:     ingredient.Note,
		})
	}

	return &model.RecipeModel{
		ID:          data.ID,
		AuthorID:    data.AuthorID,
		Title:       data.Title,
		Description: data.Description,
		Servings:    data.Servings,
		PrepMinutes: data.PrepMinutes,
		CookMinutes: data.CookMinutes,
		Steps:       data.Steps,
		Tags:        data.Tags,
		ImageURL:    data.ImageURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
		Ingredients: lines,
	}
}
