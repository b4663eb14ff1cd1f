package postgres

import (
	"context"

	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultIngredientSearchLimit = 25

// ingredientRepository implements the domain.IngredientRepository interface
// using GORM.
type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository is the constructor for ingredientRepository.
func NewIngredientRepository(db *gorm.DB) repository.IngredientRepository {
	return &ingredientRepository{db: db}
}

// Search matches the query against ingredient names and aliases.
func (repo *ingredientRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Ingredient, error) {
	if limit <= 0 {
		limit = defaultIngredientSearchLimit
	}

	db := repo.db.WithContext(ctx).Model(&model.IngredientModel{})
	if query != "" {
		pattern := "%" + query + "%"
		// Aliases are a jsonb array of strings; the text cast keeps the
		// match simple at catalog scale.
		db = db.Where("name ILIKE ? OR aliases::text ILIKE ?", pattern, pattern)
	}

	var ingredientMs []*model.IngredientModel
	if err := db.Order("name ASC").Limit(limit).Find(&ingredientMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search ingredients")
	}

	ingredients := make([]*entity.Ingredient, 0, len(ingredientMs))
	for _, ingredientM := range ingredientMs {
		ingredients = append(ingredients, toIngredientDomain(ingredientM))
	}

	return ingredients, nil
}

// Upsert inserts a catalog entry if none exists with the same name. An
// existing row wins so catalog curation survives seeding from recipes.
func (repo *ingredientRepository) Upsert(ctx context.Context, ingredient *entity.Ingredient) error {
	ingredientM := fromIngredientDomain(ingredient)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(ingredientM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert ingredient")
	}

	ingredient.ID = ingredientM.ID
	ingredient.CreatedAt = ingredientM.CreatedAt

	return nil
}

// --- Mapper Functions ---

func toIngredientDomain(data *model.IngredientModel) *entity.Ingredient {
	if data == nil {
		return nil
	}

	return &entity.Ingredient{
		ID:        data.ID,
		Name:      data.Name,
		Category:  data.Category,
		Aliases:   data.Aliases,
		CreatedAt: data.CreatedAt,
	}
}

func fromIngredientDomain(data *entity.Ingredient) *model.IngredientModel {
	if data == nil {
		return nil
	}

	return &model.IngredientModel{
		ID:        data.ID,
		Name:      data.Name,
		Category:  data.Category,
		Aliases:   data.Aliases,
		CreatedAt: data.CreatedAt,
	}
}
