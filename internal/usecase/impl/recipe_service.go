package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "plateful/internal/delivery/context"
	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/domain/service"
	"plateful/internal/infra/metrics"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// recipeService implements the RecipeUsecase interface.
type recipeService struct {
	txManager      repository.TransactionManager
	recipeRepo     repository.RecipeRepository
	userRepo       repository.UserRepository
	generator      service.RecipeGenerator
	qrService      service.QRCodeService
	eventPublisher service.EventPublisher
	collector      *metrics.Collector
	logger         *slog.Logger
}

// RecipeServiceParams holds dependencies for recipeService, injected by Fx.
type RecipeServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	RecipeRepo     repository.RecipeRepository
	UserRepo       repository.UserRepository
	Generator      service.RecipeGenerator
	QRService      service.QRCodeService
	EventPublisher service.EventPublisher
	Collector      *metrics.Collector
	Logger         *slog.Logger
}

// NewRecipeService is the constructor for recipeService.
func NewRecipeService(params RecipeServiceParams) usecase.RecipeUsecase {
	return &recipeService{
		txManager:      params.TxManager,
		recipeRepo:     params.RecipeRepo,
		userRepo:       params.UserRepo,
		generator:      params.Generator,
		qrService:      params.QRService,
		eventPublisher: params.EventPublisher,
		collector:      params.Collector,
		logger:         params.Logger,
	}
}

func (srv *recipeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns a page of recipes matching the filter.
func (srv *recipeService) List(ctx context.Context, input *usecase.ListRecipesInput) (*usecase.ListRecipesOutput, error) {
	filter := repository.RecipeFilter{
		AuthorID: input.AuthorID,
		Tag:      input.Tag,
		Query:    input.Query,
		Page:     input.Page,
		PerPage:  input.PerPage,
	}

	recipes, total, err := srv.recipeRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}

	page := input.Page
	if page < 1 {
		page = 1
	}

	return &usecase.ListRecipesOutput{
		Recipes: recipes,
		Total:   total,
		Page:    page,
		PerPage: input.PerPage,
	}, nil
}

// Get returns a single recipe by id.
func (srv *recipeService) Get(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	recipe, err := srv.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("recipe not found")
		}

		return nil, errors.Wrap(err, "failed to load recipe")
	}

	return recipe, nil
}

// Create persists a new recipe owned by userID. The recipe's ingredient
// names seed the lookup catalog in the same transaction, so searches find
// what people actually cook with.
func (srv *recipeService) Create(ctx context.Context, userID uuid.UUID, input *usecase.SaveRecipeInput) (*entity.Recipe, error) {
	recipe := recipeFromInput(input)
	recipe.AuthorID = userID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RecipeRepo().Create(ctx, recipe); err != nil {
			return errors.Wrap(err, "failed to create recipe")
		}

		ingredientRepo := repoFactory.IngredientRepo()
		for _, line := range recipe.Ingredients {
			name := strings.TrimSpace(line.Name)
			if name == "" {
				continue
			}
			if err := ingredientRepo.Upsert(ctx, &entity.Ingredient{Name: name}); err != nil {
				return errors.Wrap(err, "failed to seed ingredient catalog")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.collector.RecordRecipeCreated()
	srv.publishRecipeCreated(ctx, recipe)
	srv.log(ctx).Info("Recipe created",
		slog.Any("recipeID", recipe.ID),
		slog.Any("authorID", userID))

	return recipe, nil
}

// Update replaces a recipe's content. Only the author may update.
func (srv *recipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, input *usecase.SaveRecipeInput) (*entity.Recipe, error) {
	var updated *entity.Recipe

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		recipeRepo := repoFactory.RecipeRepo()

		existing, err := recipeRepo.FindByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, repository.ErrRecipeNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("recipe not found")
			}

			return errors.Wrap(err, "failed to load recipe for update")
		}
		if !existing.OwnedBy(userID) {
			return domainerrors.ErrForbidden.WrapMessage("recipe belongs to another user")
		}

		replacement := recipeFromInput(input)
		replacement.ID = existing.ID
		replacement.AuthorID = existing.AuthorID
		replacement.CreatedAt = existing.CreatedAt

		if err := recipeRepo.Update(ctx, replacement); err != nil {
			return errors.Wrap(err, "failed to update recipe")
		}
		updated = replacement

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Recipe updated", slog.Any("recipeID", recipeID))

	return updated, nil
}

// Delete removes a recipe. Only the author may delete.
func (srv *recipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		recipeRepo := repoFactory.RecipeRepo()

		existing, err := recipeRepo.FindByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, repository.ErrRecipeNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("recipe not found")
			}

			return errors.Wrap(err, "failed to load recipe for delete")
		}
		if !existing.OwnedBy(userID) {
			return domainerrors.ErrForbidden.WrapMessage("recipe belongs to another user")
		}

		return recipeRepo.Delete(ctx, recipeID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Recipe deleted", slog.Any("recipeID", recipeID))

	return nil
}

// Generate drafts a recipe with the AI backend, steering it with the user's
// stored dietary tags on top of the request constraints.
func (srv *recipeService) Generate(ctx context.Context, userID uuid.UUID, input *usecase.GenerateRecipeInput) (*entity.Recipe, error) {
	dietaryTags := input.DietaryTags
	if user, err := srv.userRepo.FindByID(ctx, userID); err == nil {
		dietaryTags = mergeTags(dietaryTags, user.DietaryTags)
	}

	start := time.Now()
	draft, err := srv.generator.Generate(ctx, &service.GenerationRequest{
		Prompt:      input.Prompt,
		Ingredients: input.Ingredients,
		DietaryTags: dietaryTags,
		Servings:    input.Servings,
	})
	srv.collector.RecordGenerationLatency(time.Since(start))
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Recipe draft generated",
		slog.Any("userID", userID),
		slog.String("title", draft.Title))

	return draft, nil
}

// ShareQR renders a QR code PNG pointing at the recipe's public page.
func (srv *recipeService) ShareQR(ctx context.Context, recipeID uuid.UUID) ([]byte, error) {
	// Confirm the recipe exists before minting a code for it.
	if _, err := srv.Get(ctx, recipeID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.RecipeShareQR(recipeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render share QR code")
	}

	return png, nil
}

// publishRecipeCreated emits a best-effort audit event.
func (srv *recipeService) publishRecipeCreated(ctx context.Context, recipe *entity.Recipe) {
	event := &service.AuthEvent{
		Type:       service.EventRecipeCreated,
		UserID:     recipe.AuthorID.String(),
		OccurredAt: time.Now().UTC(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
	}

	if err := srv.eventPublisher.PublishAuthEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish recipe event", slog.Any("error", err))
	}
}

// recipeFromInput maps the save payload onto a recipe entity.
func recipeFromInput(input *usecase.SaveRecipeInput) *entity.Recipe {
	ingredients := make([]*entity.RecipeIngredient, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		ingredients = append(ingredients, &entity.RecipeIngredient{
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Note:     line.Note,
		})
	}

	return &entity.Recipe{
		Title:       input.Title,
		Description: input.Description,
		Servings:    input.Servings,
		PrepMinutes: input.PrepMinutes,
		CookMinutes: input.CookMinutes,
		Ingredients: ingredients,
		Steps:       input.Steps,
		Tags:        input.Tags,
		ImageURL:    input.ImageURL,
	}
}

// mergeTags unions two tag lists, preserving order of first appearance.
func mergeTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, tag := range append(append([]string{}, a...), b...) {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	return out
}
