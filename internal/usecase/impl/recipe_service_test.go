package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/domain/service"
	"plateful/internal/infra/metrics"
	mockRepo "plateful/internal/mocks/repository"
	mockSvc "plateful/internal/mocks/service"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recipeServiceFixtures struct {
	service        usecase.RecipeUsecase
	txManager      *mockRepo.MockTransactionManager
	recipeRepo     *mockRepo.MockRecipeRepository
	userRepo       *mockRepo.MockUserRepository
	generator      *mockSvc.MockRecipeGenerator
	qrService      *mockSvc.MockQRCodeService
	eventPublisher *mockSvc.MockEventPublisher
}

func createTestRecipeService(t *testing.T) recipeServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	recipeRepo := mockRepo.NewMockRecipeRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	generator := mockSvc.NewMockRecipeGenerator(t)
	qrService := mockSvc.NewMockQRCodeService(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewRecipeService(RecipeServiceParams{
		TxManager:      txManager,
		RecipeRepo:     recipeRepo,
		UserRepo:       userRepo,
		Generator:      generator,
		QRService:      qrService,
		EventPublisher: eventPublisher,
		Collector:      metrics.NewCollector(),
		Logger:         logger,
	})

	return recipeServiceFixtures{
		service:        svc,
		txManager:      txManager,
		recipeRepo:     recipeRepo,
		userRepo:       userRepo,
		generator:      generator,
		qrService:      qrService,
		eventPublisher: eventPublisher,
	}
}

// recipeTransactionPassthrough wires the transaction manager to run against a
// factory serving the given repositories.
func recipeTransactionPassthrough(t *testing.T, txManager *mockRepo.MockTransactionManager, recipeRepo *mockRepo.MockRecipeRepository, ingredientRepo *mockRepo.MockIngredientRepository) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RecipeRepo().Return(recipeRepo).Maybe()
	if ingredientRepo != nil {
		factory.EXPECT().IngredientRepo().Return(ingredientRepo).Maybe()
	}

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func saveInput() *usecase.SaveRecipeInput {
	return &usecase.SaveRecipeInput{
		Title:    "Lentil Soup",
		Servings: 4,
		Ingredients: []*usecase.IngredientLineInput{
			{Name: "red lentils", Quantity: 250, Unit: "g"},
			{Name: "onion", Quantity: 1, Unit: "pcs"},
		},
		Steps: []string{"Chop the onion.", "Simmer everything."},
		Tags:  []string{"vegan"},
	}
}

func TestRecipeService_Create_Success(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	authorID := uuid.New()
	recipeID := uuid.New()

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	txIngredientRepo := mockRepo.NewMockIngredientRepository(t)
	recipeTransactionPassthrough(t, fx.txManager, txRecipeRepo, txIngredientRepo)

	txRecipeRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Recipe")).
		Run(func(ctx context.Context, recipe *entity.Recipe) {
			assert.Equal(t, authorID, recipe.AuthorID)
			recipe.ID = recipeID
		}).
		Return(nil)
	// Every named ingredient line lands in the lookup catalog.
	seeded := make([]string, 0, 2)
	txIngredientRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.Ingredient")).
		Run(func(ctx context.Context, ingredient *entity.Ingredient) {
			seeded = append(seeded, ingredient.Name)
		}).
		Return(nil)
	fx.eventPublisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.EventRecipeCreated, event.Type)
		}).
		Return(nil)

	recipe, err := fx.service.Create(ctx, authorID, saveInput())

	require.NoError(t, err)
	assert.Equal(t, recipeID, recipe.ID)
	assert.Len(t, recipe.Ingredients, 2)
	assert.ElementsMatch(t, []string{"red lentils", "onion"}, seeded)
}

func TestRecipeService_Update_NotOwner(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	recipeID := uuid.New()
	existing := &entity.Recipe{ID: recipeID, AuthorID: uuid.New(), Title: "Someone else's"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	recipeTransactionPassthrough(t, fx.txManager, txRecipeRepo, nil)
	txRecipeRepo.EXPECT().FindByID(ctx, recipeID).Return(existing, nil)

	updated, err := fx.service.Update(ctx, uuid.New(), recipeID, saveInput())

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestRecipeService_Update_PreservesIdentity(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	authorID := uuid.New()
	recipeID := uuid.New()
	existing := &entity.Recipe{ID: recipeID, AuthorID: authorID, Title: "Old Title"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	recipeTransactionPassthrough(t, fx.txManager, txRecipeRepo, nil)
	txRecipeRepo.EXPECT().FindByID(ctx, recipeID).Return(existing, nil)
	txRecipeRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Recipe")).
		Run(func(ctx context.Context, recipe *entity.Recipe) {
			assert.Equal(t, recipeID, recipe.ID)
			assert.Equal(t, authorID, recipe.AuthorID)
			assert.Equal(t, "Lentil Soup", recipe.Title)
		}).
		Return(nil)

	updated, err := fx.service.Update(ctx, authorID, recipeID, saveInput())

	require.NoError(t, err)
	assert.Equal(t, recipeID, updated.ID)
}

func TestRecipeService_Update_NotFound(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	recipeID := uuid.New()

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	recipeTransactionPassthrough(t, fx.txManager, txRecipeRepo, nil)
	txRecipeRepo.EXPECT().FindByID(ctx, recipeID).Return(nil, repository.ErrRecipeNotFound)

	updated, err := fx.service.Update(ctx, uuid.New(), recipeID, saveInput())

	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestRecipeService_Delete_NotOwner(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	recipeID := uuid.New()
	existing := &entity.Recipe{ID: recipeID, AuthorID: uuid.New()}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	recipeTransactionPassthrough(t, fx.txManager, txRecipeRepo, nil)
	txRecipeRepo.EXPECT().FindByID(ctx, recipeID).Return(existing, nil)

	err := fx.service.Delete(ctx, uuid.New(), recipeID)

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestRecipeService_Delete_Owner(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	authorID := uuid.New()
	recipeID := uuid.New()
	existing := &entity.Recipe{ID: recipeID, AuthorID: authorID}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	recipeTransactionPassthrough(t, fx.txManager, txRecipeRepo, nil)
	txRecipeRepo.EXPECT().FindByID(ctx, recipeID).Return(existing, nil)
	txRecipeRepo.EXPECT().Delete(ctx, recipeID).Return(nil)

	err := fx.service.Delete(ctx, authorID, recipeID)

	require.NoError(t, err)
}

func TestRecipeService_Generate_MergesDietaryTags(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, DietaryTags: []string{"vegan", "gluten-free"}}
	draft := &entity.Recipe{Title: "Vegan Curry"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.generator.EXPECT().
		Generate(ctx, mock.AnythingOfType("*service.GenerationRequest")).
		Run(func(ctx context.Context, req *service.GenerationRequest) {
			// Request tags first, then the profile tags, without duplicates.
			assert.Equal(t, []string{"vegan", "spicy", "gluten-free"}, req.DietaryTags)
		}).
		Return(draft, nil)

	recipe, err := fx.service.Generate(ctx, userID, &usecase.GenerateRecipeInput{
		Prompt:      "a quick curry",
		DietaryTags: []string{"vegan", "spicy"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Vegan Curry", recipe.Title)
}

func TestRecipeService_Generate_GeneratorFailure(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.generator.EXPECT().
		Generate(ctx, mock.AnythingOfType("*service.GenerationRequest")).
		Return(nil, domainerrors.ErrRecipeGenerationFailed.WrapMessage("model overloaded"))

	recipe, err := fx.service.Generate(ctx, userID, &usecase.GenerateRecipeInput{Prompt: "anything"})

	assert.Nil(t, recipe)
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeGenerationFailed))
}

func TestRecipeService_ShareQR_Success(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	recipeID := uuid.New()

	fx.recipeRepo.EXPECT().FindByID(ctx, recipeID).Return(&entity.Recipe{ID: recipeID}, nil)
	fx.qrService.EXPECT().RecipeShareQR(recipeID).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := fx.service.ShareQR(ctx, recipeID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRecipeService_ShareQR_UnknownRecipe(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	recipeID := uuid.New()

	fx.recipeRepo.EXPECT().FindByID(ctx, recipeID).Return(nil, repository.ErrRecipeNotFound)

	png, err := fx.service.ShareQR(ctx, recipeID)

	assert.Nil(t, png)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestRecipeService_Get_NotFound(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	recipeID := uuid.New()

	fx.recipeRepo.EXPECT().FindByID(ctx, recipeID).Return(nil, repository.ErrRecipeNotFound)

	recipe, err := fx.service.Get(ctx, recipeID)

	assert.Nil(t, recipe)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestRecipeService_List_DefaultsPage(t *testing.T) {
	fx := createTestRecipeService(t)

	ctx := context.Background()
	fx.recipeRepo.EXPECT().
		List(ctx, mock.AnythingOfType("repository.RecipeFilter")).
		Return([]*entity.Recipe{{Title: "One"}}, int64(1), nil)

	output, err := fx.service.List(ctx, &usecase.ListRecipesInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, int64(1), output.Total)
}
