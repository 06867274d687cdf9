package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn    func(context.Context, *models.Recipe) error
	updateFn    func(context.Context, *models.Recipe) error
	getByIDFn   func(context.Context, uint, uint) (*models.Recipe, error)
	listFn      func(context.Context, repository.RecipeFilter, int, int, uint) ([]*models.Recipe, int64, error)
	deleteFn    func(context.Context, uint) error
	cartLinesFn func(context.Context, uint) ([]repository.CartLine, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, r *models.Recipe) error {
	return s.createFn(ctx, r)
}
func (s *recipeRepoStub) Update(ctx context.Context, r *models.Recipe) error {
	return s.updateFn(ctx, r)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *recipeRepoStub) List(ctx context.Context, f repository.RecipeFilter, limit, offset int, viewerID uint) ([]*models.Recipe, int64, error) {
	return s.listFn(ctx, f, limit, offset, viewerID)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *recipeRepoStub) CartLines(ctx context.Context, userID uint) ([]repository.CartLine, error) {
	return s.cartLinesFn(ctx, userID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn:  func(_ context.Context, _ *models.Recipe) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Recipe) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Recipe, error) { return &models.Recipe{ID: id}, nil },
		listFn: func(_ context.Context, _ repository.RecipeFilter, _, _ int, _ uint) ([]*models.Recipe, int64, error) {
			return nil, 0, nil
		},
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		cartLinesFn: func(_ context.Context, _ uint) ([]repository.CartLine, error) { return nil, nil },
	}
}

// ingredientRepoStub is a stub for repository.IngredientRepository.
type ingredientRepoStub struct {
	searchFn     func(context.Context, string, int) ([]models.Ingredient, error)
	getByIDFn    func(context.Context, uint) (*models.Ingredient, error)
	getByIDsFn   func(context.Context, []uint) ([]models.Ingredient, error)
	bulkImportFn func(context.Context, []models.Ingredient) (int64, error)
}

func (s *ingredientRepoStub) Search(ctx context.Context, prefix string, limit int) ([]models.Ingredient, error) {
	return s.searchFn(ctx, prefix, limit)
}
func (s *ingredientRepoStub) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ingredientRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *ingredientRepoStub) BulkImport(ctx context.Context, ingredients []models.Ingredient) (int64, error) {
	return s.bulkImportFn(ctx, ingredients)
}

// echoIngredientRepo resolves every requested ID as existing.
func echoIngredientRepo() *ingredientRepoStub {
	return &ingredientRepoStub{
		searchFn:  func(_ context.Context, _ string, _ int) ([]models.Ingredient, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Ingredient, error) { return &models.Ingredient{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Ingredient, error) {
			out := make([]models.Ingredient, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.Ingredient{ID: id})
			}
			return out, nil
		},
		bulkImportFn: func(_ context.Context, _ []models.Ingredient) (int64, error) { return 0, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	listFn     func(context.Context) ([]models.Tag, error)
	getByIDFn  func(context.Context, uint) (*models.Tag, error)
	getByIDsFn func(context.Context, []uint) ([]models.Tag, error)
	createFn   func(context.Context, *models.Tag) error
}

func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) { return s.listFn(ctx) }
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error { return s.createFn(ctx, tag) }

// echoTagRepo resolves every requested ID as existing.
func echoTagRepo() *tagRepoStub {
	return &tagRepoStub{
		listFn:    func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			out := make([]models.Tag, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.Tag{ID: id})
			}
			return out, nil
		},
		createFn: func(_ context.Context, _ *models.Tag) error { return nil },
	}
}

// membershipRepoStub is a stub for repository.MembershipRepository.
type membershipRepoStub struct {
	addFavoriteFn     func(context.Context, uint, uint) (bool, error)
	removeFavoriteFn  func(context.Context, uint, uint) (bool, error)
	addCartEntryFn    func(context.Context, uint, uint) (bool, error)
	removeCartEntryFn func(context.Context, uint, uint) (bool, error)
	cartRecipeIDsFn   func(context.Context, uint) ([]uint, error)
}

func (s *membershipRepoStub) AddFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.addFavoriteFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) RemoveFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.removeFavoriteFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) AddCartEntry(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.addCartEntryFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) RemoveCartEntry(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.removeCartEntryFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) CartRecipeIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.cartRecipeIDsFn(ctx, userID)
}

func noopMembershipRepo() *membershipRepoStub {
	return &membershipRepoStub{
		addFavoriteFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		removeFavoriteFn:  func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		addCartEntryFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		removeCartEntryFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		cartRecipeIDsFn:   func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// subscriptionRepoStub is a stub for repository.SubscriptionRepository.
type subscriptionRepoStub struct {
	addFn         func(context.Context, uint, uint) (bool, error)
	removeFn      func(context.Context, uint, uint) (bool, error)
	listAuthorsFn func(context.Context, uint, int, int) ([]models.User, int64, error)
}

func (s *subscriptionRepoStub) Add(ctx context.Context, subscriberID, authorID uint) (bool, error) {
	return s.addFn(ctx, subscriberID, authorID)
}
func (s *subscriptionRepoStub) Remove(ctx context.Context, subscriberID, authorID uint) (bool, error) {
	return s.removeFn(ctx, subscriberID, authorID)
}
func (s *subscriptionRepoStub) ListAuthors(ctx context.Context, subscriberID uint, limit, offset int) ([]models.User, int64, error) {
	return s.listAuthorsFn(ctx, subscriberID, limit, offset)
}

func noopSubscriptionRepo() *subscriptionRepoStub {
	return &subscriptionRepoStub{
		addFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		removeFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		listAuthorsFn: func(_ context.Context, _ uint, _, _ int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint, uint) (*models.User, error)
	getForUpdateFn  func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int, uint) ([]models.User, int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.User, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *userRepoStub) GetForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return s.getForUpdateFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int, viewerID uint) ([]models.User, int64, error) {
	return s.listFn(ctx, limit, offset, viewerID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id, _ uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getForUpdateFn:  func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int, _ uint) ([]models.User, int64, error) { return nil, 0, nil },
	}
}
