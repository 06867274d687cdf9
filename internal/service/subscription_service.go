package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
)

// SubscribedAuthor is an author entry in a user's subscription listing,
// carrying a preview of the author's recipes.
type SubscribedAuthor struct {
	models.User
	Recipes      []models.RecipeShort `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
}

type SubscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo, recipeRepo: recipeRepo}
}

// Subscribe follows the author. Self-subscription is rejected before any write.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, authorID uint) (*SubscribedAuthor, error) {
	if subscriberID == authorID {
		return nil, models.NewSelfReferenceError("Cannot subscribe to yourself")
	}

	author, err := s.userRepo.GetByID(ctx, authorID, subscriberID)
	if err != nil {
		return nil, err
	}

	added, err := s.subRepo.Add(ctx, subscriberID, authorID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.NewDuplicateMembershipError("Already subscribed to this author")
	}
	observability.MembershipOps.WithLabelValues("subscription", "add").Inc()

	author.IsSubscribed = true
	return s.withRecipes(ctx, *author, 3)
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, authorID, 0); err != nil {
		return err
	}

	removed, err := s.subRepo.Remove(ctx, subscriberID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Subscription", authorID)
	}
	observability.MembershipOps.WithLabelValues("subscription", "remove").Inc()
	return nil
}

// ListSubscriptions returns the followed authors with recipe previews.
// recipesLimit caps the preview per author; zero means the default of 3.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, subscriberID uint, limit, offset, recipesLimit int) ([]SubscribedAuthor, int64, error) {
	if recipesLimit <= 0 {
		recipesLimit = 3
	}

	authors, total, err := s.subRepo.ListAuthors(ctx, subscriberID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		entry, err := s.withRecipes(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *entry)
	}
	return result, total, nil
}

func (s *SubscriptionService) withRecipes(ctx context.Context, author models.User, recipesLimit int) (*SubscribedAuthor, error) {
	recipes, count, err := s.recipeRepo.List(ctx, repository.RecipeFilter{AuthorID: author.ID}, recipesLimit, 0, 0)
	if err != nil {
		return nil, err
	}

	shorts := make([]models.RecipeShort, 0, len(recipes))
	for _, recipe := range recipes {
		shorts = append(shorts, recipe.Short())
	}
	return &SubscribedAuthor{User: author, Recipes: shorts, RecipesCount: count}, nil
}
