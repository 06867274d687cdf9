package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
)

// MembershipService manages the favorite and shopping cart sets. Both share
// the same absent -> present -> absent state machine.
type MembershipService struct {
	memberRepo repository.MembershipRepository
	recipeRepo repository.RecipeRepository
}

func NewMembershipService(memberRepo repository.MembershipRepository, recipeRepo repository.RecipeRepository) *MembershipService {
	return &MembershipService{memberRepo: memberRepo, recipeRepo: recipeRepo}
}

func (s *MembershipService) AddFavorite(ctx context.Context, userID, recipeID uint) (*models.RecipeShort, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, 0)
	if err != nil {
		return nil, err
	}

	added, err := s.memberRepo.AddFavorite(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.NewDuplicateMembershipError("Recipe is already in favorites")
	}
	observability.MembershipOps.WithLabelValues("favorite", "add").Inc()

	short := recipe.Short()
	return &short, nil
}

func (s *MembershipService) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return err
	}

	removed, err := s.memberRepo.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Favorite", recipeID)
	}
	observability.MembershipOps.WithLabelValues("favorite", "remove").Inc()
	return nil
}

func (s *MembershipService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.RecipeShort, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, 0)
	if err != nil {
		return nil, err
	}

	added, err := s.memberRepo.AddCartEntry(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.NewDuplicateMembershipError("Recipe is already in the shopping cart")
	}
	observability.MembershipOps.WithLabelValues("cart", "add").Inc()

	short := recipe.Short()
	return &short, nil
}

func (s *MembershipService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return err
	}

	removed, err := s.memberRepo.RemoveCartEntry(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundError("Shopping cart entry", recipeID)
	}
	observability.MembershipOps.WithLabelValues("cart", "remove").Inc()
	return nil
}
