package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"foodgram/internal/observability"
	"foodgram/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ShoppingListItem is one aggregated group of the shopping list.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int    `json:"total"`
}

// ShoppingListService aggregates a user's cart into a merged ingredient list.
type ShoppingListService struct {
	recipeRepo repository.RecipeRepository
}

func NewShoppingListService(recipeRepo repository.RecipeRepository) *ShoppingListService {
	return &ShoppingListService{recipeRepo: recipeRepo}
}

// BuildShoppingList resolves every recipe in the user's cart, flattens the
// ingredient lines and groups them by (name, measurement unit), summing
// amounts within each group. Grouping is by the name/unit pair, not catalog
// identity, so distinct catalog rows sharing both merge into one group.
// Output is sorted by ingredient name; ties keep first-appearance order.
// An empty cart yields an empty list, not an error.
func (s *ShoppingListService) BuildShoppingList(ctx context.Context, userID uint) ([]ShoppingListItem, error) {
	lines, err := s.recipeRepo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		name string
		unit string
	}
	index := make(map[groupKey]int, len(lines))
	items := make([]ShoppingListItem, 0, len(lines))

	for _, line := range lines {
		key := groupKey{name: line.Name, unit: line.MeasurementUnit}
		if i, ok := index[key]; ok {
			items[i].Total += line.Amount
			continue
		}
		index[key] = len(items)
		items = append(items, ShoppingListItem{
			Name:            line.Name,
			MeasurementUnit: line.MeasurementUnit,
			Total:           line.Amount,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// RenderAsText emits the list as the downloadable UTF-8 document, one line
// per group, newline-terminated. An empty list renders as an empty document.
func (s *ShoppingListService) RenderAsText(items []ShoppingListItem) []byte {
	var buf bytes.Buffer
	for i, item := range items {
		fmt.Fprintf(&buf, "%d. %s (%s) — %d\n", i+1, item.Name, item.MeasurementUnit, item.Total)
	}
	return buf.Bytes()
}

// Download builds, renders and records metrics in one call.
func (s *ShoppingListService) Download(ctx context.Context, userID uint) ([]byte, error) {
	span, ctx := observability.NewSpan(ctx, "shopping_list.build")
	defer span.End()

	items, err := s.BuildShoppingList(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.Int("shopping_list.lines", len(items)))
	observability.ShoppingListDownloads.Inc()
	observability.ShoppingListLines.Observe(float64(len(items)))
	return s.RenderAsText(items), nil
}
