package usecase

import (
	"context"
	"strings"

	"github.com/freshcart/freshcart-api/internal/logging"
)

// SuggestIngredients expands a dish name into shoppable ingredient names.
// The primary source is the external model; any failure (or an empty
// answer) degrades to the deterministic local table. The fallback is an
// intentional degrade, not a hidden error, so the result says which
// source answered.
type SuggestIngredients struct {
	primary  IngredientSource
	fallback IngredientSource
}

type SuggestResult struct {
	Dish        string
	Ingredients []string
	Fallback    bool
}

func NewSuggestIngredients(primary, fallback IngredientSource) *SuggestIngredients {
	return &SuggestIngredients{primary: primary, fallback: fallback}
}

func (uc *SuggestIngredients) Execute(ctx context.Context, dish string) (SuggestResult, error) {
	dish = strings.TrimSpace(dish)
	if dish == "" {
		return SuggestResult{}, ErrEmptyDish
	}

	if uc.primary != nil {
		ingredients, err := uc.primary.Ingredients(ctx, dish)
		if err == nil && len(ingredients) > 0 {
			return SuggestResult{Dish: dish, Ingredients: ingredients}, nil
		}
		if err != nil {
			logging.FromCtx(ctx).Warn("ingredient source failed, using fallback",
				"dish", dish, "err", err)
		}
	}

	ingredients, _ := uc.fallback.Ingredients(ctx, dish)
	return SuggestResult{Dish: dish, Ingredients: ingredients, Fallback: true}, nil
}
