package recipe

import (
	"context"
	"strings"

	"github.com/freshcart/freshcart-api/internal/usecase"
)

// StaticTable is the deterministic fallback: a handful of known dishes
// matched by substring, else a generic pantry list. It never fails.
type StaticTable struct{}

func NewStaticTable() *StaticTable { return &StaticTable{} }

var knownDishes = []struct {
	key         string
	ingredients []string
}{
	{"pizza", []string{"Pizza dough", "Tomato sauce", "Mozzarella cheese", "Olive oil", "Basil", "Garlic", "Salt"}},
	{"pasta", []string{"Pasta", "Tomatoes", "Garlic", "Olive oil", "Basil", "Parmesan cheese", "Salt", "Pepper"}},
	{"burger", []string{"Ground beef", "Burger buns", "Onion", "Lettuce", "Tomato", "Cheese slices", "Ketchup", "Mustard"}},
	{"curry", []string{"Chicken", "Onion", "Garlic", "Ginger", "Tomatoes", "Curry powder", "Coconut milk", "Rice"}},
	{"salad", []string{"Lettuce", "Cucumber", "Tomatoes", "Bell peppers", "Olives", "Feta cheese", "Olive oil", "Vinegar"}},
}

var genericIngredients = []string{
	"All-purpose flour", "Salt", "Sugar", "Butter", "Eggs",
	"Milk", "Olive oil", "Garlic", "Onions", "Tomatoes",
}

func (t *StaticTable) Ingredients(_ context.Context, dish string) ([]string, error) {
	lower := strings.ToLower(dish)
	for _, d := range knownDishes {
		if strings.Contains(lower, d.key) {
			return append([]string(nil), d.ingredients...), nil
		}
	}
	return append([]string(nil), genericIngredients...), nil
}

var _ usecase.IngredientSource = (*StaticTable)(nil)
