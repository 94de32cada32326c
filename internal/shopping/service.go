package shopping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"recipehub/pkg/models"
)

var (
	ErrNoRecipesSelected = errors.New("no recipes selected")
	ErrRecipesNotFound   = errors.New("no recipes found")
	ErrNoStores          = errors.New("no stores found")
)

type RecipeSource interface {
	GetByIDs(ctx context.Context, ids []int64) ([]models.Recipe, error)
}

type StoreSource interface {
	List(ctx context.Context) ([]models.Store, error)
}

type Service struct {
	Recipes RecipeSource
	Stores  StoreSource
}

func NewService(recipes RecipeSource, stores StoreSource) *Service {
	return &Service{Recipes: recipes, Stores: stores}
}

// Calculate builds the priced shopping list for the given recipe ids.
func (s *Service) Calculate(ctx context.Context, ids []int64) (*Result, error) {
	if len(ids) == 0 {
		return nil, ErrNoRecipesSelected
	}

	recipes, err := s.Recipes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, ErrRecipesNotFound
	}

	stores, err := s.Stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}
	if len(stores) == 0 {
		return nil, ErrNoStores
	}

	return Aggregate(recipes, stores)
}

// RecipeIDs decodes a JSON array of recipe ids given either as numbers or
// as numeric strings (checkbox values). Integral floats such as 1.0 count as
// ids. Any other entry decodes as 0, which matches no recipe, so a list of
// nothing but junk ends in ErrRecipesNotFound rather than a bad request.
type RecipeIDs []int64

func (ids *RecipeIDs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(RecipeIDs, 0, len(raw))
	for _, r := range raw {
		out = append(out, recipeID(r))
	}
	*ids = out
	return nil
}

func recipeID(r json.RawMessage) int64 {
	var n json.Number
	if err := json.Unmarshal(r, &n); err != nil {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			return 0
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if id, err := n.Int64(); err == nil {
		return id
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}
