package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recipehub/pkg/models"
)

const (
	generateSystemPrompt = "You are a helpful chef assistant. Generate a recipe with ingredients and instructions in JSON format."
	generateUserPrompt   = `Generate a recipe for %s. Return the response in this exact JSON format: {"ingredients": {"ingredient1": amount, "ingredient2": amount}, "instructions": "step by step instructions"}`

	suggestSystemPrompt = "You are a helpful chef assistant. Generate 3 recipe suggestions based on the user's search query. Each recipe should include a name, ingredients with amounts, and step-by-step instructions."
	suggestUserPrompt   = `Find recipes related to: %s. Return exactly 3 recipes in this JSON format: {"recipes": [{"name": "Recipe Name", "ingredients": {"ingredient1": "amount1", "ingredient2": "amount2"}, "instructions": "step by step instructions"}]}`
)

// Draft is a recipe proposed by the model, not yet stored.
type Draft struct {
	Name         string             `json:"name"`
	Ingredients  models.Ingredients `json:"ingredients"`
	Instructions instructions       `json:"instructions"`
}

func (d Draft) Recipe() models.Recipe {
	return models.Recipe{
		Name:         d.Name,
		Ingredients:  d.Ingredients,
		Instructions: string(d.Instructions),
	}
}

// instructions accepts a single string or a list of steps.
type instructions string

func (s *instructions) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = instructions(text)
		return nil
	}
	var steps []string
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("instructions must be text or a list of steps: %w", err)
	}
	*s = instructions(strings.Join(steps, "\n"))
	return nil
}

type RecipeService struct {
	Gen Generator
}

func NewRecipeService(gen Generator) *RecipeService {
	return &RecipeService{Gen: gen}
}

// Generate asks the model for a recipe called name.
func (s *RecipeService) Generate(ctx context.Context, name string) (Draft, error) {
	reply, err := s.Gen.Complete(ctx, generateSystemPrompt, fmt.Sprintf(generateUserPrompt, name))
	if err != nil {
		return Draft{}, err
	}

	var d Draft
	if err := decodeReply(reply, &d); err != nil {
		return Draft{}, err
	}
	if d.Ingredients == nil {
		return Draft{}, fmt.Errorf("%w: missing ingredients", ErrMalformedReply)
	}
	d.Name = name
	return d, nil
}

// Suggest asks the model for three recipes related to query.
func (s *RecipeService) Suggest(ctx context.Context, query string) ([]Draft, error) {
	reply, err := s.Gen.Complete(ctx, suggestSystemPrompt, fmt.Sprintf(suggestUserPrompt, query))
	if err != nil {
		return nil, err
	}

	var out struct {
		Recipes []Draft `json:"recipes"`
	}
	if err := decodeReply(reply, &out); err != nil {
		return nil, err
	}
	if out.Recipes == nil {
		return nil, fmt.Errorf("%w: missing recipes", ErrMalformedReply)
	}
	for i, d := range out.Recipes {
		if strings.TrimSpace(d.Name) == "" || d.Ingredients == nil {
			return nil, fmt.Errorf("%w: recipe %d incomplete", ErrMalformedReply, i)
		}
	}
	return out.Recipes, nil
}

func decodeReply(reply string, v any) error {
	if err := json.Unmarshal([]byte(stripFences(reply)), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return nil
}

// stripFences removes a Markdown code fence (``` or ```json) around the
// reply, if there is one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
