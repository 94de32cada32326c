package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"recipehub/internal/geo"
	"recipehub/internal/shopping"
	"recipehub/pkg/models"
)

type apiClient struct {
	BaseURL string
	HTTP    *http.Client
}

func (a *apiClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	endpoint := strings.TrimRight(a.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, e.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

type messageResp struct {
	Message string `json:"message"`
}

type recipeResp struct {
	Message string        `json:"message"`
	Recipe  models.Recipe `json:"recipe"`
}

type recipesResp struct {
	Message string          `json:"message"`
	Recipes []models.Recipe `json:"recipes"`
}

type nearestResp struct {
	Stores []geo.StoreDistance `json:"stores"`
}

func (a *apiClient) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	err := a.do(ctx, http.MethodGet, "/api/recipes", nil, &out)
	return out, err
}

func (a *apiClient) AddRecipe(ctx context.Context, name string, ingredients models.Ingredients, instructions string) (*recipeResp, error) {
	payload := map[string]any{"name": name, "ingredients": ingredients, "instructions": instructions}
	var out recipeResp
	if err := a.do(ctx, http.MethodPost, "/api/recipes", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) DeleteRecipe(ctx context.Context, id int64) (string, error) {
	var out messageResp
	err := a.do(ctx, http.MethodDelete, "/api/recipes/"+strconv.FormatInt(id, 10), nil, &out)
	return out.Message, err
}

func (a *apiClient) GenerateRecipe(ctx context.Context, name string) (*recipeResp, error) {
	var out recipeResp
	if err := a.do(ctx, http.MethodPost, "/api/generate-recipe", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) SearchRecipes(ctx context.Context, query string) (*recipesResp, error) {
	var out recipesResp
	if err := a.do(ctx, http.MethodPost, "/api/search-recipes", map[string]string{"query": query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) ShoppingList(ctx context.Context, ids []int64) (*shopping.Result, error) {
	var out shopping.Result
	if err := a.do(ctx, http.MethodPost, "/api/calculate-shopping-list", map[string]any{"recipe_ids": ids}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *apiClient) NearestStores(ctx context.Context, postcode string) ([]geo.StoreDistance, error) {
	var out nearestResp
	err := a.do(ctx, http.MethodPost, "/api/find-nearest-stores", map[string]string{"postcode": postcode}, &out)
	return out.Stores, err
}

func (a *apiClient) InitStores(ctx context.Context) (string, error) {
	var out messageResp
	err := a.do(ctx, http.MethodPost, "/api/initialize-stores", nil, &out)
	return out.Message, err
}
