package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{2.9, "GBP", "£2.90"},
		{0, "GBP", "£0.00"},
		{1.15, "USD", "$1.15"},
		{3.25, "XXX-not-a-currency", "3.25"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("formatMoney(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", " 22 "})
	if err != nil || len(ids) != 2 || ids[0] != 1 || ids[1] != 22 {
		t.Errorf("parseIDs = %v %v", ids, err)
	}
	if _, err := parseIDs([]string{"x"}); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestWebsocketURL(t *testing.T) {
	got, err := websocketURL("https://recipes.example.com:8443/base", "/ws")
	if err != nil || got != "wss://recipes.example.com:8443/ws" {
		t.Errorf("websocketURL = %q %v", got, err)
	}
}

func TestAPIClientShoppingList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/calculate-shopping-list" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var body struct {
			RecipeIDs []int64 `json:"recipe_ids"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.RecipeIDs) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"No recipes selected"}`))
			return
		}
		_, _ = w.Write([]byte(`{"shopping_list":{"eggs":2},` +
			`"store_costs":{"B":{"items":{"eggs":2.5},"total":2.5},"A":{"items":{"eggs":2},"total":2}},` +
			`"cheapest_store":"A","total_cost":2}`))
	}))
	defer srv.Close()

	api := &apiClient{BaseURL: srv.URL + "/", HTTP: srv.Client()}

	res, err := api.ShoppingList(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("shopping list: %v", err)
	}
	if res.CheapestStore != "A" || len(res.StoreCosts) != 2 || res.StoreCosts[0].Store != "B" {
		t.Errorf("unexpected result: %+v", res)
	}

	_, err = api.ShoppingList(context.Background(), []int64{1})
	if err == nil || !strings.Contains(err.Error(), "No recipes selected") {
		t.Errorf("expected server error message, got %v", err)
	}
}
