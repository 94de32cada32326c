package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipehub/internal/geo"
	synchub "recipehub/internal/sync"
	"recipehub/pkg/database"
)

type fixedGeocoder struct{ p geo.Point }

func (f fixedGeocoder) Lookup(ctx context.Context, postcode string) (geo.Point, error) {
	return f.p, nil
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "api.db")
	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return newRouter(routerDeps{
		DB:       db,
		DBPath:   path,
		Hub:      synchub.NewHub(),
		Geocoder: fixedGeocoder{geo.Point{Lat: 54.9697, Lon: -1.6157}},
		Log:      zap.NewNop(),
	})
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndReady(t *testing.T) {
	r := newTestServer(t)

	if w := call(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
	w := call(r, http.MethodGet, "/ready", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ready"`) {
		t.Errorf("ready = %d %s", w.Code, w.Body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestShoppingListFlow(t *testing.T) {
	r := newTestServer(t)

	if w := call(r, http.MethodPost, "/api/initialize-stores", ""); w.Code != http.StatusOK {
		t.Fatalf("initialize = %d %s", w.Code, w.Body)
	}

	w := call(r, http.MethodPost, "/api/recipes",
		`{"name":"Cookies","ingredients":{"Eggs (large)":2,"Salt":"1 tsp","saffron":"1 pinch"},"instructions":"Bake."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body)
	}
	var created struct {
		Recipe struct {
			ID int64 `json:"id"`
		} `json:"recipe"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	body, _ := json.Marshal(map[string]any{"recipe_ids": []int64{created.Recipe.ID}})
	w = call(r, http.MethodPost, "/api/calculate-shopping-list", string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("calculate = %d %s", w.Code, w.Body)
	}
	var res struct {
		CheapestStore string  `json:"cheapest_store"`
		TotalCost     float64 `json:"total_cost"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode calculate: %v", err)
	}
	// eggs 2.35 + salt 0.55 at Morrisons
	if res.CheapestStore != "Morrisons Whitley Bay" || res.TotalCost != 2.9 {
		t.Errorf("unexpected result: %+v", res)
	}

	w = call(r, http.MethodPost, "/api/find-nearest-stores", `{"postcode":"NE1 5PB"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"Tesco Metro Newcastle"`) {
		t.Errorf("nearest = %d %s", w.Code, w.Body)
	}

	if w := call(r, http.MethodPost, "/api/generate-recipe", `{"name":"Bread"}`); w.Code != http.StatusServiceUnavailable {
		t.Errorf("generate without model = %d, want 503", w.Code)
	}
}
