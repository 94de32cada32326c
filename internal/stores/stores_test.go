package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"recipehub/internal/geo"
	"recipehub/internal/geocode"
	"recipehub/pkg/database"
	"recipehub/pkg/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "stores.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedStores(t *testing.T) {
	seeded := SeedStores()
	if len(seeded) != 6 {
		t.Fatalf("expected 6 stores, got %d", len(seeded))
	}
	waitrose := seeded[5]
	if waitrose.Name != "Waitrose London" || waitrose.Postcode != "W1D 1NU" {
		t.Fatalf("unexpected last store: %+v", waitrose)
	}
	if p, ok := waitrose.Prices.Get("eggs"); !ok || p != 3.25 {
		t.Errorf("eggs = %v %v", p, ok)
	}
	for _, s := range seeded {
		if _, _, ok := s.Coordinates(); !ok {
			t.Errorf("%s has no coordinates", s.Name)
		}
		if len(s.Prices) != 9 {
			t.Errorf("%s has %d prices", s.Name, len(s.Prices))
		}
	}

	// copies do not share coordinate pointers
	again := SeedStores()
	*again[0].Latitude = 0
	if *seeded[0].Latitude == 0 {
		t.Error("SeedStores should return independent copies")
	}
}

func TestReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(newTestDB(t))

	lat := 10.0
	first := []models.Store{
		{Name: "Corner Shop", Prices: models.PriceList{{Label: "eggs", Amount: 2}}, Latitude: &lat},
	}
	if err := repo.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := repo.ReplaceAll(ctx, SeedStores()); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 6 || got[0].Name != "Tesco Extra Whitley Bay" {
		t.Fatalf("unexpected stores: %+v", got)
	}
	if got[0].Prices[0].Label != "all-purpose flour" {
		t.Errorf("price order lost: %+v", got[0].Prices)
	}
	if lat, lon, ok := got[0].Coordinates(); !ok || lat != 55.0478 || lon != -1.4827 {
		t.Errorf("coordinates = %v %v %v", lat, lon, ok)
	}
}

func TestListKeepsMissingCoordinatesNil(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(newTestDB(t))

	if err := repo.ReplaceAll(ctx, []models.Store{{Name: "Nowhere"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := repo.List(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("list: %v %v", got, err)
	}
	if got[0].Latitude != nil || got[0].Longitude != nil {
		t.Errorf("expected nil coordinates, got %+v", got[0])
	}

	located, err := repo.ListWithCoords(ctx)
	if err != nil || len(located) != 0 {
		t.Errorf("expected no located stores, got %v %v", located, err)
	}
}

type fakeGeocoder struct {
	point geo.Point
	err   error
}

func (f fakeGeocoder) Lookup(ctx context.Context, postcode string) (geo.Point, error) {
	return f.point, f.err
}

func newTestRouter(t *testing.T, gc Geocoder) (*gin.Engine, *Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewRepo(newTestDB(t))
	r := gin.New()
	NewHandler(repo, gc, nil).RegisterRoutes(r.Group("/api"))
	return r, repo
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInitializeAndList(t *testing.T) {
	r, _ := newTestRouter(t, fakeGeocoder{})

	w := do(r, http.MethodPost, "/api/initialize-stores", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Stores initialized successfully") {
		t.Fatalf("initialize: status = %d body=%s", w.Code, w.Body)
	}

	w = do(r, http.MethodGet, "/api/stores", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var got []models.Store
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("expected 6 stores, got %d", len(got))
	}
}

func TestFindNearestStores(t *testing.T) {
	// Whitley Bay
	r, repo := newTestRouter(t, fakeGeocoder{point: geo.Point{Lat: 55.0478, Lon: -1.4827}})
	if err := repo.ReplaceAll(context.Background(), append(SeedStores(), models.Store{Name: "Unplaced"})); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := do(r, http.MethodPost, "/api/find-nearest-stores", `{"postcode":"NE25 9UZ"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body)
	}
	var resp struct {
		Stores []geo.StoreDistance `json:"stores"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Stores) != 6 {
		t.Fatalf("store without coordinates should be skipped, got %d", len(resp.Stores))
	}
	if resp.Stores[0].Name != "Tesco Extra Whitley Bay" || resp.Stores[0].Distance != 0 {
		t.Errorf("nearest = %+v", resp.Stores[0])
	}
	if last := resp.Stores[5]; last.Name != "Waitrose London" {
		t.Errorf("farthest = %+v", last)
	}
	for i := 1; i < len(resp.Stores); i++ {
		if resp.Stores[i].Distance < resp.Stores[i-1].Distance {
			t.Fatalf("not sorted at %d: %+v", i, resp.Stores)
		}
	}
}

func TestFindNearestStoresErrors(t *testing.T) {
	tests := []struct {
		name string
		gc   Geocoder
		body string
		want int
	}{
		{"missing postcode", fakeGeocoder{}, `{}`, http.StatusBadRequest},
		{"blank postcode", fakeGeocoder{}, `{"postcode":"  "}`, http.StatusBadRequest},
		{"unknown postcode", fakeGeocoder{err: geocode.ErrPostcodeNotFound}, `{"postcode":"ZZ1 1ZZ"}`, http.StatusBadRequest},
		{"upstream failure", fakeGeocoder{err: errors.New("dial tcp: refused")}, `{"postcode":"NE1 5PB"}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t, tt.gc)
			w := do(r, http.MethodPost, "/api/find-nearest-stores", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body=%s)", w.Code, tt.want, w.Body)
			}
		})
	}
}
