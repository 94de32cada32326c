package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"recipehub/internal/recipes"
	"recipehub/internal/stores"
	"recipehub/pkg/database"
	"recipehub/pkg/logger"
	"recipehub/pkg/models"
	"recipehub/pkg/utils"
)

func main() {
	var (
		recipesIn = flag.String("recipes", "data/recipes.csv", "input CSV path for recipes")
		storesIn  = flag.String("stores", "", "input CSV path for stores; replaces all stores when set")
	)
	flag.Parse()

	utils.LoadDotEnv()
	defer logger.Sync()
	log := logger.L()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	if *recipesIn != "" {
		f, err := os.Open(*recipesIn)
		if err != nil {
			log.Fatal("open recipes csv failed", zap.Error(err))
		}
		recs, err := readRecipes(f)
		f.Close()
		if err != nil {
			log.Fatal("read recipes failed", zap.String("path", *recipesIn), zap.Error(err))
		}
		if _, err := recipes.NewRepo(db).CreateMany(ctx, recs); err != nil {
			log.Fatal("import recipes failed", zap.Error(err))
		}
		log.Info("imported recipes", zap.Int("count", len(recs)), zap.String("path", *recipesIn))
	}

	if *storesIn != "" {
		f, err := os.Open(*storesIn)
		if err != nil {
			log.Fatal("open stores csv failed", zap.Error(err))
		}
		list, err := readStores(f)
		f.Close()
		if err != nil {
			log.Fatal("read stores failed", zap.String("path", *storesIn), zap.Error(err))
		}
		if err := stores.NewRepo(db).ReplaceAll(ctx, list); err != nil {
			log.Fatal("import stores failed", zap.Error(err))
		}
		log.Info("imported stores", zap.Int("count", len(list)), zap.String("path", *storesIn))
	}
}

// readRecipes reads name,ingredients,instructions rows. ingredients holds a
// JSON object. Rows without a name are skipped.
func readRecipes(in io.Reader) ([]models.Recipe, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var out []models.Recipe
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := valueAt(header, row, "name")
		if name == "" {
			continue
		}

		var ingredients models.Ingredients
		if raw := valueAt(header, row, "ingredients"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
				return nil, fmt.Errorf("line %d: parse ingredients for %s: %w", line, name, err)
			}
		}

		out = append(out, models.Recipe{
			Name:         name,
			Ingredients:  ingredients,
			Instructions: valueAt(header, row, "instructions"),
		})
	}
	return out, nil
}

// readStores reads name,address,postcode,latitude,longitude,prices rows.
// prices holds a JSON object; empty coordinates stay unknown.
func readStores(in io.Reader) ([]models.Store, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var out []models.Store
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		s := models.Store{
			Name:     valueAt(header, row, "name"),
			Address:  valueAt(header, row, "address"),
			Postcode: valueAt(header, row, "postcode"),
		}
		if s.Name == "" {
			continue
		}
		if s.Latitude, err = parseNullFloat(valueAt(header, row, "latitude")); err != nil {
			return nil, fmt.Errorf("line %d: parse latitude for %s: %w", line, s.Name, err)
		}
		if s.Longitude, err = parseNullFloat(valueAt(header, row, "longitude")); err != nil {
			return nil, fmt.Errorf("line %d: parse longitude for %s: %w", line, s.Name, err)
		}
		if raw := valueAt(header, row, "prices"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &s.Prices); err != nil {
				return nil, fmt.Errorf("line %d: parse prices for %s: %w", line, s.Name, err)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNullFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
