package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strconv"
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
		recipesOut = flag.String("recipes", "data/recipes.csv", "output CSV path for recipes")
		storesOut  = flag.String("stores", "data/stores.csv", "output CSV path for stores")
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

	recs, err := recipes.NewRepo(db).List(ctx)
	if err != nil {
		log.Fatal("list recipes failed", zap.Error(err))
	}
	if err := writeFile(*recipesOut, func(w io.Writer) error { return writeRecipes(w, recs) }); err != nil {
		log.Fatal("export recipes failed", zap.Error(err))
	}

	list, err := stores.NewRepo(db).List(ctx)
	if err != nil {
		log.Fatal("list stores failed", zap.Error(err))
	}
	if err := writeFile(*storesOut, func(w io.Writer) error { return writeStores(w, list) }); err != nil {
		log.Fatal("export stores failed", zap.Error(err))
	}

	log.Info("export done",
		zap.Int("recipes", len(recs)), zap.String("recipes_path", *recipesOut),
		zap.Int("stores", len(list)), zap.String("stores_path", *storesOut))
}

func writeFile(outPath string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

func writeRecipes(out io.Writer, recs []models.Recipe) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "name", "ingredients", "instructions", "created_at"}); err != nil {
		return err
	}
	for _, r := range recs {
		ingredients, err := json.Marshal(r.Ingredients)
		if err != nil {
			return err
		}
		if err := w.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			string(ingredients),
			r.Instructions,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeStores(out io.Writer, list []models.Store) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "name", "address", "postcode", "latitude", "longitude", "prices"}); err != nil {
		return err
	}
	for _, s := range list {
		prices, err := json.Marshal(s.Prices)
		if err != nil {
			return err
		}
		if err := w.Write([]string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.Address,
			s.Postcode,
			formatNullFloat(s.Latitude),
			formatNullFloat(s.Longitude),
			string(prices),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatNullFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
