package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"recipehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const selectRecipe = `
	SELECT id, name, ingredients, instructions, created_at
	FROM recipes
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var (
		r               models.Recipe
		ingredientsJSON string
	)
	if err := row.Scan(&r.ID, &r.Name, &ingredientsJSON, &r.Instructions, &r.CreatedAt); err != nil {
		return r, err
	}
	if err := json.Unmarshal([]byte(ingredientsJSON), &r.Ingredients); err != nil {
		return r, fmt.Errorf("decode ingredients of recipe %d: %w", r.ID, err)
	}
	return r, nil
}

func (r *Repo) List(ctx context.Context) ([]models.Recipe, error) {
	rows, err := r.DB.QueryContext(ctx, selectRecipe+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return collect(rows)
}

// GetByID returns nil, nil when the recipe does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	rec, err := scanRecipe(r.DB.QueryRowContext(ctx, selectRecipe+` WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// GetByIDs returns the recipes among ids that exist, in id order. Unknown
// ids are ignored.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.DB.QueryContext(ctx, selectRecipe+` WHERE id IN (`+placeholders+`) ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("get recipes by ids: %w", err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]models.Recipe, error) {
	defer rows.Close()

	out := make([]models.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, rec models.Recipe) (models.Recipe, error) {
	if rec.Ingredients == nil {
		rec.Ingredients = models.Ingredients{}
	}
	ingredientsJSON, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return rec, fmt.Errorf("marshal ingredients: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO recipes (name, ingredients, instructions, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.Name, string(ingredientsJSON), rec.Instructions, rec.CreatedAt)
	if err != nil {
		return rec, fmt.Errorf("insert recipe: %w", err)
	}

	rec.ID, err = res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("last insert id: %w", err)
	}
	return rec, nil
}

func (r *Repo) Create(ctx context.Context, rec models.Recipe) (*models.Recipe, error) {
	saved, err := insert(ctx, r.DB, rec)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// CreateMany stores all recipes in one transaction: either every recipe is
// saved or none is.
func (r *Repo) CreateMany(ctx context.Context, recs []models.Recipe) ([]models.Recipe, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	out := make([]models.Recipe, 0, len(recs))
	for _, rec := range recs {
		saved, err := insert(ctx, tx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete recipe: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
