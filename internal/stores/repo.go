package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"recipehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const selectStore = `
	SELECT id, name, prices, address, postcode, latitude, longitude
	FROM stores
`

func (r *Repo) List(ctx context.Context) ([]models.Store, error) {
	return r.query(ctx, selectStore+` ORDER BY id ASC`)
}

// ListWithCoords returns only the stores that have both coordinates.
func (r *Repo) ListWithCoords(ctx context.Context) ([]models.Store, error) {
	return r.query(ctx, selectStore+`
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY id ASC`)
}

func (r *Repo) query(ctx context.Context, q string) ([]models.Store, error) {
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	out := make([]models.Store, 0)
	for rows.Next() {
		var (
			s          models.Store
			pricesJSON string
			lat, lon   sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Name, &pricesJSON, &s.Address, &s.Postcode, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		if err := json.Unmarshal([]byte(pricesJSON), &s.Prices); err != nil {
			return nil, fmt.Errorf("decode prices of store %d: %w", s.ID, err)
		}
		if lat.Valid {
			s.Latitude = &lat.Float64
		}
		if lon.Valid {
			s.Longitude = &lon.Float64
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ReplaceAll deletes every store and inserts stores in one transaction.
func (r *Repo) ReplaceAll(ctx context.Context, stores []models.Store) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stores`); err != nil {
		return fmt.Errorf("clear stores: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stores (name, prices, address, postcode, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stores {
		prices := s.Prices
		if prices == nil {
			prices = models.PriceList{}
		}
		pricesJSON, err := json.Marshal(prices)
		if err != nil {
			return fmt.Errorf("marshal prices of %s: %w", s.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, s.Name, string(pricesJSON), s.Address, s.Postcode,
			nullFloat(s.Latitude), nullFloat(s.Longitude)); err != nil {
			return fmt.Errorf("insert store %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
