package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/turf-booking/internal/model"
)

// ErrGroundNotFound indicates that a ground was not located in the DB.
var ErrGroundNotFound = errors.New("ground not found")

// GroundFilter narrows ListAll.  Empty fields do not filter.
type GroundFilter struct {
	City  string
	Sport string
}

// GroundRepo manages persistence for grounds.
type GroundRepo struct {
	db *sql.DB
}

// NewGroundRepo constructs a GroundRepo with the given DB handle.
func NewGroundRepo(db *sql.DB) *GroundRepo {
	return &GroundRepo{db: db}
}

const groundColumns = `id, name, location, city, sports, base_price, open_time, close_time, rating, image_url`

// scanGround reads one grounds row.  Sports is stored as a JSON array.
func scanGround(row interface{ Scan(...any) error }) (model.Ground, error) {
	var (
		g      model.Ground
		sports []byte
		image  sql.NullString
	)
	if err := row.Scan(&g.ID, &g.Name, &g.Location, &g.City, &sports, &g.BasePrice,
		&g.OpenTime, &g.CloseTime, &g.Rating, &image); err != nil {
		return g, err
	}
	if len(sports) > 0 {
		if err := json.Unmarshal(sports, &g.Sports); err != nil {
			return g, fmt.Errorf("decode sports of ground %d: %w", g.ID, err)
		}
	}
	if image.Valid {
		s := image.String
		g.ImageURL = &s
	}
	return g, nil
}

// ListAll returns grounds ordered by ID.  City matching is case-insensitive;
// Sport must appear in the ground's sports array.
func (r *GroundRepo) ListAll(ctx context.Context, f GroundFilter) ([]model.Ground, error) {
	where := []string{}
	args := []any{}
	if c := strings.TrimSpace(f.City); c != "" {
		where = append(where, "LOWER(city) = ?")
		args = append(args, strings.ToLower(c))
	}
	if s := strings.TrimSpace(f.Sport); s != "" {
		where = append(where, "JSON_CONTAINS(sports, JSON_QUOTE(?))")
		args = append(args, strings.ToLower(s))
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	q := `SELECT ` + groundColumns + ` FROM grounds WHERE ` + cond + ` ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Ground{}
	for rows.Next() {
		g, err := scanGround(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a ground by its ID.  It returns ErrGroundNotFound if
// there is no matching row.
func (r *GroundRepo) GetByID(ctx context.Context, id uint64) (*model.Ground, error) {
	q := `SELECT ` + groundColumns + ` FROM grounds WHERE id = ?`
	g, err := scanGround(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroundNotFound
		}
		return nil, err
	}
	return &g, nil
}

// Create inserts a new ground and assigns the generated ID back to g.
func (r *GroundRepo) Create(ctx context.Context, g *model.Ground) error {
	sports, err := json.Marshal(g.Sports)
	if err != nil {
		return err
	}
	const q = `INSERT INTO grounds (name, location, city, sports, base_price, open_time, close_time, rating, image_url)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.Name, g.Location, g.City, sports, g.BasePrice,
		g.OpenTime, g.CloseTime, g.Rating, g.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}
