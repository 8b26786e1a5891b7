package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

type PerfumeRepository struct {
	db *sql.DB
}

func NewPerfumeRepository(db *sql.DB) *PerfumeRepository {
	return &PerfumeRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *PerfumeRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS perfumes (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	brand TEXT NOT NULL,
	family TEXT,
	description TEXT,
	year INT,
	image_url TEXT NOT NULL,
	cloudinary_public_id TEXT,
	ai_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ingredients (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT,
	description TEXT,
	image_url TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_perfumes_created_at ON perfumes(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_perfumes_family ON perfumes(family);
CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(name);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Insert persists a record and returns it with the server-assigned id
// and creation timestamp.
func (r *PerfumeRepository) Insert(ctx context.Context, perfume *domain.Perfume) (*domain.Perfume, error) {
	persisted := *perfume
	err := r.db.QueryRowContext(ctx, `
INSERT INTO perfumes (name, brand, family, description, year, image_url, cloudinary_public_id, ai_confidence)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id, created_at
`,
		perfume.Name, perfume.Brand, perfume.Family, perfume.Description,
		perfume.Year, perfume.ImageURL, perfume.ImagePublicID, perfume.AIConfidence,
	).Scan(&persisted.ID, &persisted.CreatedAt)
	if err != nil {
		return nil, domain.WrapError(domain.ErrPersist, "insert perfume", err)
	}
	return &persisted, nil
}

const perfumeColumns = `id, name, brand, family, description, year, image_url, cloudinary_public_id, ai_confidence, created_at`

func (r *PerfumeRepository) GetByID(ctx context.Context, id int64) (*domain.Perfume, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+perfumeColumns+`
FROM perfumes
WHERE id = $1
`, id)

	perfume, err := scanPerfume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get perfume", fmt.Errorf("id %d", id))
		}
		return nil, fmt.Errorf("scan perfume: %w", err)
	}
	return perfume, nil
}

func (r *PerfumeRepository) ListAll(ctx context.Context) ([]domain.Perfume, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+perfumeColumns+`
FROM perfumes
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list perfumes: %w", err)
	}
	return collectPerfumes(rows)
}

func (r *PerfumeRepository) Search(ctx context.Context, term string) ([]domain.Perfume, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
SELECT `+perfumeColumns+`
FROM perfumes
WHERE name ILIKE $1 OR brand ILIKE $1
ORDER BY created_at DESC
`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search perfumes: %w", err)
	}
	return collectPerfumes(rows)
}

func (r *PerfumeRepository) FilterByFamily(ctx context.Context, family string) ([]domain.Perfume, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+perfumeColumns+`
FROM perfumes
WHERE family = $1
ORDER BY created_at DESC
`, family)
	if err != nil {
		return nil, fmt.Errorf("filter perfumes: %w", err)
	}
	return collectPerfumes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerfume(row rowScanner) (*domain.Perfume, error) {
	var perfume domain.Perfume
	var family, description, publicID sql.NullString
	var year sql.NullInt64

	err := row.Scan(
		&perfume.ID, &perfume.Name, &perfume.Brand, &family, &description,
		&year, &perfume.ImageURL, &publicID, &perfume.AIConfidence, &perfume.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	perfume.Family = family.String
	perfume.Description = description.String
	perfume.ImagePublicID = publicID.String
	if year.Valid {
		y := int(year.Int64)
		perfume.Year = &y
	}
	return &perfume, nil
}

func collectPerfumes(rows *sql.Rows) ([]domain.Perfume, error) {
	defer rows.Close()

	perfumes := make([]domain.Perfume, 0)
	for rows.Next() {
		perfume, err := scanPerfume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan perfume: %w", err)
		}
		perfumes = append(perfumes, *perfume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate perfumes: %w", err)
	}
	return perfumes, nil
}
