package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

type IngredientRepository struct {
	db *sql.DB
}

func NewIngredientRepository(db *sql.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

const ingredientColumns = `id, name, category, description, image_url, created_at`

func (r *IngredientRepository) ListAll(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+ingredientColumns+`
FROM ingredients
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]domain.Ingredient, 0)
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return ingredients, nil
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+ingredientColumns+`
FROM ingredients
WHERE id = $1
`, id)

	ingredient, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get ingredient", fmt.Errorf("id %d", id))
		}
		return nil, fmt.Errorf("scan ingredient: %w", err)
	}
	return ingredient, nil
}

func scanIngredient(row rowScanner) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	var category, description, imageURL sql.NullString

	err := row.Scan(
		&ingredient.ID, &ingredient.Name, &category, &description, &imageURL, &ingredient.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ingredient.Category = category.String
	ingredient.Description = description.String
	ingredient.ImageURL = imageURL.String
	return &ingredient, nil
}
