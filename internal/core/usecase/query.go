package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
)

// CatalogQueryUseCase serves the browse, search and detail views. All
// filtering happens in the record store; nothing is cached here.
type CatalogQueryUseCase struct {
	perfumes    ports.PerfumeRepository
	ingredients ports.IngredientRepository
}

func NewCatalogQueryUseCase(perfumes ports.PerfumeRepository, ingredients ports.IngredientRepository) *CatalogQueryUseCase {
	return &CatalogQueryUseCase{perfumes: perfumes, ingredients: ingredients}
}

func (uc *CatalogQueryUseCase) ListPerfumes(ctx context.Context) ([]domain.Perfume, error) {
	perfumes, err := uc.perfumes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list perfumes: %w", err)
	}
	return perfumes, nil
}

func (uc *CatalogQueryUseCase) GetPerfume(ctx context.Context, id int64) (*domain.Perfume, error) {
	perfume, err := uc.perfumes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get perfume: %w", err)
	}
	return perfume, nil
}

func (uc *CatalogQueryUseCase) SearchPerfumes(ctx context.Context, term string) ([]domain.Perfume, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.ListPerfumes(ctx)
	}
	perfumes, err := uc.perfumes.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search perfumes: %w", err)
	}
	return perfumes, nil
}

func (uc *CatalogQueryUseCase) PerfumesByFamily(ctx context.Context, family string) ([]domain.Perfume, error) {
	perfumes, err := uc.perfumes.FilterByFamily(ctx, family)
	if err != nil {
		return nil, fmt.Errorf("filter perfumes by family: %w", err)
	}
	return perfumes, nil
}

func (uc *CatalogQueryUseCase) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := uc.ingredients.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (uc *CatalogQueryUseCase) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	ingredient, err := uc.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ingredient, nil
}
