package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

type catalogStub struct {
	perfumes    []domain.Perfume
	ingredients []domain.Ingredient
	lastSearch  string
	lastFamily  string
}

func (s *catalogStub) ListPerfumes(context.Context) ([]domain.Perfume, error) {
	return s.perfumes, nil
}

func (s *catalogStub) GetPerfume(_ context.Context, id int64) (*domain.Perfume, error) {
	for i := range s.perfumes {
		if s.perfumes[i].ID == id {
			return &s.perfumes[i], nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "catalogStub.GetPerfume", fmt.Errorf("perfume %d", id))
}

func (s *catalogStub) SearchPerfumes(_ context.Context, term string) ([]domain.Perfume, error) {
	s.lastSearch = term
	return s.perfumes, nil
}

func (s *catalogStub) PerfumesByFamily(_ context.Context, family string) ([]domain.Perfume, error) {
	s.lastFamily = family
	return s.perfumes, nil
}

func (s *catalogStub) ListIngredients(context.Context) ([]domain.Ingredient, error) {
	return s.ingredients, nil
}

func (s *catalogStub) GetIngredient(_ context.Context, id int64) (*domain.Ingredient, error) {
	for i := range s.ingredients {
		if s.ingredients[i].ID == id {
			return &s.ingredients[i], nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "catalogStub.GetIngredient", fmt.Errorf("ingredient %d", id))
}

func newCatalogRouter(catalog *catalogStub) *Router {
	return NewRouter(&ingestorStub{}, &batchStub{}, catalog, &queueStub{}, Options{})
}

func TestListPerfumes(t *testing.T) {
	catalog := &catalogStub{perfumes: []domain.Perfume{
		{ID: 2, Name: "Sauvage", Brand: "Dior", Family: "Woody"},
		{ID: 1, Name: "No 5", Brand: "Chanel", Family: "Floral"},
	}}
	rt := newCatalogRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/perfumes", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		Perfumes []domain.Perfume `json:"perfumes"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Perfumes) != 2 {
		t.Fatalf("unexpected list response: %+v", resp)
	}
}

func TestListPerfumesWithFamilyFilter(t *testing.T) {
	catalog := &catalogStub{}
	rt := newCatalogRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/perfumes?family=Woody", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if catalog.lastFamily != "Woody" {
		t.Fatalf("expected family filter to be used, got %q", catalog.lastFamily)
	}
}

func TestGetPerfumeByID(t *testing.T) {
	catalog := &catalogStub{perfumes: []domain.Perfume{{ID: 7, Name: "Bleu", Brand: "Chanel"}}}
	rt := newCatalogRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/perfumes/7", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var perfume domain.Perfume
	if err := json.Unmarshal(res.Body.Bytes(), &perfume); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if perfume.Name != "Bleu" {
		t.Fatalf("unexpected perfume: %+v", perfume)
	}
}

func TestGetPerfumeMissingReturns404(t *testing.T) {
	rt := newCatalogRouter(&catalogStub{})

	req := httptest.NewRequest(http.MethodGet, "/v1/perfumes/99", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetPerfumeRejectsNonNumericID(t *testing.T) {
	rt := newCatalogRouter(&catalogStub{})

	req := httptest.NewRequest(http.MethodGet, "/v1/perfumes/sauvage", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSearchPerfumesRoutesUnderPerfumesSubtree(t *testing.T) {
	catalog := &catalogStub{perfumes: []domain.Perfume{{ID: 1, Name: "Sauvage", Brand: "Dior"}}}
	rt := newCatalogRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/perfumes/search?q=sauvage", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if catalog.lastSearch != "sauvage" {
		t.Fatalf("expected search term to pass through, got %q", catalog.lastSearch)
	}
}

func TestIngredientEndpoints(t *testing.T) {
	catalog := &catalogStub{ingredients: []domain.Ingredient{{ID: 3, Name: "Bergamot"}}}
	rt := newCatalogRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/ingredients", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/ingredients/3", nil)
	res = httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/ingredients/8", nil)
	res = httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)
	if res.Code != http.StatusNotFound {
		t.Fatalf("missing: expected 404, got %d", res.Code)
	}
}

func TestHealthz(t *testing.T) {
	rt := newCatalogRouter(&catalogStub{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	rt.Handler().ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}
