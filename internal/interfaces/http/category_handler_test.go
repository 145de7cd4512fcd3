package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes y helpers
// ──────────────────────────────────────────────────────────────────────────────

var handlerNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return handlerNow }

type categoryStore struct {
	mu      sync.Mutex
	byID    map[string]entity.Category
	saveErr error
}

func (s *categoryStore) Create(_ context.Context, c *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Version = 1
	s.byID[c.ID] = *c
	return nil
}

func (s *categoryStore) GetByID(_ context.Context, id string) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	c.SaleHistory = append([]entity.SaleHistoryEntry(nil), c.SaleHistory...)
	return &c, nil
}

func (s *categoryStore) GetByName(_ context.Context, name string) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byID {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *categoryStore) List(context.Context) ([]*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.Category{}
	for _, c := range s.byID {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (s *categoryStore) Save(_ context.Context, c *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if stored, ok := s.byID[c.ID]; !ok || stored.Version != c.Version {
		return domain.ErrConflict
	}
	c.Version++
	s.byID[c.ID] = *c
	return nil
}

func (s *categoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	return ok, nil
}

// noProducts catálogo de productos vacío.
type noProducts struct{}

func (noProducts) Create(context.Context, *entity.Product) error { return nil }
func (noProducts) GetByID(context.Context, string) (*entity.Product, error) { return nil, nil }
func (noProducts) GetByName(context.Context, string) (*entity.Product, error) { return nil, nil }
func (noProducts) GetBySKU(context.Context, string) (*entity.Product, error) { return nil, nil }
func (noProducts) List(context.Context) ([]*entity.Product, error) { return nil, nil }
func (noProducts) Update(context.Context, *entity.Product) error { return nil }
func (noProducts) Delete(context.Context, string) (bool, error) { return false, nil }
func (noProducts) CountByCategory(context.Context) (map[string]int, error) { return map[string]int{}, nil }
func (noProducts) RenameCategory(context.Context, string, string) (int, error) { return 0, nil }

func pendingStore() *categoryStore {
	start, end := handlerNow.Add(24*time.Hour), handlerNow.Add(72*time.Hour)
	return &categoryStore{byID: map[string]entity.Category{
		"cat-1": {
			ID:             "cat-1",
			Name:           "Bebidas",
			SaleStatus:     entity.SalePending,
			SaleStartDate:  &start,
			SaleEndDate:    &end,
			SalePercentage: decimal.NewFromInt(20),
			SaleHistory: []entity.SaleHistoryEntry{{
				StartDate: &start, EndDate: &end,
				Percentage: decimal.NewFromInt(20),
				Status:     entity.SalePending,
				UpdatedAt:  handlerNow.Add(-time.Hour),
			}},
			Version: 1,
		},
	}}
}

// buildCategoryApp monta el router completo sobre los fakes, con o sin auth.
func buildCategoryApp(store *categoryStore, authRequired bool) *fiber.App {
	clock := fixedClock{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:   usecase.NewCategoryUseCase(store, noProducts{}, nil, clock, time.Second),
		SaleUC:       usecase.NewSaleUseCase(store, noProducts{}, clock, nil, nil, time.Second, nil),
		ProductUC:    usecase.NewProductUseCase(noProducts{}, store, clock, time.Second),
		JWTSecret:    testJWTSecret,
		AuthRequired: authRequired,
	})
	return app
}

func putUpdateSale(t *testing.T, app *fiber.App, id, body, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/categories/"+id+"/update-sale", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests PUT /api/categories/:id/update-sale
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_StartNow_Retorna200ConCategoria(t *testing.T) {
	app := buildCategoryApp(pendingStore(), false)

	resp := putUpdateSale(t, app, "cat-1", `{"action":"startNow"}`, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CategoryEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
	require.NotNil(t, body.Category)
	assert.Equal(t, "Active", body.Category.SaleStatus)
	require.NotNil(t, body.Category.SaleStartDate)
	assert.True(t, body.Category.SaleStartDate.Equal(handlerNow))
	require.Len(t, body.Category.SaleHistory, 1)
	assert.Equal(t, "Active", body.Category.SaleHistory[0].Status)
}

func TestUpdateSale_ProgramaConFechasCortas(t *testing.T) {
	store := &categoryStore{byID: map[string]entity.Category{
		"cat-2": {ID: "cat-2", Name: "Postres", SaleStatus: entity.SaleInactive, Version: 1},
	}}
	app := buildCategoryApp(store, false)

	resp := putUpdateSale(t, app, "cat-2",
		`{"saleStartDate":"2025-03-20","saleEndDate":"2025-03-25","salePercentage":"10"}`, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CategoryEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Pending", body.Category.SaleStatus)
	assert.True(t, body.Category.SalePercentage.Equal(decimal.NewFromInt(10)))
}

func TestUpdateSale_CategoriaInexistente_Retorna404(t *testing.T) {
	app := buildCategoryApp(pendingStore(), false)

	resp := putUpdateSale(t, app, "no-existe", `{"action":"cancelSale"}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateSale_PorcentajeInvalido_Retorna400(t *testing.T) {
	app := buildCategoryApp(pendingStore(), false)

	resp := putUpdateSale(t, app, "cat-1", `{"action":"updateSale","salePercentage":120}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_REQUEST", body.Code)
}

func TestUpdateSale_FechaMalformada_Retorna400(t *testing.T) {
	app := buildCategoryApp(pendingStore(), false)

	resp := putUpdateSale(t, app, "cat-1", `{"saleStartDate":"mañana"}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateSale_FalloDePersistencia_Retorna500(t *testing.T) {
	store := pendingStore()
	store.saveErr = errors.New("store caído")
	app := buildCategoryApp(store, false)

	resp := putUpdateSale(t, app, "cat-1", `{"action":"cancelSale"}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "PERSISTENCE", body.Code)
	assert.Contains(t, body.Message, "store caído")
}

func TestUpdateSale_ConflictoDeVersion_Retorna409(t *testing.T) {
	store := pendingStore()
	store.saveErr = domain.ErrConflict
	app := buildCategoryApp(store, false)

	resp := putUpdateSale(t, app, "cat-1", `{"action":"cancelSale"}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateSale_ConAuthRequerida(t *testing.T) {
	app := buildCategoryApp(pendingStore(), true)

	resp := putUpdateSale(t, app, "cat-1", `{"action":"cancelSale"}`, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = putUpdateSale(t, app, "cat-1", `{"action":"cancelSale"}`, bearer(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CRUD de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_DuplicadoRetorna409(t *testing.T) {
	app := buildCategoryApp(pendingStore(), false)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Bebidas","servings":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCategoryGet_Retorna200Y404(t *testing.T) {
	app := buildCategoryApp(pendingStore(), false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories/cat-1", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/categories/otra", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
