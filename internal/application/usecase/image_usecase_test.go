package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

type memImages struct {
	latest *entity.ImageOrder
	reads  int
}

func (m *memImages) Latest(context.Context) (*entity.ImageOrder, error) {
	m.reads++
	return m.latest, nil
}

func (m *memImages) Save(_ context.Context, o *entity.ImageOrder) error {
	m.latest = o
	return nil
}

type memCache struct {
	urls  []string
	ok    bool
	err   error
	wrote int
}

func (c *memCache) Get(context.Context) ([]string, bool, error) { return c.urls, c.ok, c.err }

func (c *memCache) Set(_ context.Context, urls []string) error {
	c.urls, c.ok = urls, true
	c.wrote++
	return nil
}

func TestImageList_SinDocumentoDevuelveVacio(t *testing.T) {
	uc := usecase.NewImageUseCase(&memImages{}, nil, fixedClock{now: testNow}, time.Second, nil)

	urls, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, urls)
}

func TestImageList_LecturaAtravesDelCache(t *testing.T) {
	repo := &memImages{latest: &entity.ImageOrder{URLs: []string{"a.jpg", "b.jpg"}}}
	cache := &memCache{}
	uc := usecase.NewImageUseCase(repo, cache, fixedClock{now: testNow}, time.Second, nil)

	first, err := uc.List(context.Background())
	require.NoError(t, err)
	second, err := uc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.reads, "la segunda lectura sale del caché")
}

func TestImageList_CacheCaidoLeeDelStore(t *testing.T) {
	repo := &memImages{latest: &entity.ImageOrder{URLs: []string{"a.jpg"}}}
	cache := &memCache{err: errors.New("redis caído")}
	uc := usecase.NewImageUseCase(repo, cache, fixedClock{now: testNow}, time.Second, nil)

	urls, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, urls)
}

func TestImageUpdateOrder(t *testing.T) {
	repo := &memImages{}
	cache := &memCache{}
	uc := usecase.NewImageUseCase(repo, cache, fixedClock{now: testNow}, time.Second, nil)

	urls, err := uc.UpdateOrder(context.Background(), []string{"b.jpg", "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg", "a.jpg"}, urls)
	require.NotNil(t, repo.latest)
	assert.True(t, repo.latest.UpdatedAt.Equal(testNow))
	assert.Equal(t, []string{"b.jpg", "a.jpg"}, cache.urls)

	_, err = uc.UpdateOrder(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
