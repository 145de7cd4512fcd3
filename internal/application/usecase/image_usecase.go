package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ImageUseCase mantiene el orden de las imágenes del carrusel.
// El caché es opcional; sus fallos se registran y no interrumpen la operación.
type ImageUseCase struct {
	repo    repository.ImageOrderRepository
	cache   ports.ImageOrderCache
	clock   ports.Clock
	timeout time.Duration
	log     *logger.Logger
}

// NewImageUseCase construye el caso de uso. cache puede ser nil.
func NewImageUseCase(repo repository.ImageOrderRepository, cache ports.ImageOrderCache, clock ports.Clock, timeout time.Duration, log *logger.Logger) *ImageUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImageUseCase{repo: repo, cache: cache, clock: clock, timeout: timeout, log: log.Component("images")}
}

// List devuelve las URLs en el orden vigente; lista vacía si nunca se guardó un orden.
func (uc *ImageUseCase) List(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if uc.cache != nil {
		urls, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("lectura de caché de imágenes")
		} else if ok {
			return urls, nil
		}
	}

	order, err := uc.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	urls := []string{}
	if order != nil && order.URLs != nil {
		urls = order.URLs
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, urls); err != nil {
			uc.log.Warn().Err(err).Msg("escritura de caché de imágenes")
		}
	}
	return urls, nil
}

// UpdateOrder guarda un nuevo orden y refresca el caché.
func (uc *ImageUseCase) UpdateOrder(ctx context.Context, urls []string) ([]string, error) {
	if urls == nil {
		return nil, fmt.Errorf("%w: urls debe ser un arreglo", domain.ErrInvalidRequest)
	}
	for i, u := range urls {
		if u == "" {
			return nil, fmt.Errorf("%w: urls[%d] vacía", domain.ErrInvalidRequest, i)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	order := &entity.ImageOrder{
		ID:        uuid.New().String(),
		URLs:      urls,
		UpdatedAt: uc.clock.Now(),
	}
	if err := uc.repo.Save(ctx, order); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, urls); err != nil {
			uc.log.Warn().Err(err).Msg("escritura de caché de imágenes")
		}
	}
	return urls, nil
}
