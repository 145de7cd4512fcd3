package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Catalogo-api/internal/application/ports"
)

const imageOrderKey = "catalog:image_order"

var _ ports.ImageOrderCache = (*ImageOrderCache)(nil)

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ImageOrderCache guarda la lista de URLs serializada en JSON con un TTL.
type ImageOrderCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewImageOrderCache construye el caché. ttl 0 significa sin expiración.
func NewImageOrderCache(client redis.Cmdable, ttl time.Duration) *ImageOrderCache {
	return &ImageOrderCache{client: client, ttl: ttl}
}

// Get devuelve ok=false si la clave no existe.
func (c *ImageOrderCache) Get(ctx context.Context) ([]string, bool, error) {
	val, err := c.client.Get(ctx, imageOrderKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get image order from redis: %w", err)
	}
	var urls []string
	if err := json.Unmarshal(val, &urls); err != nil {
		return nil, false, fmt.Errorf("unmarshal image order: %w", err)
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, true, nil
}

// Set reemplaza el valor cacheado.
func (c *ImageOrderCache) Set(ctx context.Context, urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	payload, err := json.Marshal(urls)
	if err != nil {
		return fmt.Errorf("marshal image order: %w", err)
	}
	if err := c.client.Set(ctx, imageOrderKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set image order in redis: %w", err)
	}
	return nil
}
