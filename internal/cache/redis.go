package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rideaway/vehicle-rental/config"
	"github.com/rideaway/vehicle-rental/internal/domain"
)

type RedisCache struct {
	client      *redis.Client
	vehiclesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, vehiclesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		vehiclesTTL: vehiclesTTL,
	}
}

func (c *RedisCache) GetVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	data, err := c.client.Get(ctx, vehiclesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicles []domain.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *RedisCache) SetVehicles(ctx context.Context, vehicles []domain.Vehicle) error {
	payload, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehiclesKey(), payload, c.vehiclesTTL).Err()
}

// InvalidateVehicles drops the cached vehicle list. Called on every vehicle
// mutation and booking transition, since both change availability_status.
func (c *RedisCache) InvalidateVehicles(ctx context.Context) error {
	return c.client.Del(ctx, vehiclesKey()).Err()
}

func vehiclesKey() string {
	return "cache:vehicles"
}
