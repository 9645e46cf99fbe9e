package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"fleetrent/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Session user caching; keyed by user id, holds the resolved account
	// so the session middleware skips a DB lookup on every request.
	GetSessionUser(ctx context.Context, userID uuid.UUID) (*models.AppUser, error)
	SetSessionUser(ctx context.Context, user *models.AppUser, ttl time.Duration) error
	DeleteSessionUser(ctx context.Context, userID uuid.UUID) error

	// Settlement settings caching
	GetSettings(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error)
	SetSettings(ctx context.Context, settings *models.SystemSettings, ttl time.Duration) error
	DeleteSettings(ctx context.Context, tenantID uuid.UUID) error

	// Vehicle caching
	GetVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) (*models.Vehicle, error)
	SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error
	DeleteVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) error

	// Net balance report caching
	GetNetBalance(ctx context.Context, tenantID uuid.UUID, scope string) (map[string]interface{}, error)
	SetNetBalance(ctx context.Context, tenantID uuid.UUID, scope string, report map[string]interface{}, ttl time.Duration) error
	InvalidateNetBalance(ctx context.Context, tenantID uuid.UUID) error

	// Cache invalidation
	InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error

	// Generic string operations for refresh token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisClient builds the redis client shared by the cache service
// and the change-feed broker. Accepts both host:port and
// redis://host:port address forms.
func NewRedisClient(addr, password string, db int) *redis.Client {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return client
}

func NewRedisCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetSessionUser(ctx context.Context, userID uuid.UUID) (*models.AppUser, error) {
	key := fmt.Sprintf("fleetrent:session_user:%s", userID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var user models.AppUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *redisCacheService) SetSessionUser(ctx context.Context, user *models.AppUser, ttl time.Duration) error {
	key := fmt.Sprintf("fleetrent:session_user:%s", user.ID.String())
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteSessionUser(ctx context.Context, userID uuid.UUID) error {
	key := fmt.Sprintf("fleetrent:session_user:%s", userID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error) {
	key := fmt.Sprintf("fleetrent:settings:%s", tenantID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var settings models.SystemSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *redisCacheService) SetSettings(ctx context.Context, settings *models.SystemSettings, ttl time.Duration) error {
	key := fmt.Sprintf("fleetrent:settings:%s", settings.TenantID.String())
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteSettings(ctx context.Context, tenantID uuid.UUID) error {
	key := fmt.Sprintf("fleetrent:settings:%s", tenantID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) (*models.Vehicle, error) {
	key := fmt.Sprintf("fleetrent:vehicle:%s:%s", tenantID.String(), vehicleID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var vehicle models.Vehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *redisCacheService) SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error {
	key := fmt.Sprintf("fleetrent:vehicle:%s:%s", vehicle.TenantID.String(), vehicle.ID.String())
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	key := fmt.Sprintf("fleetrent:vehicle:%s:%s", tenantID.String(), vehicleID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetNetBalance(ctx context.Context, tenantID uuid.UUID, scope string) (map[string]interface{}, error) {
	key := fmt.Sprintf("fleetrent:netbalance:%s:%s", tenantID.String(), scope)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var report map[string]interface{}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *redisCacheService) SetNetBalance(ctx context.Context, tenantID uuid.UUID, scope string, report map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("fleetrent:netbalance:%s:%s", tenantID.String(), scope)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateNetBalance(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("fleetrent:netbalance:%s:*", tenantID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("fleetrent:*:%s*", tenantID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
