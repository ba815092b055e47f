// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// CacheDecision stores an authorization decision under its precomputed key.
func CacheDecision(ctx context.Context, key string, response *model.AuthorizationResponse, ttl time.Duration) error {
	decisionJSON, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	err = RedisClient.Set(ctx, key, decisionJSON, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to cache decision: %w", err)
	}

	logger.Debug("Decision cached successfully", zap.String("key", key))
	return nil
}

// GetCachedDecision returns the cached decision for the key, or nil on a miss.
func GetCachedDecision(ctx context.Context, key string) (*model.AuthorizationResponse, error) {
	decisionJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Decision not found in cache", zap.String("key", key))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get decision from cache: %w", err)
	}

	var response model.AuthorizationResponse
	err = json.Unmarshal([]byte(decisionJSON), &response)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	logger.Debug("Decision retrieved from cache", zap.String("key", key))
	return &response, nil
}

// InvalidateDecisionCache deletes every cached decision. Called when policies
// change, since any cached answer may depend on the mutated policy.
func InvalidateDecisionCache(ctx context.Context) (int, error) {
	pattern := model.DecisionCachePrefix + "*"
	iter := RedisClient.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan decision cache keys: %w", err)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := RedisClient.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to delete decision cache keys: %w", err)
	}

	logger.Debug("Decision cache invalidated", zap.Int64("deletedKeys", deleted))
	return int(deleted), nil
}
