package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"

	"github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/internal/usecase"
	"github.com/trendbook/search-backend/pkg/clients"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

// ResultCacheRepo хранит готовые ответы поиска в Redis с ограниченным TTL.
type ResultCacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewResultCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *ResultCacheRepo {
	return &ResultCacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSearchRes возвращает закэшированный ответ или (nil, nil) при промахе.
func (r *ResultCacheRepo) GetSearchRes(ctx context.Context, key string) (*usecase.SearchRes, error) {
	data, err := r.client.Client.Get(ctx, r.resultKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var res usecase.SearchRes
	if err = json.Unmarshal(data, &res); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err = r.client.Client.Del(context.Background(), r.resultKey(key)).Err(); err != nil {
			r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return &res, nil
}

// SetSearchRes кэширует ответ поиска. Ошибки записи логируются и не прерывают запрос.
func (r *ResultCacheRepo) SetSearchRes(ctx context.Context, key string, res *usecase.SearchRes) error {
	data, err := json.Marshal(res)
	if err != nil {
		r.logger.Warnf("Failed to marshal search result for caching: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err = r.client.Client.Set(ctx, r.resultKey(key), data, r.cfg.ResultTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// resultKey возвращает Redis-ключ для ответа поиска
func (r *ResultCacheRepo) resultKey(key string) string {
	return fmt.Sprintf("search:result:%s", key)
}
