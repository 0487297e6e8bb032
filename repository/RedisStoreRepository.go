package repository

import (
	"context"
	"encoding/json"
	"errors"

	"shopHub/models"

	"github.com/redis/go-redis/v9"

	logx "shopHub/pkg/logger"
)

type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisStore(redis_conn *redis.Client, _ctx context.Context) (Store, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (s *RedisStore) Read(key string, dest any) (found bool, err error) {
	val, e := s.rdb.Get(s.ctx, key).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		logx.Error().Msgf("Read: %v", e)
		err = models.ErrServerError
		return
	}
	if e := json.Unmarshal([]byte(val), dest); e != nil {
		logx.Warn().Msgf("Read: corrupt value for %q: %v", key, e)
		return
	}
	found = true
	return
}

func (s *RedisStore) Write(key string, value any) (err error) {
	jsonData, err := json.Marshal(value)
	if err != nil {
		logx.Error().Msgf("Write: marshal: %v", err)
		err = models.ErrServerError
		return
	}
	err = s.rdb.Set(s.ctx, key, jsonData, 0).Err()
	if err != nil {
		logx.Error().Msgf("Write: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *RedisStore) Delete(key string) (err error) {
	err = s.rdb.Del(s.ctx, key).Err()
	if err != nil {
		logx.Error().Msgf("Delete: %v", err)
		err = models.ErrServerError
	}
	return
}
