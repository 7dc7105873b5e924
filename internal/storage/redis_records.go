package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/worldobjects/internal/logging"
	"github.com/go-redis/redis/v8"
)

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	Timeout   time.Duration // Ограничение на одну операцию
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: DefaultKeyPrefix,
		Timeout:   2 * time.Second,
	}
}

// RedisRecords хранит записи определений в Redis строками <prefix><id>
type RedisRecords struct {
	client    *redis.Client
	keyPrefix string
	timeout   time.Duration
}

// NewRedisRecords подключается к Redis и проверяет соединение
func NewRedisRecords(config *RedisConfig) (*RedisRecords, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	repo := &RedisRecords{
		client:    client,
		keyPrefix: config.KeyPrefix,
		timeout:   config.Timeout,
	}

	ctx, cancel := repo.ctx()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetStorageLogger().Info("connected to Redis at %s", config.Addr)
	return repo, nil
}

func (rr *RedisRecords) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rr.timeout)
}

// Scan перебирает ключи через SCAN. Дескриптор - сам ключ.
func (rr *RedisRecords) Scan() (map[int]string, error) {
	ctx, cancel := rr.ctx()
	defer cancel()

	handles := make(map[int]string)
	iter := rr.client.Scan(ctx, 0, rr.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if id, ok := parseRecordKey(rr.keyPrefix, key); ok {
			handles[id] = key
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	return handles, nil
}

func (rr *RedisRecords) Read(handle string) ([]byte, error) {
	ctx, cancel := rr.ctx()
	defer cancel()

	data, err := rr.client.Get(ctx, handle).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("record %s not found", handle)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return data, nil
}

func (rr *RedisRecords) Put(id int, data []byte) error {
	ctx, cancel := rr.ctx()
	defer cancel()

	if err := rr.client.Set(ctx, recordKey(rr.keyPrefix, id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (rr *RedisRecords) Close() error {
	return rr.client.Close()
}
