package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/annel0/worldobjects/internal/definition"
)

// Тест требует запущенного Redis: OBJDEF_TEST_REDIS_ADDR=localhost:6379
func TestRedisRecords(t *testing.T) {
	addr := os.Getenv("OBJDEF_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("OBJDEF_TEST_REDIS_ADDR не задан")
	}

	prefix := fmt.Sprintf("objdef-test-%d:", time.Now().UnixNano())
	store, err := NewRedisRecords(&RedisConfig{Addr: addr, KeyPrefix: prefix, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Не удалось подключиться к Redis: %v", err)
	}
	defer store.Close()

	if err := store.Put(1276, []byte(`{"id":1276,"name":"Tree"}`)); err != nil {
		t.Fatalf("Ошибка сохранения: %v", err)
	}
	defer store.client.Del(context.Background(), prefix+"1276")

	cache := definition.NewCache(store, nil)
	def, ok := cache.Get(1276)
	if !ok {
		t.Fatal("Определение не найдено")
	}
	if def.Name != "Tree" {
		t.Errorf("Неверное имя: %q", def.Name)
	}
}
