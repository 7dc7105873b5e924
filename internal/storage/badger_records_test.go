package storage

import (
	"testing"

	"github.com/annel0/worldobjects/internal/definition"
)

func setupBadger(t *testing.T) *BadgerRecords {
	t.Helper()
	store, err := NewBadgerRecords(t.TempDir())
	if err != nil {
		t.Fatalf("Не удалось создать хранилище: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerRecords_PutScanRead(t *testing.T) {
	store := setupBadger(t)

	records := map[int]string{
		1276: `{"id":1276,"name":"Tree"}`,
		1530: `{"id":1530,"name":"Door"}`,
	}
	for id, body := range records {
		if err := store.Put(id, []byte(body)); err != nil {
			t.Fatalf("Ошибка сохранения %d: %v", id, err)
		}
	}

	handles, err := store.Scan()
	if err != nil {
		t.Fatalf("Ошибка перебора: %v", err)
	}
	if len(handles) != len(records) {
		t.Fatalf("Ожидалось %d записей, получено %d", len(records), len(handles))
	}
	for id, body := range records {
		data, err := store.Read(handles[id])
		if err != nil {
			t.Fatalf("Ошибка чтения %d: %v", id, err)
		}
		if string(data) != body {
			t.Errorf("Запись %d: ожидалось %s, получено %s", id, body, data)
		}
	}

	if _, err := store.Read("objdef:999"); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего ключа")
	}
}

func TestBadgerRecords_ImportAndCache(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"2000.json": `{"id":2000,"name":"Bank booth","actions":["Bank"]}`,
	})
	store := setupBadger(t)

	if _, err := Import(definition.NewDirSource(dir), store); err != nil {
		t.Fatalf("Ошибка импорта: %v", err)
	}

	cache := definition.NewCache(store, nil)
	def, ok := cache.Get(2000)
	if !ok {
		t.Fatal("Определение не найдено после импорта")
	}
	if !def.HasAction("bank") {
		t.Errorf("Нет действия Bank: %+v", def.Actions)
	}
}

func TestBadgerRecords_Closed(t *testing.T) {
	store, err := NewBadgerRecords(t.TempDir())
	if err != nil {
		t.Fatalf("Не удалось создать хранилище: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Ошибка закрытия: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Повторное закрытие вернуло ошибку: %v", err)
	}

	if _, err := store.Scan(); err != ErrNotReady {
		t.Errorf("Ожидалась ErrNotReady, получено %v", err)
	}
	if err := store.Put(1, []byte(`{}`)); err != ErrNotReady {
		t.Errorf("Ожидалась ErrNotReady, получено %v", err)
	}
}
