// Package storage содержит зеркала записей определений в BadgerDB, Redis и памяти.
// Все зеркала реализуют definition.Source и читаются тем же кешем, что и каталог файлов.
package storage

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/annel0/worldobjects/internal/definition"
	"github.com/annel0/worldobjects/internal/logging"
)

// DefaultKeyPrefix - префикс ключей записей по умолчанию
const DefaultKeyPrefix = "objdef:"

// ErrNotReady - хранилище закрыто
var ErrNotReady = errors.New("хранилище не готово")

// RecordStore - зеркало записей: источник для кеша и приёмник для импорта
type RecordStore interface {
	definition.Source
	// Put сохраняет JSON-запись под id
	Put(id int, data []byte) error
	Close() error
}

// ImportStats - итог импорта
type ImportStats struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import копирует все пригодные записи из src в dst.
// Запись с id, отличным от id в имени, или с id = -1 пропускается.
func Import(src definition.Source, dst RecordStore) (ImportStats, error) {
	log := logging.GetStorageLogger()
	var stats ImportStats

	handles, err := src.Scan()
	if err != nil {
		return stats, fmt.Errorf("просмотр источника: %w", err)
	}

	ids := make([]int, 0, len(handles))
	for id := range handles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		data, err := src.Read(handles[id])
		if err != nil {
			log.Warn("skip record %d: %v", id, err)
			stats.Skipped++
			continue
		}
		def, err := definition.Decode(data)
		if err != nil || def.ID != id {
			log.Warn("skip record %d: invalid definition", id)
			stats.Skipped++
			continue
		}
		if err := dst.Put(id, data); err != nil {
			return stats, fmt.Errorf("запись %d: %w", id, err)
		}
		stats.Imported++
	}

	log.Info("imported %d definition records, skipped %d", stats.Imported, stats.Skipped)
	return stats, nil
}

func recordKey(prefix string, id int) string {
	return prefix + strconv.Itoa(id)
}

// parseRecordKey извлекает id из ключа вида <prefix><id>
func parseRecordKey(prefix, key string) (int, bool) {
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
