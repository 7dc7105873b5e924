package storage

import (
	"fmt"
	"strconv"
	"sync"
)

// MemoryRecords хранит записи в памяти.
// Используется в тестах и для локальной разработки без базы.
type MemoryRecords struct {
	mu   sync.RWMutex
	data map[int][]byte
}

// NewMemoryRecords создаёт пустое хранилище в памяти
func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{data: make(map[int][]byte)}
}

// Scan возвращает дескрипторы вида "<id>"
func (m *MemoryRecords) Scan() (map[int]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	handles := make(map[int]string, len(m.data))
	for id := range m.data {
		handles[id] = strconv.Itoa(id)
	}
	return handles, nil
}

func (m *MemoryRecords) Read(handle string) ([]byte, error) {
	id, err := strconv.Atoi(handle)
	if err != nil {
		return nil, fmt.Errorf("недействительный дескриптор %q: %w", handle, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("запись %d не найдена", id)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryRecords) Put(id int, data []byte) error {
	if id < 0 {
		return fmt.Errorf("недействительный id: %d", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = append([]byte(nil), data...)
	return nil
}

// Len возвращает количество записей
func (m *MemoryRecords) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryRecords) Close() error { return nil }
