package storage

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

// BadgerRecords хранит записи определений в BadgerDB под ключами objdef:<id>
type BadgerRecords struct {
	db      *badger.DB
	dbPath  string
	prefix  string
	mutex   sync.RWMutex
	isReady bool
}

// NewBadgerRecords открывает (или создаёт) базу в каталоге dbPath
func NewBadgerRecords(dbPath string) (*BadgerRecords, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &BadgerRecords{
		db:      db,
		dbPath:  dbPath,
		prefix:  DefaultKeyPrefix,
		isReady: true,
	}, nil
}

// Path возвращает каталог базы
func (br *BadgerRecords) Path() string {
	return br.dbPath
}

// Close закрывает базу
func (br *BadgerRecords) Close() error {
	br.mutex.Lock()
	defer br.mutex.Unlock()

	if !br.isReady {
		return nil
	}

	br.isReady = false
	return br.db.Close()
}

// Scan перебирает ключи с префиксом записей. Дескриптор - сам ключ.
func (br *BadgerRecords) Scan() (map[int]string, error) {
	br.mutex.RLock()
	defer br.mutex.RUnlock()

	if !br.isReady {
		return nil, ErrNotReady
	}

	handles := make(map[int]string)
	err := br.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(br.prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().KeyCopy(nil))
			if id, ok := parseRecordKey(br.prefix, key); ok {
				handles[id] = key
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка перебора ключей BadgerDB: %w", err)
	}
	return handles, nil
}

// Read читает запись по ключу
func (br *BadgerRecords) Read(handle string) ([]byte, error) {
	br.mutex.RLock()
	defer br.mutex.RUnlock()

	if !br.isReady {
		return nil, ErrNotReady
	}

	var data []byte
	err := br.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(handle))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s из BadgerDB: %w", handle, err)
	}
	return data, nil
}

// Put сохраняет запись
func (br *BadgerRecords) Put(id int, data []byte) error {
	br.mutex.RLock()
	defer br.mutex.RUnlock()

	if !br.isReady {
		return ErrNotReady
	}

	err := br.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recordKey(br.prefix, id)), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}
