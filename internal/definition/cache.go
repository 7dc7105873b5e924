package definition

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/annel0/worldobjects/internal/logging"
)

// Cache лениво загружает и запоминает определения объектов.
//
// Первый промах запускает единственный полный просмотр источника (id -> дескриптор).
// Успешно разобранное определение больше никогда не заменяется и не вытесняется.
// Непригодная или нечитаемая запись не кешируется и перечитывается при следующем запросе.
// Id без записи остаётся отсутствующим до конца жизни процесса.
type Cache struct {
	source  Source
	metrics *Metrics
	log     *logging.Logger

	scanOnce sync.Once
	mu       sync.RWMutex
	handles  map[int]string
	defs     map[int]*Definition
}

// NewCache создаёт кеш поверх источника. metrics может быть nil.
func NewCache(source Source, metrics *Metrics) *Cache {
	return &Cache{
		source:  source,
		metrics: metrics,
		log:     logging.GetDefinitionLogger(),
		defs:    make(map[int]*Definition),
	}
}

// Get возвращает определение по id. Ошибки источника не возвращаются, а логируются.
func (c *Cache) Get(id int) (*Definition, bool) {
	def, err := c.Load(id)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			c.log.Debug("definition %d unavailable: %v", id, err)
		}
		return nil, false
	}
	return def, true
}

// Load работает как Get, но возвращает причину отсутствия определения
func (c *Cache) Load(id int) (*Definition, error) {
	if id == InvalidID {
		return nil, ErrNoRecord
	}

	c.mu.RLock()
	def, cached := c.defs[id]
	c.mu.RUnlock()
	if cached {
		c.metrics.hit()
		return def, nil
	}

	c.scanOnce.Do(c.scan)

	c.mu.RLock()
	handle, known := c.handles[id]
	c.mu.RUnlock()
	if !known {
		c.metrics.miss("no_record")
		return nil, ErrNoRecord
	}

	loaded, err := c.read(handle)
	if err != nil {
		c.metrics.miss("load_failed")
		c.metrics.loadFailed()
		return nil, err
	}

	c.mu.Lock()
	// запись кладётся под собственным id и не заменяет уже загруженную
	if _, exists := c.defs[loaded.ID]; !exists {
		c.defs[loaded.ID] = loaded
	}
	def, cached = c.defs[id]
	size := len(c.defs)
	c.mu.Unlock()

	c.metrics.setCached(size)
	if !cached {
		c.metrics.miss("id_mismatch")
		return nil, fmt.Errorf("record %s holds id %d: %w", handle, loaded.ID, ErrInvalidRecord)
	}
	c.metrics.miss("loaded")
	return def, nil
}

func (c *Cache) read(handle string) (*Definition, error) {
	data, err := c.source.Read(handle)
	if err != nil {
		return nil, err
	}
	def, err := Decode(data)
	if err != nil {
		c.log.Trace("bad record %s:\n%s", handle, logging.HexDump(data))
		return nil, err
	}
	return def, nil
}

// scan выполняется ровно один раз за жизнь кеша
func (c *Cache) scan() {
	handles, err := c.source.Scan()
	if err != nil {
		c.log.Debug("definition scan failed: %v", err)
		handles = map[int]string{}
	}

	c.mu.Lock()
	c.handles = handles
	c.mu.Unlock()

	c.metrics.scanned(len(handles))
	c.log.Debug("definition scan found %d records", len(handles))
}

// Known возвращает отсортированный список id, для которых есть записи.
// Вызывает просмотр источника, если он ещё не выполнялся.
func (c *Cache) Known() []int {
	c.scanOnce.Do(c.scan)

	c.mu.RLock()
	ids := make([]int, 0, len(c.handles))
	for id := range c.handles {
		ids = append(ids, id)
	}
	c.mu.RUnlock()

	sort.Ints(ids)
	return ids
}

// Len возвращает количество загруженных определений
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
