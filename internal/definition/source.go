package definition

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/annel0/worldobjects/internal/logging"
	"github.com/klauspost/compress/zstd"
)

// Source - хранилище записей определений
type Source interface {
	// Scan перечисляет все записи: id -> дескриптор записи
	Scan() (map[int]string, error)
	// Read возвращает содержимое записи в виде JSON
	Read(handle string) ([]byte, error)
}

// Расширения файлов записей
const (
	jsonExt = ".json"
	zstdExt = ".json.zst"
)

// DirSource читает записи из каталога файлов <id>.json или <id>.json.zst
type DirSource struct {
	dir string
	log *logging.Logger
}

// NewDirSource создаёт источник поверх каталога
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir, log: logging.GetDefinitionLogger()}
}

// Dir возвращает каталог источника
func (s *DirSource) Dir() string {
	return s.dir
}

// Scan просматривает каталог один раз. Файлы с нечисловым именем пропускаются.
// Если для id есть и .json, и .json.zst, берётся .json.
func (s *DirSource) Scan() (map[int]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan definitions dir %s: %w", s.dir, err)
	}

	handles := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		id, ok := ParseRecordName(name)
		if !ok {
			s.log.Trace("skip %s: not a definition record", name)
			continue
		}
		path := filepath.Join(s.dir, name)
		if prev, exists := handles[id]; exists && !strings.HasSuffix(prev, zstdExt) {
			continue
		}
		handles[id] = path
	}
	return handles, nil
}

// Read читает файл записи, распаковывая .json.zst
func (s *DirSource) Read(handle string) ([]byte, error) {
	data, err := os.ReadFile(handle)
	if err != nil {
		return nil, fmt.Errorf("read definition %s: %w", handle, err)
	}
	if !strings.HasSuffix(handle, zstdExt) {
		return data, nil
	}
	return decompress(data)
}

// ParseRecordName извлекает id из имени файла записи
func ParseRecordName(name string) (int, bool) {
	var stem string
	switch {
	case strings.HasSuffix(name, zstdExt):
		stem = strings.TrimSuffix(name, zstdExt)
	case strings.HasSuffix(name, jsonExt):
		stem = strings.TrimSuffix(name, jsonExt)
	default:
		return 0, false
	}
	id, err := strconv.Atoi(stem)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

// Compress сжимает JSON-запись в формат .json.zst
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
