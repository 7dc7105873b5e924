package logging

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации. Неизвестные значения дают INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TRACE
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger представляет логгер компонента.
// В консоль пишутся сообщения от minConsoleLevel, в файл (если открыт) от minFileLevel.
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
	mu              sync.Mutex
}

var (
	logDirMu sync.RWMutex
	logDir   string
)

// defaultLogger используется пакетными функциями Info/Debug/...
var defaultLogger = &Logger{
	consoleLogger:   log.New(os.Stderr, "", log.LstdFlags),
	minConsoleLevel: INFO,
	minFileLevel:    DEBUG,
}

// SetLogDir задаёт директорию для файлов логов. Пустая строка отключает запись в файлы.
func SetLogDir(dir string) {
	logDirMu.Lock()
	defer logDirMu.Unlock()
	logDir = dir
}

func currentLogDir() string {
	logDirMu.RLock()
	defer logDirMu.RUnlock()
	return logDir
}

// NewLogger создаёт логгер компонента.
// Если задана директория логов, дополнительно открывает файл <component>_<timestamp>.log.
func NewLogger(component string) (*Logger, error) {
	l := &Logger{
		component:       component,
		consoleLogger:   log.New(os.Stderr, "", log.LstdFlags),
		minConsoleLevel: INFO,
		minFileLevel:    DEBUG,
	}

	dir := currentLogDir()
	if dir == "" {
		return l, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	l.file = file
	l.fileLogger = log.New(file, "", log.LstdFlags)
	return l, nil
}

// NewWriterLogger создаёт логгер поверх произвольного writer (используется в тестах)
func NewWriterLogger(component string, w io.Writer, level LogLevel) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", 0),
		minConsoleLevel: level,
		minFileLevel:    ERROR + 1,
	}
}

// Close закрывает файл логгера
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

// SetLevels меняет пороги вывода
func (l *Logger) SetLevels(consoleLevel, fileLevel LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minConsoleLevel = consoleLevel
	l.minFileLevel = fileLevel
}

func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logMessage(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logMessage(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(ERROR, format, args...) }

// logMessage внутренняя функция для логирования
func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	if l == nil {
		return
	}

	prefix := "[" + level.String() + "]"
	if l.component != "" {
		prefix += " [" + l.component + "]"
	}
	message := prefix + " " + fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}
	if level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// InitDefaultLogger настраивает глобальный логгер для процесса
func InitDefaultLogger(component string) error {
	l, err := NewLogger(component)
	if err != nil {
		return err
	}
	defaultLogger = l
	return nil
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	if defaultLogger != nil {
		_ = defaultLogger.Close()
	}
}

// SetDefaultLevel меняет порог консольного вывода глобального логгера
func SetDefaultLevel(level LogLevel) {
	defaultLogger.SetLevels(level, minLevel(level, DEBUG))
}

func Trace(format string, args ...interface{}) { defaultLogger.logMessage(TRACE, format, args...) }
func Debug(format string, args ...interface{}) { defaultLogger.logMessage(DEBUG, format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.logMessage(INFO, format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.logMessage(WARN, format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.logMessage(ERROR, format, args...) }

// HexDump создает hex дамп данных
func HexDump(data []byte) string {
	if len(data) == 0 {
		return "No data"
	}

	// Ограничиваем размер дампа до 256 байт
	size := len(data)
	if size > 256 {
		size = 256
	}

	return hex.Dump(data[:size])
}

func minLevel(a, b LogLevel) LogLevel {
	if a < b {
		return a
	}
	return b
}
