package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("definition", &buf, INFO)

	l.Debug("скрытое сообщение %d", 1)
	l.Info("загружено %d записей", 42)

	out := buf.String()
	assert.NotContains(t, out, "скрытое сообщение")
	assert.Contains(t, out, "[INFO] [definition] загружено 42 записей")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TRACE, ParseLevel("trace"))
	assert.Equal(t, DEBUG, ParseLevel(" DEBUG "))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("что-то непонятное"))
}

func TestLoggerManager_ReusesComponentLogger(t *testing.T) {
	lm := GetLoggerManager()
	a := lm.MustGetLogger("test-component")
	b := lm.MustGetLogger("test-component")

	assert.Same(t, a, b)
	assert.Contains(t, lm.ListComponents(), "test-component")
	assert.NoError(t, lm.SetLogLevel("test-component", WARN, ERROR))
	assert.Error(t, lm.SetLogLevel("unknown-component", WARN, ERROR))
}

func TestHexDump(t *testing.T) {
	assert.Equal(t, "No data", HexDump(nil))
	assert.Contains(t, HexDump([]byte("{\"id\":1}")), "7b 22 69 64")
}

func TestLoggerManager_SetAllLevelsAppliesToLateLoggers(t *testing.T) {
	lm := &LoggerManager{loggers: make(map[string]*Logger)}
	early := lm.MustGetLogger("early")

	lm.SetAllLevels(WARN, ERROR)
	late := lm.MustGetLogger("late")

	assert.Equal(t, WARN, early.minConsoleLevel)
	assert.Equal(t, WARN, late.minConsoleLevel)
	assert.Equal(t, ERROR, late.minFileLevel)
}
