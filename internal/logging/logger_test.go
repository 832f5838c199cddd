package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace": TRACE,
		"DEBUG": DEBUG,
		"":      INFO,
		"warn":  WARN,
		"Error": ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, "уровень %q", in)
		assert.Equal(t, want, got, "уровень %q", in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err, "неизвестный уровень должен давать ошибку")
}

func TestWriterLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("rooms", &buf, WARN)

	l.Debug("скрыто %d", 1)
	l.Info("тоже скрыто")
	l.Warn("комната %d пропущена", 3)
	l.Error("ошибка")

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[WARN] [rooms] комната 3 пропущена")
	assert.Contains(t, out, "[ERROR] [rooms] ошибка")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("ничего не произойдёт")
		l.SetLevels(DEBUG, DEBUG)
		_ = l.Close()
	})
}

func TestManagerReturnsSameLogger(t *testing.T) {
	lm := GetLoggerManager()
	a := lm.MustGetLogger("test-component")
	b := lm.MustGetLogger("test-component")

	assert.Same(t, a, b, "повторный запрос должен вернуть тот же логгер")
	assert.Contains(t, lm.ListComponents(), "test-component")
}
