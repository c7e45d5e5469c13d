package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, LevelFor(0))
	assert.Equal(t, logrus.InfoLevel, LevelFor(1))
	assert.Equal(t, logrus.DebugLevel, LevelFor(2))
	assert.Equal(t, logrus.DebugLevel, LevelFor(5))
}

func TestNewRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := New(0, &buf)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))

	log := New(1, &bytes.Buffer{})
	assert.Same(t, log, OrDiscard(log))
}
