package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(true)

	Debug("counting %s", "wikipedia")

	assert.Equal(t, "[DEBUG] counting wikipedia\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(false)

	Debug("should not appear")

	assert.Empty(t, buf.String())
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(true)

	Info("merged %d sources", 3)
	Warn("skipping malformed row")

	assert.Contains(t, buf.String(), "[INFO] merged 3 sources\n")
	assert.Contains(t, buf.String(), "[WARN] skipping malformed row\n")
}

func TestSection(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(true)

	Section("Merging frequency tables")

	assert.Contains(t, buf.String(), "=== Merging frequency tables ===")
}
