package logger

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestTerminal(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	l := &Terminal{Out: &buf}

	l.Infof("Indexed %d node(s)", 3)
	l.Warnf("slow response")
	l.Errorf("extract selection: %v", "boom")

	assert.Equal(t, "Indexed 3 node(s)\n⚠ slow response\n✗ extract selection: boom\n", buf.String())
}

func TestSafe(t *testing.T) {
	assert.Equal(t, Nop{}, Safe(nil))

	l := NewTerminal()
	assert.Same(t, l, Safe(l))

	// Nop must not panic.
	Safe(nil).Errorf("ignored %d", 1)
}
