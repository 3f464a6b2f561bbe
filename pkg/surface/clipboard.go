package surface

import (
	"fmt"
	"os"
	"sync"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// FileClipboard writes copied text to a file, replacing its content.
type FileClipboard struct {
	Path string
}

// WriteText implements Clipboard.
func (c FileClipboard) WriteText(text string) error {
	if c.Path == "" {
		return fmt.Errorf("clipboard file path is empty")
	}
	return os.WriteFile(c.Path, []byte(text), 0644)
}

// MemoryClipboard keeps the last copied text in memory.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// WriteText implements Clipboard.
func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}

// Text returns the last copied text.
func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
