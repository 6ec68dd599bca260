package editor

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard abstracts copy/paste for the editor. Implementations must be
// cheap to call from the update loop; errors are reported to the caller but
// never crash the component.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// SystemClipboard uses the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteText(text string) error { return clipboard.WriteAll(text) }

// MemoryClipboard is an in-process clipboard for tests and headless hosts.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}
