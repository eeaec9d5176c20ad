package render

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure Console implements the interface.
var _ driven.Renderer = (*Console)(nil)

// Console writes one line per delivered value.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now}
}

// Display writes "hh:mm:ss.mmm slot: text".
func (c *Console) Display(slot, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%s %s: %s\n", c.now().Format("15:04:05.000"), slot, text)
}

// NotifyError writes the notification on its own line.
func (c *Console) NotifyError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%s ! %s\n", c.now().Format("15:04:05.000"), message)
}
