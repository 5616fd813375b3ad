// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// DefaultDismissAfter is how long a queued notification stays visible.
const DefaultDismissAfter = 4 * time.Second

type entry struct {
	n     Notification
	until time.Time
}

// Center is a queued, auto-dismissing notification stack for interactive
// flows (the chat loop, the login wait). Messages pile up newest-last and
// disappear after a fixed duration; there is no deduplication. The stack is
// rendered into a pterm area so it repaints in place above the prompt.
type Center struct {
	mu      sync.Mutex
	entries []entry
	ttl     time.Duration
	area    *pterm.AreaPrinter
	stop    chan struct{}
	done    sync.WaitGroup
	clock   func() time.Time
}

// NewCenter starts a notification center. Call Close when the interactive
// flow ends to clear the area and release the render goroutine.
func NewCenter(ttl time.Duration) (*Center, error) {
	if ttl <= 0 {
		ttl = DefaultDismissAfter
	}
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return nil, err
	}
	c := &Center{
		ttl:   ttl,
		area:  area,
		stop:  make(chan struct{}),
		clock: time.Now,
	}
	c.done.Add(1)
	go c.renderLoop()
	return c, nil
}

func (c *Center) renderLoop() {
	defer c.done.Done()
	t := time.NewTicker(120 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.area.Update(c.render())
		case <-c.stop:
			return
		}
	}
}

// render drops expired entries and formats the remaining stack.
func (c *Center) render() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if now.Before(e.until) {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	if len(c.entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range c.entries {
		fmt.Fprintln(&b, styleFor(e.n.Kind).Sprint(prefixFor(e.n.Kind)+" "+e.n.Message))
	}
	return b.String()
}

func styleFor(k Kind) *pterm.Style {
	switch k {
	case KindSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case KindError:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgCyan)
	}
}

func prefixFor(k Kind) string {
	switch k {
	case KindSuccess:
		return "✔"
	case KindError:
		return "✖"
	default:
		return "ℹ"
	}
}

func (c *Center) push(n Notification) {
	c.mu.Lock()
	c.entries = append(c.entries, entry{n: n, until: c.clock().Add(c.ttl)})
	c.mu.Unlock()
}

func (c *Center) Success(msg string) { c.push(Notification{Message: msg, Kind: KindSuccess}) }
func (c *Center) Error(msg string)   { c.push(Notification{Message: msg, Kind: KindError}) }
func (c *Center) Info(msg string)    { c.push(Notification{Message: msg, Kind: KindInfo}) }

// Pending reports how many notifications are currently visible.
func (c *Center) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	count := 0
	for _, e := range c.entries {
		if now.Before(e.until) {
			count++
		}
	}
	return count
}

// Close stops rendering, clears the area and restores the cursor.
func (c *Center) Close() {
	close(c.stop)
	c.done.Wait()
	_ = c.area.Stop()
	cursor.Show()
}
