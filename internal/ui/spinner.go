// Package ui contains small terminal feedback helpers for long-running
// commands. Everything degrades to plain line output when stderr is not
// a terminal or NO_COLOR is set.
package ui

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on stderr while an operation runs.
type Spinner struct {
	mu      sync.Mutex
	message string
	active  bool
	done    chan struct{}
}

// NewSpinner creates a spinner with an initial message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan struct{}),
	}
}

// Start begins the animation. On non-terminal output the message is
// printed once instead.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	if !interactive() {
		fmt.Fprintf(os.Stderr, "%s...\n", s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.active {
					fmt.Fprintf(os.Stderr, "\r%s %s", spinnerFrames[i], s.message)
					i = (i + 1) % len(spinnerFrames)
				}
				s.mu.Unlock()
			}
		}
	}()
}

// Update changes the message while the spinner runs.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop ends the animation and prints an optional final message.
func (s *Spinner) Stop(finalMessage string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	close(s.done)
	time.Sleep(100 * time.Millisecond)

	if finalMessage != "" {
		fmt.Fprintf(os.Stderr, "\r\033[K%s\n", finalMessage)
	}
}

// Counter reports progress through a batch of known size, one item at a
// time. Used by the download loop, where per-file transfers are slow
// enough that a spinner alone tells the user nothing.
type Counter struct {
	mu    sync.Mutex
	label string
	total int
	n     int
}

// NewCounter creates a progress counter for a batch of the given size.
func NewCounter(label string, total int) *Counter {
	return &Counter{label: label, total: total}
}

// Step advances the counter and redraws the progress line with the
// current item name.
func (c *Counter) Step(item string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	if interactive() {
		fmt.Fprintf(os.Stderr, "\r\033[K%s [%d/%d] %s", c.label, c.n, c.total, item)
	} else {
		fmt.Fprintf(os.Stderr, "%s [%d/%d] %s\n", c.label, c.n, c.total, item)
	}
}

// Done finishes the progress line.
func (c *Counter) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if interactive() {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
}

// interactive reports whether stderr is a terminal and coloring is not
// disabled.
func interactive() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fileInfo, _ := os.Stderr.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
