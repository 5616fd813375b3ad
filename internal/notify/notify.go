// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package notify implements the transient notification surface the CLI uses
// to report operation outcomes. Notifications are fire-and-forget: they never
// block the caller and nothing downstream consumes their result.
package notify

import (
	"sync"

	"github.com/pterm/pterm"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a single transient message.
type Notification struct {
	Message string
	Kind    Kind
}

// Notifier is the outcome-reporting contract shared by the session service,
// the data-access layer and the commands. Implementations must be safe for
// concurrent use and must never block.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Console prints notifications immediately with pterm prefix printers.
// It is the default notifier for one-shot commands, where the process ends
// before any auto-dismiss could matter.
type Console struct{}

// NewConsole creates a console notifier.
func NewConsole() *Console { return &Console{} }

func (*Console) Success(msg string) { pterm.Success.Println(msg) }
func (*Console) Error(msg string)   { pterm.Error.Println(msg) }
func (*Console) Info(msg string)    { pterm.Info.Println(msg) }

// Recorder collects notifications in memory. Used by tests and anywhere the
// caller wants to inspect what was reported.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) push(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *Recorder) Success(msg string) { r.push(Notification{Message: msg, Kind: KindSuccess}) }
func (r *Recorder) Error(msg string)   { r.push(Notification{Message: msg, Kind: KindError}) }
func (r *Recorder) Info(msg string)    { r.push(Notification{Message: msg, Kind: KindInfo}) }

// Notifications returns a copy of everything recorded so far, in order.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.seen))
	copy(out, r.seen)
	return out
}

// ByKind returns the recorded notifications of the given kind.
func (r *Recorder) ByKind(k Kind) []Notification {
	var out []Notification
	for _, n := range r.Notifications() {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}
