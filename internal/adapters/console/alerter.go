// Package console presents alerts on a text stream.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/SscSPs/komunity_app/internal/core/ports"
)

// Alerter writes each alert as a titled block.
type Alerter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewAlerter(out io.Writer) *Alerter {
	return &Alerter{out: out}
}

var _ ports.Alerter = (*Alerter)(nil)

func (a *Alerter) Alert(_ context.Context, alert ports.Alert) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if alert.Message == "" {
		fmt.Fprintf(a.out, "[%s]\n", alert.Title)
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", alert.Title, alert.Message)
}
