// Package notify delivers short user-facing messages through the first
// channel that accepts them: the player OSD, a terminal banner or a plain alert.
package notify

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/autoskip-cli/autoskip/constant"
	"github.com/autoskip-cli/autoskip/icon"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/style"
	"github.com/autoskip-cli/autoskip/util"
)

// ErrNoTerminal is returned by sinks that need an interactive terminal.
var ErrNoTerminal = errors.New("no interactive terminal")

// Sink shows a message or reports why it could not.
type Sink interface {
	Notify(msg string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(msg string) error

func (f SinkFunc) Notify(msg string) error {
	return f(msg)
}

// Chain tries each sink in order until one succeeds.
type Chain struct {
	sinks []Sink
}

// NewChain builds a chain. Nil sinks are skipped.
func NewChain(sinks ...Sink) *Chain {
	c := &Chain{}
	for _, s := range sinks {
		if s != nil {
			c.sinks = append(c.sinks, s)
		}
	}
	return c
}

// Show delivers msg. Failures are only logged.
func (c *Chain) Show(msg string) {
	for i, s := range c.sinks {
		err := s.Notify(msg)
		if err == nil {
			return
		}
		log.Debugf("notification sink %d failed: %v", i, err)
	}
	log.Warnf("notification dropped: %s", msg)
}

// Banner prints a styled message on a terminal and erases it after Hold.
type Banner struct {
	W           io.Writer
	Hold        time.Duration
	Interactive func() bool
}

// Notify implements Sink.
func (b *Banner) Notify(msg string) error {
	interactive := b.Interactive
	if interactive == nil {
		interactive = util.Interactive
	}
	if !interactive() {
		return ErrNoTerminal
	}

	rendered := fmt.Sprintf("%s %s %s", style.Title(constant.PluginName), icon.Get(icon.Skip), style.Bold(msg))
	eraser := util.PrintErasableTo(b.W, rendered)
	time.AfterFunc(b.Hold, eraser)
	return nil
}

// Alert writes one plain line per message. It is the last resort of a chain.
type Alert struct {
	W io.Writer
}

// Notify implements Sink.
func (a *Alert) Notify(msg string) error {
	_, err := fmt.Fprintf(a.W, "%s: %s\n", constant.PluginName, msg)
	return err
}
