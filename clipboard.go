package main

import (
	"errors"
	"log"

	"golang.design/x/clipboard"
)

// Clipboard copies readouts to the system clipboard when one is available.
type Clipboard struct {
	ok bool
}

// NewClipboard initialises the system clipboard. Without one (headless X,
// missing cgo) copying is disabled and reported once.
func NewClipboard() *Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: disabled: %v", err)
		return &Clipboard{}
	}
	return &Clipboard{ok: true}
}

var errNoClipboard = errors.New("clipboard: not available")

func (c *Clipboard) Copy(text string) error {
	if c == nil || !c.ok {
		return errNoClipboard
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
