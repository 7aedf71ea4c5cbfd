package ui

import (
	"context"
	"errors"
)

type Item interface {
	DialogItem()
}

type Message struct {
	Label   string
	Message string
}

func (*Message) DialogItem() {}

// Fingerprint is rendered as random art
type Fingerprint struct {
	Label       string
	Header      string
	Footer      string
	Fingerprint []byte
}

func (*Fingerprint) DialogItem() {}

type Confirmation struct {
	Prompt string
	Value  *bool
}

func (*Confirmation) DialogItem() {}

type Dialog struct {
	Title string
	Items []Item
}

var (
	ErrCancelled   = errors.New("cancelled")
	ErrNotTerminal = errors.New("standard input is not a terminal")
)

type UI interface {
	Dialog(ctx context.Context, dialog *Dialog) error
}
