package ui

import (
	"context"

	"github.com/carillon-io/carillon-core/crypto"
)

// ConfirmOverwrite asks whether the context directory dir may be overwritten. If the directory
// already holds a node identity it's shown so the user knows which key is about to be lost.
func ConfirmOverwrite(ctx context.Context, u UI, dir string, existing crypto.PublicKey) (bool, error) {
	items := []Item{
		&Message{
			Label:   "Directory",
			Message: dir,
		},
	}
	if existing != nil {
		fp := crypto.Fingerprint(existing)
		items = append(items,
			&Message{
				Label:   "Node address",
				Message: existing.Address(),
			},
			&Message{
				Label:   "Algorithm",
				Message: existing.Algorithm(),
			},
			&Fingerprint{
				Label:       "Key's visualizer",
				Header:      existing.Algorithm(),
				Footer:      crypto.BLAKE2b_256.String(),
				Fingerprint: fp[:],
			})
	}
	var ok bool
	items = append(items, &Confirmation{
		Prompt: "Overwrite the existing context directory?",
		Value:  &ok,
	})
	dialog := Dialog{
		Title: "Context directory already exists",
		Items: items,
	}
	err := u.Dialog(ctx, &dialog)
	return ok, err
}
