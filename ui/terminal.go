package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/carillon-io/carillon-core/crypto/utils"
	"golang.org/x/term"
)

// Terminal talks to the user through the controlling terminal on stdin and stdout
type Terminal struct {
	mtx sync.Mutex
}

var aLongTimeAgo = time.Unix(1, 0)

func readCtx(ctx context.Context, r *os.File, readFunc func() (string, error)) (string, error) {
	ctxErr := make(chan error)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			r.SetDeadline(aLongTimeAgo)
			ctxErr <- ctx.Err()
		case <-done:
			ctxErr <- nil
		}
	}()

	line, err := readFunc()
	close(done)
	if e := <-ctxErr; e != nil {
		err = e
	}
	r.SetDeadline(time.Time{})

	if errors.Is(err, io.EOF) {
		err = ErrCancelled
	}
	return line, err
}

// IsTerminal reports whether stdin is interactive
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (t *Terminal) Dialog(ctx context.Context, dialog *Dialog) error {
	if !IsTerminal() {
		return ErrNotTerminal
	}
	t.mtx.Lock()
	defer t.mtx.Unlock()

	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), state)

	stdin := stdinPipe()
	tr := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{stdin, os.Stdout}, "")
	return render(tr, dialog, func(prompt string) (string, error) {
		tr.SetPrompt(prompt)
		return readCtx(ctx, stdin, tr.ReadLine)
	})
}

// render writes the dialog to w asking readLine for answers
func render(w io.Writer, dialog *Dialog, readLine func(prompt string) (string, error)) error {
	fmt.Fprintln(w, "")
	if dialog.Title != "" {
		fmt.Fprintf(w, "# %s\n", dialog.Title)
	}
	for _, item := range dialog.Items {
		switch item := item.(type) {
		case *Message:
			if item.Label != "" {
				if strings.ContainsRune(item.Message, '\n') {
					// multi line message
					fmt.Fprintf(w, "%s:\n", item.Label)
				} else {
					fmt.Fprintf(w, "%s: ", item.Label)
				}
			}
			fmt.Fprintln(w, item.Message)

		case *Fingerprint:
			if item.Label != "" {
				fmt.Fprintf(w, "%s:\n", item.Label)
			}
			io.WriteString(w, utils.FingerprintRandomArt(item.Header, item.Footer, item.Fingerprint))

		case *Confirmation:
			v, err := readLine(item.Prompt + " [yes/No]: ")
			if err != nil {
				return err
			}
			*item.Value = strings.EqualFold(strings.TrimSpace(v), "yes")

		default:
			panic(fmt.Sprintf("unexpected ui.Item: %#v", item))
		}
	}
	return nil
}

var stdinPipe = sync.OnceValue(func() *os.File {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	go io.Copy(w, os.Stdin)
	return r
})

var _ UI = (*Terminal)(nil)
