package carillon

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carillon-io/carillon-core/core"
	"github.com/carillon-io/carillon-core/ui"
	"github.com/stretchr/testify/require"
)

type fakeUI struct {
	answer bool
	err    error
	called bool
}

func (f *fakeUI) Dialog(ctx context.Context, dialog *ui.Dialog) error {
	f.called = true
	if f.err != nil {
		return f.err
	}
	for _, item := range dialog.Items {
		if c, ok := item.(*ui.Confirmation); ok {
			*c.Value = f.answer
		}
	}
	return nil
}

func run(t *testing.T, u ui.UI, args ...string) (string, string, error) {
	t.Helper()
	if u == nil {
		u = &fakeUI{err: ui.ErrNotTerminal}
	}
	cmd := newRootCommand(u)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInitAndIdentity(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node")

	stdout, stderr, err := run(t, nil, "init", dir)
	require.NoError(t, err)
	address := strings.TrimSpace(stdout)
	require.NotEmpty(t, address)
	require.Contains(t, stderr, "SUCCESS")

	stdout, _, err = run(t, nil, "identity", "print", dir)
	require.NoError(t, err)
	require.Equal(t, address+"\n", stdout)

	stdout, _, err = run(t, nil, "identity", "print", dir, "--format", "art")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "+----[ED25519]----+\n"))

	for _, format := range []string{"hex", "cose", "fingerprint"} {
		stdout, _, err = run(t, nil, "identity", "print", dir, "--format", format)
		require.NoError(t, err)
		require.NotEmpty(t, strings.TrimSpace(stdout))
	}
	_, _, err = run(t, nil, "identity", "print", dir, "--format", "xml")
	require.Error(t, err)

	stdout, _, err = run(t, nil, "identity", "sign", dir, "hello")
	require.NoError(t, err)
	sig := strings.TrimSpace(stdout)
	require.Len(t, sig, 128)

	stdout, _, err = run(t, nil, "id", "verify", dir, "hello", sig)
	require.NoError(t, err)
	require.Equal(t, "valid\n", stdout)

	stdout, _, err = run(t, nil, "id", "verify", dir, "goodbye", sig)
	require.NoError(t, err)
	require.Equal(t, "invalid\n", stdout)

	_, _, err = run(t, nil, "id", "verify", dir, "hello", sig[:10])
	require.Error(t, err)

	_, _, err = run(t, nil, "id", "verify", dir, "hello", "zz")
	require.ErrorContains(t, err, "malformed signature")

	_, _, err = run(t, nil, "start", dir, "--no-http")
	require.NoError(t, err)
}

func TestInitExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node")
	stdout, _, err := run(t, nil, "init", "-a", "secp256k1", dir)
	require.NoError(t, err)
	first := strings.TrimSpace(stdout)

	t.Run("non-interactive", func(t *testing.T) {
		_, _, err := run(t, nil, "init", dir)
		require.ErrorIs(t, err, fs.ErrExist)
	})

	t.Run("declined", func(t *testing.T) {
		u := fakeUI{answer: false}
		_, _, err := run(t, &u, "init", dir)
		require.ErrorIs(t, err, errTerminated)
		require.True(t, u.called)

		stdout, _, err := run(t, nil, "id", "print", dir)
		require.NoError(t, err)
		require.Equal(t, first, strings.TrimSpace(stdout))
	})

	t.Run("confirmed", func(t *testing.T) {
		u := fakeUI{answer: true}
		stdout, _, err := run(t, &u, "init", dir)
		require.NoError(t, err)
		require.NotEqual(t, first, strings.TrimSpace(stdout))
	})

	t.Run("force", func(t *testing.T) {
		u := fakeUI{}
		_, _, err := run(t, &u, "init", "-f", dir)
		require.NoError(t, err)
		require.False(t, u.called)
	})
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, nil, "start", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = run(t, nil, "init", "-a", "rsa", filepath.Join(t.TempDir(), "node"))
	require.ErrorIs(t, err, core.ErrUnsupportedSetting)

	_, _, err = run(t, nil, "init")
	require.Error(t, err)
}

func TestAlgorithms(t *testing.T) {
	stdout, _, err := run(t, nil, "algorithms")
	require.NoError(t, err)
	require.Equal(t, "ed25519\nsecp256k1\n", stdout)
}

func TestLogLevel(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node")
	_, stderr, err := run(t, nil, "init", "-l", "error", dir)
	require.NoError(t, err)
	require.Empty(t, stderr)

	_, stderr, err = run(t, nil, "start", "-v", "--no-http", dir)
	require.NoError(t, err)
	require.Contains(t, stderr, "Key pair restored")
}
