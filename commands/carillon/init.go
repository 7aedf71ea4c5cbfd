package carillon

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/carillon-io/carillon-core/core"
	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/keygen"
	"github.com/carillon-io/carillon-core/ui"
	"github.com/spf13/cobra"
)

var errTerminated = errors.New("terminated by user")

func newInitCommand(opts *rootOptions) *cobra.Command {
	var (
		force     bool
		algorithm string
	)

	cmd := cobra.Command{
		Use:   "init DIR",
		Short: "Create and initialize a new context directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			initOpts := core.InitOptions{
				Force:     force,
				Algorithm: algorithm,
				Logger:    opts.log,
			}
			res, err := core.Init(dir, initOpts)
			if err != nil && !force && errors.Is(err, fs.ErrExist) {
				ok, dialogErr := ui.ConfirmOverwrite(cmd.Context(), opts.ui, core.AbsPath(dir), existingIdentity(dir))
				if dialogErr != nil {
					if errors.Is(dialogErr, ui.ErrNotTerminal) {
						return err
					}
					return dialogErr
				}
				if !ok {
					return errTerminated
				}
				initOpts.Force = true
				res, err = core.Init(dir, initOpts)
			}
			if err != nil {
				return err
			}
			opts.log.Infof("SUCCESS: The context directory was created successfully: %s", core.AbsPath(dir))
			fmt.Fprintln(cmd.OutOrStdout(), res.Address)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&force, "force", "f", false, "Overwrite without error if the directory exists")
	f.StringVarP(&algorithm, "algorithm", "a", core.DefaultKeyAlgorithm, fmt.Sprintf("Node key algorithm: %v", keygen.DefaultRegistry().IDs()))

	return &cmd
}

// existingIdentity returns the public key of an already initialized context or nil
func existingIdentity(dir string) crypto.PublicKey {
	ctx, err := core.NewContext(dir, nil, nil)
	if err != nil {
		return nil
	}
	kp, err := ctx.KeyPair()
	if err != nil {
		return nil
	}
	return kp.PublicKey()
}
