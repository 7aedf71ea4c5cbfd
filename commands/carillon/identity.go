package carillon

import (
	"encoding/hex"
	"fmt"

	"github.com/carillon-io/carillon-core/core"
	"github.com/carillon-io/carillon-core/crypto"
	cosekey "github.com/carillon-io/carillon-core/crypto/cose/key"
	"github.com/carillon-io/carillon-core/crypto/utils"
	"github.com/spf13/cobra"
)

func loadKeyPair(opts *rootOptions, dir string) (crypto.KeyPair, error) {
	ctx, err := core.NewContext(dir, nil, opts.log)
	if err != nil {
		return nil, err
	}
	return ctx.KeyPair()
}

func newIdentityCommand(opts *rootOptions) *cobra.Command {
	cmd := cobra.Command{
		Use:     "identity",
		Aliases: []string{"id"},
		Short:   "Node identity commands",
	}

	var format string
	printCmd := cobra.Command{
		Use:     "print [DIR]",
		Aliases: []string{"p"},
		Short:   "Print the node public key",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := loadKeyPair(opts, contextDir(args))
			if err != nil {
				return err
			}
			pub := kp.PublicKey()
			out := cmd.OutOrStdout()
			switch format {
			case "address":
				fmt.Fprintln(out, pub.Address())
			case "hex":
				fmt.Fprintln(out, hex.EncodeToString(pub.Bytes()))
			case "cose":
				k, err := cosekey.PublicKeyCOSE(pub)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, hex.EncodeToString(k.Encode()))
			case "fingerprint":
				fp := crypto.Fingerprint(pub)
				fmt.Fprintln(out, fp.String())
			case "art":
				fmt.Fprint(out, utils.PublicKeyRandomArt(pub))
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
			return nil
		},
	}
	printCmd.Flags().StringVar(&format, "format", "address", "Output format: [address, hex, cose, fingerprint, art]")

	signCmd := cobra.Command{
		Use:   "sign [DIR] MESSAGE",
		Short: "Sign a message with the node key and print the signature in hex",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := loadKeyPair(opts, contextDir(args[:len(args)-1]))
			if err != nil {
				return err
			}
			sig, err := kp.Sign([]byte(args[len(args)-1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}

	verifyCmd := cobra.Command{
		Use:   "verify [DIR] MESSAGE SIGNATURE",
		Short: "Verify a hex encoded signature against the node public key",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := loadKeyPair(opts, contextDir(args[:len(args)-2]))
			if err != nil {
				return err
			}
			msg := args[len(args)-2]
			sig, err := hex.DecodeString(args[len(args)-1])
			if err != nil {
				return fmt.Errorf("malformed signature: %w", err)
			}
			ok, err := kp.PublicKey().Verify(sig, []byte(msg))
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
			}
			return nil
		},
	}

	cmd.AddCommand(&printCmd)
	cmd.AddCommand(&signCmd)
	cmd.AddCommand(&verifyCmd)
	return &cmd
}
