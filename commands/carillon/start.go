package carillon

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/carillon-io/carillon-core/core"
	"github.com/carillon-io/carillon-core/server"
	"github.com/spf13/cobra"
)

func newStartCommand(opts *rootOptions) *cobra.Command {
	var (
		httpAddr string
		noHTTP   bool
	)

	cmd := cobra.Command{
		Use:   "start [DIR]",
		Short: "Starts a Carillon node based on the specified context directory",
		Long:  "Starts a Carillon node based on the specified context directory. If DIR is omitted, the current directory is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := contextDir(args)
			nodeCtx, err := core.NewContext(dir, nil, opts.log)
			if err != nil {
				return err
			}
			conf := nodeCtx.Config()
			if _, ok := opts.levelFromFlags(cmd.Flags()); !ok {
				opts.log.SetLogLevel(conf.Node.LogLevel)
			}
			kp, err := nodeCtx.KeyPair()
			if err != nil {
				return err
			}
			opts.log.WithFields(map[string]any{
				"algorithm": kp.Algorithm(),
				"address":   kp.PublicKey().Address(),
			}).Info("Node identity loaded")

			if noHTTP {
				return nil
			}
			addr := conf.Node.HTTP.Address
			if cmd.Flags().Changed("http") {
				addr = httpAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(addr, kp, opts.log).Serve(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&httpAddr, "http", core.DefaultHTTPAddress, "HTTP listening address, overrides node.http.address")
	f.BoolVar(&noHTTP, "no-http", false, "Only resolve the node identity and exit")

	return &cmd
}
