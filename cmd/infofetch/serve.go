package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stefanclaw/infofetch/internal/host"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer launcher events as JSON lines on stdin/stdout",
	Long: `serve reads one JSON event per line from stdin and writes one JSON reply
per line to stdout. Logs go to stderr.

  {"event":"keyword","keyword":"fi","argument":"bob"}
  {"event":"item_enter","data":{"option":"add_title","item":{"title":"bob","content":""}}}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(os.Stderr)
		if err != nil {
			return err
		}
		a.logger.Info("serving", "data", a.store.Path(), "version", version)
		return runChannel(host.New(a.ctrl, os.Stdin, os.Stdout, a.logger), a.logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
