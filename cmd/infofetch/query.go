package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stefanclaw/infofetch/internal/result"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query <keyword> [text...]",
	Short: "Run one keyword query and print the entries",
	Example: `  infofetch query fi work
  infofetch query fr --json phone`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(os.Stderr)
		if err != nil {
			return err
		}
		resp, err := a.ctrl.HandleKeyword(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if resp == nil {
			k := a.cfg.Keywords
			return fmt.Errorf("unknown keyword %q (use %s, %s or %s)", args[0], k.Fetch, k.Add, k.Remove)
		}
		return printResponse(cmd.OutOrStdout(), resp, queryJSON)
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the response as JSON")
	rootCmd.AddCommand(queryCmd)
}

func printResponse(w io.Writer, resp *result.Response, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if resp.Kind == result.SetQuery {
		_, err := fmt.Fprintln(w, resp.Query)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range resp.Entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Description)
	}
	return tw.Flush()
}
