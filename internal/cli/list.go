package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newListCmd(f *flags, outW, errW io.Writer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every callable function name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := f.newApp(cmd, errW)
			if err != nil {
				return err
			}
			defer a.Close()

			names := a.FunctionNames(cmd.Context())
			out := make([]string, len(names))
			for i, n := range names {
				out[i] = n.String()
			}

			if asJSON {
				enc := json.NewEncoder(outW)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("failed to encode names: %v", err)}
				}
				return nil
			}
			for _, n := range out {
				fmt.Fprintln(outW, n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print names as a JSON array.")
	return cmd
}
