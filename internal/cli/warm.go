package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newWarmCmd(f *flags, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Compile every function in the store once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := f.newApp(cmd, errW)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Warm(cmd.Context())
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("warm-up aborted: %v", err)}
			}
			if report.Failed > 0 {
				warning(errW, "%d of %d functions failed to build", report.Failed, report.Listed)
			}
			success(outW, "warmed %d functions", report.Built)
			return nil
		},
	}
}
