package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	awsint "github.com/vietdv277/cwput/internal/aws"
	"github.com/vietdv277/cwput/internal/ui"
	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

var streamsCmd = &cobra.Command{
	Use:   "streams <group> [prefix]",
	Short: "List log streams in a group",
	Long: heredoc.Doc(`
		List the log streams of a log group, optionally filtered by name prefix,
		together with their upload sequence tokens.

		Examples:
		  cwput streams /app/test
		  cwput streams /app/test run-        # streams starting with run-
		  cwput streams /app/test -o json`),
	Args: cobra.RangeArgs(1, 2),
	RunE: runStreams,
}

func init() {
	rootCmd.AddCommand(streamsCmd)
}

func runStreams(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	group := args[0]
	prefix := ""
	if len(args) > 1 {
		prefix = args[1]
	}

	s := loadSettings()
	svc, err := newServices(ctx, resolveCredentials(ctx, s), s.Endpoint)
	if err != nil {
		return err
	}

	streams, err := awsint.ListStreams(ctx, svc.logs, group, prefix)
	if err != nil {
		logServiceError(ctx, err)
		return err
	}
	if streams == nil {
		streams = []pkgtypes.LogStream{}
	}

	return printResult(cmd.OutOrStdout(), s.Output, streams, func(w io.Writer) {
		if len(streams) == 0 {
			fmt.Fprintln(w, "No log streams found")
			return
		}
		ui.PrintStreamsTable(w, streams)
	})
}
