package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	awsint "github.com/vietdv277/cwput/internal/aws"
	"github.com/vietdv277/cwput/internal/ui"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the AWS identity behind the resolved credentials",
	Long: heredoc.Doc(`
		Display the AWS caller identity for the credentials cwput resolves.

		Equivalent to 'aws sts get-caller-identity'.

		Examples:
		  cwput whoami
		  cwput whoami -p ci`),
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s := loadSettings()
	svc, err := newServices(ctx, resolveCredentials(ctx, s), s.Endpoint)
	if err != nil {
		return err
	}

	identity, err := awsint.GetCallerIdentity(ctx, svc.identity)
	if err != nil {
		logServiceError(ctx, err)
		return fmt.Errorf("failed to get caller identity: %w", err)
	}

	return printResult(cmd.OutOrStdout(), s.Output, identity, func(w io.Writer) {
		ui.PrintIdentity(w, identity)
	})
}
