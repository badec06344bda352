package cmd

import (
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	awsint "github.com/vietdv277/cwput/internal/aws"
	"github.com/vietdv277/cwput/internal/logger"
	"github.com/vietdv277/cwput/internal/ui"
	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

var credentialsCmd = &cobra.Command{
	Use:     "credentials",
	Aliases: []string{"creds"},
	Short:   "Show how credentials and region are resolved",
	Long: heredoc.Doc(`
		Display the access key, secret key and region cwput would use, and the
		source each value came from. Secrets are masked.

		Examples:
		  cwput credentials
		  cwput credentials -p ci -o yaml`),
	Args: cobra.NoArgs,
	RunE: runCredentials,
}

func init() {
	rootCmd.AddCommand(credentialsCmd)
}

type credentialsReport struct {
	Profile  string                      `json:"profile" yaml:"profile"`
	Settings []pkgtypes.CredentialStatus `json:"settings" yaml:"settings"`
	Profiles []string                    `json:"profiles" yaml:"profiles"`
}

func runCredentials(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s := loadSettings()
	creds := resolveCredentials(ctx, s)

	statuses := credentialStatuses(creds)

	profiles, err := awsint.ListProfiles(s.sharedFiles())
	if err != nil {
		logger.FromContext(ctx).Warn("failed to list profiles", "error", err)
	}

	report := credentialsReport{Profile: s.Profile, Settings: statuses, Profiles: []string{}}
	for _, p := range profiles {
		report.Profiles = append(report.Profiles, p.Name)
	}

	return printResult(cmd.OutOrStdout(), s.Output, report, func(w io.Writer) {
		ui.PrintCredentials(w, s.Profile, statuses, profiles)
	})
}

func credentialStatuses(creds awsint.Credentials) []pkgtypes.CredentialStatus {
	statuses := make([]pkgtypes.CredentialStatus, 0, len(awsint.Fields))
	for _, f := range awsint.Fields {
		setting := creds.Get(f)
		status := pkgtypes.CredentialStatus{
			Field:    string(f),
			Source:   setting.Source,
			Resolved: setting.Resolved(),
		}
		if setting.Resolved() {
			status.Value = setting.Value
			if f != awsint.FieldRegion {
				status.Value = maskSecret(setting.Value)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// maskSecret keeps the first and last four characters of long values
func maskSecret(v string) string {
	if len(v) <= 8 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", 4) + v[len(v)-4:]
}
