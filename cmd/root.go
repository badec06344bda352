package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/aws/smithy-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	awsint "github.com/vietdv277/cwput/internal/aws"
	"github.com/vietdv277/cwput/internal/config"
	"github.com/vietdv277/cwput/internal/logger"
	"github.com/vietdv277/cwput/internal/ui"
)

var (
	// Global flags
	profile  string
	region   string
	output   string
	logLevel string
	cfgFile  string
)

// toolConfig is the config file loaded by initConfig
var toolConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:   "cwput <group> <stream> <message>",
	Short: "Publish a single message to AWS CloudWatch Logs",
	Long: heredoc.Doc(`
		cwput appends one event to a CloudWatch Logs stream, creating the log
		group and log stream first when they do not exist yet.

		Credentials are read from the [default] profile (or --profile) of
		~/.aws/credentials and the region from ~/.aws/config. The environment
		variables AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_DEFAULT_REGION
		override the files, and --region (or CWPUT_REGION) overrides everything.

		A group named like a subcommand (streams, whoami, ...) must follow --,
		which ends subcommand and flag parsing.

		Examples:
		  cwput /app/test run-1 "hello world"
		  cwput -p ci -o text /app/test run-1 "deploy finished"
		  cwput -- whoami run-1 "hello"    # publish to the group "whoami"
		  cwput streams /app/test          # list streams and their tokens
		  cwput credentials                # show where each setting came from`),
	Args: cobra.ExactArgs(3),

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: initConfig,
	RunE:              runPublish,
}

// Execute runs the root command, printing any error to stderr
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	// Global persistent flags (available to all subcommands)
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&profile, "profile", "p", awsint.DefaultProfile, "AWS profile to read from the shared credentials and config files")
	flags.StringVarP(&region, "region", "r", "", "AWS region, overriding files and environment")
	flags.StringVarP(&output, "output", "o", config.OutputJSON, "output format ("+strings.Join(config.Outputs, ", ")+")")
	flags.StringVarP(&logLevel, "log-level", "v", "warn", "logging level ("+strings.ToLower(strings.Join(logger.LevelNames, ", "))+")")
	flags.StringVar(&cfgFile, "config", "", "config file (default "+config.GetConfigPath()+")")

	bindFlags()
}

// bindFlags binds the persistent flags to viper keys
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("profile", flags.Lookup("profile"))
	_ = viper.BindPFlag("region", flags.Lookup("region"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

// initConfig layers flags over CWPUT_* environment variables over the
// config file over built-in defaults.
func initConfig(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.GetConfigPath()
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	toolConfig = fileCfg

	// region is left out: the file's region ranks below the environment
	viper.SetDefault("profile", fileCfg.Profile)
	viper.SetDefault("output", fileCfg.Output)
	viper.SetDefault("log_level", fileCfg.LogLevel)
	viper.SetDefault("credentials_file", fileCfg.CredentialsFile)
	viper.SetDefault("config_file", fileCfg.ConfigFile)
	viper.SetDefault("endpoint", fileCfg.Endpoint)

	// Read from environment variables
	viper.SetEnvPrefix("CWPUT")
	viper.AutomaticEnv()

	if err := config.ValidateOutput(viper.GetString("output")); err != nil {
		return err
	}

	log := logger.FromContext(cmd.Context())
	log.SetLevel(logger.LevelFromString(viper.GetString("log_level")))
	log.Debug("configuration loaded", "path", path, "profile", viper.GetString("profile"))

	return nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	group, stream, message := args[0], args[1], args[2]

	s := loadSettings()
	svc, err := newServices(ctx, resolveCredentials(ctx, s), s.Endpoint)
	if err != nil {
		return err
	}

	out, err := awsint.NewPublisher(svc.logs).Publish(ctx, group, stream, message)
	if err != nil {
		logServiceError(ctx, err)
		return err
	}

	result := awsint.NewPutResult(out)
	return printResult(cmd.OutOrStdout(), s.Output, result, func(w io.Writer) {
		ui.PrintPutResult(w, group, stream, result)
	})
}

// printResult renders v in the requested format; text uses the styled printer
func printResult(w io.Writer, format string, v any, text func(io.Writer)) error {
	if format == config.OutputText {
		text(w)
		return nil
	}
	return ui.Encode(w, format, v)
}

func logServiceError(ctx context.Context, err error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		logger.FromContext(ctx).Debug("service error",
			"code", apiErr.ErrorCode(), "fault", apiErr.ErrorFault().String())
	}
}
