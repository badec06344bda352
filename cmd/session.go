package cmd

import (
	"context"

	"github.com/spf13/viper"

	awsint "github.com/vietdv277/cwput/internal/aws"
	"github.com/vietdv277/cwput/internal/logger"
)

// settings is the effective configuration after viper layering
type settings struct {
	Profile         string
	Region          string // --region or CWPUT_REGION
	ToolRegion      string // region from the tool config file
	Output          string
	CredentialsFile string
	ConfigFile      string
	Endpoint        string
}

func loadSettings() settings {
	return settings{
		Profile:         viper.GetString("profile"),
		Region:          viper.GetString("region"),
		ToolRegion:      toolConfig.Region,
		Output:          viper.GetString("output"),
		CredentialsFile: viper.GetString("credentials_file"),
		ConfigFile:      viper.GetString("config_file"),
		Endpoint:        viper.GetString("endpoint"),
	}
}

func (s settings) sharedFiles() awsint.SharedFiles {
	files := awsint.DefaultSharedFiles()
	if s.CredentialsFile != "" {
		files.CredentialsFile = s.CredentialsFile
	}
	if s.ConfigFile != "" {
		files.ConfigFile = s.ConfigFile
	}
	return files
}

// resolveCredentials runs the credential chain: credentials file, config
// file, tool config region, environment, then the --region / CWPUT_REGION
// override. Unreadable sources and unresolved fields are logged, never fatal.
func resolveCredentials(ctx context.Context, s settings) awsint.Credentials {
	log := logger.FromContext(ctx).WithName("credentials")
	files := s.sharedFiles()

	credSrc, err := awsint.CredentialsFileSource(files.CredentialsFile, s.Profile)
	if err != nil {
		log.Warn("ignoring credentials file", "error", err)
	}

	confSrc, err := awsint.ConfigFileSource(files.ConfigFile, s.Profile)
	if err != nil {
		log.Warn("ignoring config file", "error", err)
	}

	envSrc, err := awsint.EnvSource()
	if err != nil {
		log.Warn("ignoring environment", "error", err)
	}

	toolSrc := awsint.NewStaticSource("tool config", map[awsint.Field]string{
		awsint.FieldRegion: s.ToolRegion,
	})

	override := awsint.NewStaticSource("cwput", map[awsint.Field]string{
		awsint.FieldRegion: s.Region,
	})

	creds := awsint.ResolveCredentials(credSrc, confSrc, toolSrc, envSrc, override)
	for _, f := range awsint.Fields {
		setting := creds.Get(f)
		if !setting.Resolved() {
			log.Warn("credential setting unresolved", "field", f, "profile", s.Profile)
			continue
		}
		log.Debug("credential setting resolved", "field", f, "source", setting.Source)
	}

	return creds
}

// services are the AWS APIs the commands talk to
type services struct {
	logs     awsint.LogsAPI
	identity awsint.IdentityAPI
}

// newServices builds the SDK clients; tests swap it for fakes
var newServices = func(ctx context.Context, creds awsint.Credentials, endpoint string) (*services, error) {
	opts := []awsint.ClientOption{awsint.WithCredentials(creds)}
	if endpoint != "" {
		opts = append(opts, awsint.WithEndpoint(endpoint))
	}

	client, err := awsint.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &services{logs: client.Logs, identity: client.STS}, nil
}
