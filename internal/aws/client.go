package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client wraps the AWS SDK clients used by cwput
type Client struct {
	Logs *cloudwatchlogs.Client
	STS  *sts.Client

	creds    Credentials
	endpoint string
	cfg      awssdk.Config
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithCredentials sets the resolved access key, secret key and region
func WithCredentials(creds Credentials) ClientOption {
	return func(c *Client) {
		c.creds = creds
	}
}

// WithEndpoint points every service client at a custom base URL
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

// NewClient creates a new AWS Client with the given options. The resolved
// credentials are authoritative: unresolved keys or region are passed on
// empty and the SDK rejects the first request.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	configOpts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.creds.AccessKeyID.Value,
			c.creds.SecretAccessKey.Value,
			"",
		)),
		config.WithRetryer(func() awssdk.Retryer {
			return awssdk.NopRetryer{}
		}),
	}

	if c.endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(c.endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	// LoadDefaultConfig would fall back to AWS_REGION and the shared files
	cfg.Region = c.creds.Region.Value
	c.cfg = cfg

	c.Logs = cloudwatchlogs.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}
