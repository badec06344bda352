package aws

import (
	"context"
	"errors"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/vietdv277/cwput/internal/logger"
	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

// LogsAPI is the part of the CloudWatch Logs client the publisher needs
type LogsAPI interface {
	CreateLogGroup(ctx context.Context, params *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(ctx context.Context, params *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	PutLogEvents(ctx context.Context, params *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

var _ LogsAPI = (*cloudwatchlogs.Client)(nil)

// Publisher appends single messages to a CloudWatch log stream, creating the
// group and stream on first use.
type Publisher struct {
	logs LogsAPI
	now  func() time.Time
}

// PublisherOption allows customizing the Publisher
type PublisherOption func(*Publisher)

// WithClock replaces time.Now as the source of event timestamps
func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) {
		p.now = now
	}
}

// NewPublisher creates a Publisher on top of a CloudWatch Logs client
func NewPublisher(logs LogsAPI, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		logs: logs,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish ensures group and stream exist, then puts message as one event
// stamped with the current time. Errors from the service are returned as-is.
func (p *Publisher) Publish(ctx context.Context, group, stream, message string) (*cloudwatchlogs.PutLogEventsOutput, error) {
	log := logger.FromContext(ctx).WithName("publisher")

	if err := p.ensureLogGroup(ctx, log, group); err != nil {
		return nil, err
	}

	if err := p.ensureLogStream(ctx, log, group, stream); err != nil {
		return nil, err
	}

	token, err := FindSequenceToken(ctx, p.logs, group, stream)
	if err != nil {
		return nil, err
	}

	req := pkgtypes.PutRequest{
		Group:         group,
		Stream:        stream,
		Events:        []pkgtypes.LogEvent{pkgtypes.NewLogEvent(p.now(), message)},
		SequenceToken: token,
	}

	log.Debug("putting log event",
		"group", group, "stream", stream,
		"timestamp", req.Events[0].Timestamp, "sequenceToken", awssdk.ToString(token))

	return p.logs.PutLogEvents(ctx, putLogEventsInput(req))
}

func (p *Publisher) ensureLogGroup(ctx context.Context, log logger.Logger, group string) error {
	_, err := p.logs.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: awssdk.String(group),
	})
	if isAlreadyExists(err) {
		log.Debug("log group already exists", "group", group)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("created log group", "group", group)
	return nil
}

func (p *Publisher) ensureLogStream(ctx context.Context, log logger.Logger, group, stream string) error {
	_, err := p.logs.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  awssdk.String(group),
		LogStreamName: awssdk.String(stream),
	})
	if isAlreadyExists(err) {
		log.Debug("log stream already exists", "group", group, "stream", stream)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("created log stream", "group", group, "stream", stream)
	return nil
}

func isAlreadyExists(err error) bool {
	var exists *cwtypes.ResourceAlreadyExistsException
	return errors.As(err, &exists)
}

// putLogEventsInput leaves SequenceToken nil when the request has none so the
// field is omitted on the wire.
func putLogEventsInput(req pkgtypes.PutRequest) *cloudwatchlogs.PutLogEventsInput {
	events := make([]cwtypes.InputLogEvent, 0, len(req.Events))
	for _, e := range req.Events {
		events = append(events, cwtypes.InputLogEvent{
			Timestamp: awssdk.Int64(e.Timestamp),
			Message:   awssdk.String(e.Message),
		})
	}

	return &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  awssdk.String(req.Group),
		LogStreamName: awssdk.String(req.Stream),
		LogEvents:     events,
		SequenceToken: req.SequenceToken,
	}
}

// NewPutResult converts the SDK acknowledgment into its printable form
func NewPutResult(out *cloudwatchlogs.PutLogEventsOutput) pkgtypes.PutResult {
	if out == nil {
		return pkgtypes.PutResult{}
	}

	result := pkgtypes.PutResult{
		NextSequenceToken: awssdk.ToString(out.NextSequenceToken),
	}
	if id, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		result.RequestID = id
	}
	if info := out.RejectedLogEventsInfo; info != nil {
		result.RejectedLogEventsInfo = &pkgtypes.RejectedInfo{
			TooNewLogEventStartIndex: info.TooNewLogEventStartIndex,
			TooOldLogEventEndIndex:   info.TooOldLogEventEndIndex,
			ExpiredLogEventEndIndex:  info.ExpiredLogEventEndIndex,
		}
	}
	return result
}
