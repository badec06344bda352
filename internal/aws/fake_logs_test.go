package aws

import (
	"context"
	"sort"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/smithy-go"
)

// fakeLogs is an in-memory CloudWatch Logs that enforces sequence tokens
// the way the service used to.
type fakeLogs struct {
	groups map[string]map[string]*fakeStream
	calls  []string
	puts   []*cloudwatchlogs.PutLogEventsInput

	createGroupErr  error
	createStreamErr error
	describeErr     error
	putErr          error
	pageSize        int
	tokenSeq        int
}

type fakeStream struct {
	token  *string
	events []cwtypes.InputLogEvent
}

var _ LogsAPI = (*fakeLogs)(nil)

func newFakeLogs() *fakeLogs {
	return &fakeLogs{groups: make(map[string]map[string]*fakeStream)}
}

func (f *fakeLogs) CreateLogGroup(_ context.Context, in *cloudwatchlogs.CreateLogGroupInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error) {
	f.calls = append(f.calls, "CreateLogGroup")
	if f.createGroupErr != nil {
		return nil, f.createGroupErr
	}
	name := awssdk.ToString(in.LogGroupName)
	if _, ok := f.groups[name]; ok {
		return nil, &cwtypes.ResourceAlreadyExistsException{Message: awssdk.String("The specified log group already exists")}
	}
	f.groups[name] = make(map[string]*fakeStream)
	return &cloudwatchlogs.CreateLogGroupOutput{}, nil
}

func (f *fakeLogs) CreateLogStream(_ context.Context, in *cloudwatchlogs.CreateLogStreamInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error) {
	f.calls = append(f.calls, "CreateLogStream")
	if f.createStreamErr != nil {
		return nil, f.createStreamErr
	}
	group, ok := f.groups[awssdk.ToString(in.LogGroupName)]
	if !ok {
		return nil, &cwtypes.ResourceNotFoundException{Message: awssdk.String("The specified log group does not exist")}
	}
	name := awssdk.ToString(in.LogStreamName)
	if _, ok := group[name]; ok {
		return nil, &cwtypes.ResourceAlreadyExistsException{Message: awssdk.String("The specified log stream already exists")}
	}
	group[name] = &fakeStream{}
	return &cloudwatchlogs.CreateLogStreamOutput{}, nil
}

func (f *fakeLogs) DescribeLogStreams(_ context.Context, in *cloudwatchlogs.DescribeLogStreamsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	f.calls = append(f.calls, "DescribeLogStreams")
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	group, ok := f.groups[awssdk.ToString(in.LogGroupName)]
	if !ok {
		return nil, &cwtypes.ResourceNotFoundException{Message: awssdk.String("The specified log group does not exist")}
	}

	prefix := awssdk.ToString(in.LogStreamNamePrefix)
	var names []string
	for name := range group {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	start := 0
	if in.NextToken != nil {
		for i, name := range names {
			if name == *in.NextToken {
				start = i
			}
		}
	}

	out := &cloudwatchlogs.DescribeLogStreamsOutput{}
	for i := start; i < len(names); i++ {
		if f.pageSize > 0 && i-start == f.pageSize {
			out.NextToken = awssdk.String(names[i])
			break
		}
		s := group[names[i]]
		out.LogStreams = append(out.LogStreams, cwtypes.LogStream{
			LogStreamName:       awssdk.String(names[i]),
			Arn:                 awssdk.String("arn:aws:logs:eu-west-1:123456789012:log-group:" + awssdk.ToString(in.LogGroupName) + ":log-stream:" + names[i]),
			CreationTime:        awssdk.Int64(1700000000000),
			UploadSequenceToken: s.token,
			StoredBytes:         awssdk.Int64(int64(len(s.events))),
		})
	}
	return out, nil
}

func (f *fakeLogs) PutLogEvents(_ context.Context, in *cloudwatchlogs.PutLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error) {
	f.calls = append(f.calls, "PutLogEvents")
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	group, ok := f.groups[awssdk.ToString(in.LogGroupName)]
	if !ok {
		return nil, &cwtypes.ResourceNotFoundException{Message: awssdk.String("The specified log group does not exist")}
	}
	s, ok := group[awssdk.ToString(in.LogStreamName)]
	if !ok {
		return nil, &cwtypes.ResourceNotFoundException{Message: awssdk.String("The specified log stream does not exist")}
	}
	if awssdk.ToString(s.token) != awssdk.ToString(in.SequenceToken) {
		return nil, &cwtypes.InvalidSequenceTokenException{
			Message:               awssdk.String("The given sequenceToken is invalid"),
			ExpectedSequenceToken: s.token,
		}
	}

	f.tokenSeq++
	s.token = awssdk.String(strings.Repeat("4", 10) + string(rune('0'+f.tokenSeq)))
	s.events = append(s.events, in.LogEvents...)
	return &cloudwatchlogs.PutLogEventsOutput{NextSequenceToken: s.token}, nil
}

func (f *fakeLogs) events(group, stream string) []cwtypes.InputLogEvent {
	if g, ok := f.groups[group]; ok {
		if s, ok := g[stream]; ok {
			return s.events
		}
	}
	return nil
}

func apiError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}
