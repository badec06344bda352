package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

// FindSequenceToken returns the upload sequence token of stream, or nil when
// the stream has none. With a name prefix the service orders streams by
// name, so an exact match is always on the first page.
func FindSequenceToken(ctx context.Context, api cloudwatchlogs.DescribeLogStreamsAPIClient, group, stream string) (*string, error) {
	out, err := api.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName:        awssdk.String(group),
		LogStreamNamePrefix: awssdk.String(stream),
	})
	if err != nil {
		return nil, err
	}

	for _, s := range out.LogStreams {
		if deref(s.LogStreamName) == stream && s.UploadSequenceToken != nil {
			return s.UploadSequenceToken, nil
		}
	}
	return nil, nil
}

// ListStreams returns every stream in group whose name starts with prefix
func ListStreams(ctx context.Context, api cloudwatchlogs.DescribeLogStreamsAPIClient, group, prefix string) ([]pkgtypes.LogStream, error) {
	input := &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: awssdk.String(group),
	}
	if prefix != "" {
		input.LogStreamNamePrefix = awssdk.String(prefix)
	}

	paginator := cloudwatchlogs.NewDescribeLogStreamsPaginator(api, input)

	var streams []pkgtypes.LogStream
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe log streams: %w", err)
		}

		for _, s := range page.LogStreams {
			streams = append(streams, pkgtypes.LogStream{
				Name:                deref(s.LogStreamName),
				ARN:                 deref(s.Arn),
				CreationTime:        msTime(s.CreationTime),
				LastEventTimestamp:  msTime(s.LastEventTimestamp),
				LastIngestionTime:   msTime(s.LastIngestionTime),
				UploadSequenceToken: deref(s.UploadSequenceToken),
				StoredBytes:         awssdk.ToInt64(s.StoredBytes),
			})
		}
	}

	return streams, nil
}
