package types

import "time"

// LogEvent is a single message bound for a log stream
type LogEvent struct {
	Timestamp int64  `json:"timestamp" yaml:"timestamp"` // milliseconds since epoch
	Message   string `json:"message" yaml:"message"`
}

// NewLogEvent stamps message with t truncated to milliseconds
func NewLogEvent(t time.Time, message string) LogEvent {
	return LogEvent{
		Timestamp: t.UnixMilli(),
		Message:   message,
	}
}

// PutRequest is everything needed for one PutLogEvents call.
// SequenceToken is nil when the stream has no upload token yet.
type PutRequest struct {
	Group         string
	Stream        string
	Events        []LogEvent
	SequenceToken *string
}

// RejectedInfo mirrors the service's rejected-events indexes
type RejectedInfo struct {
	TooNewLogEventStartIndex *int32 `json:"tooNewLogEventStartIndex,omitempty" yaml:"tooNewLogEventStartIndex,omitempty"`
	TooOldLogEventEndIndex   *int32 `json:"tooOldLogEventEndIndex,omitempty" yaml:"tooOldLogEventEndIndex,omitempty"`
	ExpiredLogEventEndIndex  *int32 `json:"expiredLogEventEndIndex,omitempty" yaml:"expiredLogEventEndIndex,omitempty"`
}

// PutResult is the printable form of a PutLogEvents acknowledgment
type PutResult struct {
	NextSequenceToken     string        `json:"nextSequenceToken,omitempty" yaml:"nextSequenceToken,omitempty"`
	RejectedLogEventsInfo *RejectedInfo `json:"rejectedLogEventsInfo,omitempty" yaml:"rejectedLogEventsInfo,omitempty"`
	RequestID             string        `json:"requestId,omitempty" yaml:"requestId,omitempty"`
}

// LogStream represents a CloudWatch log stream description
type LogStream struct {
	Name                string    `json:"logStreamName" yaml:"logStreamName"`
	ARN                 string    `json:"arn,omitempty" yaml:"arn,omitempty"`
	CreationTime        time.Time `json:"creationTime" yaml:"creationTime"`
	LastEventTimestamp  time.Time `json:"lastEventTimestamp" yaml:"lastEventTimestamp"`
	LastIngestionTime   time.Time `json:"lastIngestionTime" yaml:"lastIngestionTime"`
	UploadSequenceToken string    `json:"uploadSequenceToken,omitempty" yaml:"uploadSequenceToken,omitempty"`
	StoredBytes         int64     `json:"storedBytes" yaml:"storedBytes"`
}
