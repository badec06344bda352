package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	result := pkgtypes.PutResult{NextSequenceToken: "4959", RequestID: "req-1"}

	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, "json", result))
	assert.JSONEq(t, `{"nextSequenceToken":"4959","requestId":"req-1"}`, buf.String())

	buf.Reset()
	require.NoError(t, Encode(buf, "yaml", result))
	assert.Equal(t, "nextSequenceToken: \"4959\"\nrequestId: req-1\n", buf.String())

	assert.Error(t, Encode(buf, "xml", result))
}

func TestPrintPutResult(t *testing.T) {
	t.Parallel()

	idx := int32(0)
	buf := new(bytes.Buffer)
	PrintPutResult(buf, "/app/test", "run-1", pkgtypes.PutResult{
		NextSequenceToken:     "4959",
		RejectedLogEventsInfo: &pkgtypes.RejectedInfo{TooOldLogEventEndIndex: &idx},
	})

	out := buf.String()
	assert.Contains(t, out, "/app/test")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "4959")
	assert.Contains(t, out, "too old up to index 0")
	assert.NotContains(t, out, "Request ID")
	assert.NotContains(t, out, "too new")
}

func TestPrintCredentials(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	PrintCredentials(buf, "default", []pkgtypes.CredentialStatus{
		{Field: "access_key", Value: "AKIA****WXYZ", Source: "environment", Resolved: true},
		{Field: "region"},
	}, []pkgtypes.AWSProfile{{Name: "default", Region: "eu-west-1"}, {Name: "ci"}})

	out := buf.String()
	assert.Contains(t, out, "AKIA****WXYZ")
	assert.Contains(t, out, "(environment)")
	assert.Contains(t, out, "unresolved")
	assert.Contains(t, out, "eu-west-1")
	assert.Contains(t, out, "ci")
}

func TestPrintStreamsTable(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	PrintStreamsTable(buf, []pkgtypes.LogStream{
		{Name: "run-1", UploadSequenceToken: "4959", StoredBytes: 2048, LastEventTimestamp: time.UnixMilli(1700000000000)},
		{Name: "a-much-longer-stream-name", StoredBytes: 12},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// top, header, separator, two rows, bottom, count
	require.Len(t, lines, 7)
	assert.Contains(t, lines[3], "run-1")
	assert.Contains(t, lines[3], "2.0 KiB")
	assert.Contains(t, lines[3], "4959")
	assert.Contains(t, lines[4], "a-much-longer-stream-name")
	assert.Contains(t, lines[4], "12 B")
	assert.Contains(t, lines[4], " - ")
	assert.Equal(t, "  2 streams", lines[6])
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "日本 ", padRight("日本", 5))
	assert.Equal(t, "abcd", padRight("abcd", 4))
	assert.Equal(t, "ab...", padRight("abcdefgh", 5))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1023 B", formatBytes(1023))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "3.0 MiB", formatBytes(3*1024*1024))
}
