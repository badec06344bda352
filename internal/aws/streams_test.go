package aws

import (
	"context"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededLogs() *fakeLogs {
	logs := newFakeLogs()
	logs.groups["/app/test"] = map[string]*fakeStream{
		"run-1":  {token: awssdk.String("token-run-1")},
		"run-10": {token: awssdk.String("token-run-10")},
		"run-2":  {},
		"other":  {token: awssdk.String("token-other")},
	}
	return logs
}

func TestFindSequenceToken(t *testing.T) {
	t.Parallel()

	logs := seededLogs()
	ctx := context.Background()

	token, err := FindSequenceToken(ctx, logs, "/app/test", "run-1")
	require.NoError(t, err)
	assert.Equal(t, "token-run-1", awssdk.ToString(token))

	token, err = FindSequenceToken(ctx, logs, "/app/test", "run-2")
	require.NoError(t, err)
	assert.Nil(t, token)

	token, err = FindSequenceToken(ctx, logs, "/app/test", "run")
	require.NoError(t, err)
	assert.Nil(t, token)

	_, err = FindSequenceToken(ctx, logs, "/missing", "run-1")
	require.Error(t, err)
}

func TestListStreamsPaginates(t *testing.T) {
	t.Parallel()

	logs := seededLogs()
	logs.pageSize = 1

	streams, err := ListStreams(context.Background(), logs, "/app/test", "run-")
	require.NoError(t, err)
	require.Len(t, streams, 3)

	assert.Equal(t, "run-1", streams[0].Name)
	assert.Equal(t, "token-run-1", streams[0].UploadSequenceToken)
	assert.Equal(t, time.UnixMilli(1700000000000), streams[0].CreationTime)
	assert.True(t, streams[0].LastEventTimestamp.IsZero())
	assert.Equal(t, "run-10", streams[1].Name)
	assert.Equal(t, "run-2", streams[2].Name)
	assert.Empty(t, streams[2].UploadSequenceToken)

	all, err := ListStreams(context.Background(), logs, "/app/test", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListStreamsError(t *testing.T) {
	t.Parallel()

	logs := newFakeLogs()
	logs.describeErr = apiError("ThrottlingException", "Rate exceeded")

	_, err := ListStreams(context.Background(), logs, "/app/test", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, logs.describeErr)
}

type fakeIdentity struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (f fakeIdentity) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.out, f.err
}

func TestGetCallerIdentity(t *testing.T) {
	t.Parallel()

	identity, err := GetCallerIdentity(context.Background(), fakeIdentity{out: &sts.GetCallerIdentityOutput{
		Account: awssdk.String("123456789012"),
		Arn:     awssdk.String("arn:aws:iam::123456789012:user/ci"),
		UserId:  awssdk.String("AIDAEXAMPLE"),
	}})
	require.NoError(t, err)
	assert.Equal(t, "123456789012", identity.Account)
	assert.Equal(t, "arn:aws:iam::123456789012:user/ci", identity.Arn)
	assert.Equal(t, "AIDAEXAMPLE", identity.UserID)

	_, err = GetCallerIdentity(context.Background(), fakeIdentity{err: apiError("InvalidClientTokenId", "bad token")})
	require.Error(t, err)
}
