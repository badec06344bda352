package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"

	pkgtypes "github.com/vietdv277/cwput/pkg/types"
)

// IdentityAPI is the part of the STS client used to identify the caller
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// GetCallerIdentity returns the current AWS caller identity
func GetCallerIdentity(ctx context.Context, api IdentityAPI) (*pkgtypes.CallerIdentity, error) {
	output, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, err
	}

	return &pkgtypes.CallerIdentity{
		Account: deref(output.Account),
		Arn:     deref(output.Arn),
		UserID:  deref(output.UserId),
	}, nil
}
