package source

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/acksell/ddblens/lens"
)

// IdentitySource resolves the AWS principal the analysis runs as. The
// identity is reported in the run output; resolving it is best-effort and
// failure does not fail the analysis.
type IdentitySource struct {
	sts STSAPI
}

func NewIdentitySource(api STSAPI) *IdentitySource {
	return &IdentitySource{sts: api}
}

func (s *IdentitySource) CallerIdentity(ctx context.Context) (lens.CallerIdentity, error) {
	out, err := s.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return lens.CallerIdentity{}, fmt.Errorf("GetCallerIdentity: %w", err)
	}
	return lens.CallerIdentity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
