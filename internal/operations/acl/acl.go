package acl

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

const (
	opGet = "getting acl"
	opSet = "setting acl"
)

// S3Interface defines the S3 operations we need.
type S3Interface interface {
	GetBucketAcl(ctx context.Context, params *s3.GetBucketAclInput, optFns ...func(*s3.Options)) (*s3.GetBucketAclOutput, error)
	PutBucketAcl(ctx context.Context, params *s3.PutBucketAclInput, optFns ...func(*s3.Options)) (*s3.PutBucketAclOutput, error)
	GetObjectAcl(ctx context.Context, params *s3.GetObjectAclInput, optFns ...func(*s3.Options)) (*s3.GetObjectAclOutput, error)
	PutObjectAcl(ctx context.Context, params *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error)
}

// Manager reads and writes access control lists.
type Manager struct {
	client S3Interface
}

// New creates a new Manager.
func New(client S3Interface) *Manager {
	return &Manager{client: client}
}

// BucketGrants returns the grants of a bucket.
func (m *Manager) BucketGrants(ctx context.Context, bucket string) ([]s3types.Grant, error) {
	out, err := m.client.GetBucketAcl(ctx, &s3.GetBucketAclInput{Bucket: aws.String(bucket)})
	if err != nil {
		return nil, errors.FromAPI(opGet, bucket, "", err)
	}
	return ConvertGrants(out.Grants), nil
}

// KeyGrants returns the grants of an object.
func (m *Manager) KeyGrants(ctx context.Context, bucket, key string) ([]s3types.Grant, error) {
	out, err := m.client.GetObjectAcl(ctx, &s3.GetObjectAclInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.FromAPI(opGet, bucket, key, err)
	}
	return ConvertGrants(out.Grants), nil
}

// SetBucket applies a canned ACL to a bucket.
func (m *Manager) SetBucket(ctx context.Context, bucket string, acl s3types.CannedACL) error {
	_, err := m.client.PutBucketAcl(ctx, &s3.PutBucketAclInput{
		Bucket: aws.String(bucket),
		ACL:    awstypes.BucketCannedACL(acl),
	})
	if err != nil {
		return errors.FromAPI(opSet, bucket, "", err)
	}
	return nil
}

// SetKey applies a canned ACL to an object.
func (m *Manager) SetKey(ctx context.Context, bucket, key string, acl s3types.CannedACL) error {
	_, err := m.client.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		ACL:    awstypes.ObjectCannedACL(acl),
	})
	if err != nil {
		return errors.FromAPI(opSet, bucket, key, err)
	}
	return nil
}

// ConvertGrants maps SDK grants to response records. Grantee fields the
// provider leaves unset stay null.
func ConvertGrants(grants []awstypes.Grant) []s3types.Grant {
	out := make([]s3types.Grant, 0, len(grants))
	for _, g := range grants {
		rec := s3types.Grant{}
		if g.Permission != "" {
			rec.Permission = aws.String(string(g.Permission))
		}
		if g.Grantee != nil {
			rec.DisplayName = g.Grantee.DisplayName
			rec.EmailAddress = g.Grantee.EmailAddress
			rec.ID = g.Grantee.ID
		}
		out = append(out, rec)
	}
	return out
}
