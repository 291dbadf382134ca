package copy

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
)

const op = "copying key"

// S3Interface defines the S3 operations we need.
type S3Interface interface {
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	GetObjectAcl(ctx context.Context, params *s3.GetObjectAclInput, optFns ...func(*s3.Options)) (*s3.GetObjectAclOutput, error)
	PutObjectAcl(ctx context.Context, params *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error)
}

// Copier handles copy operations
type Copier struct {
	s3Client S3Interface
}

// NewCopier creates a new copy operation handler
func NewCopier(s3Client S3Interface) *Copier {
	return &Copier{
		s3Client: s3Client,
	}
}

// Copy copies srcBucket/srcKey to dstBucket/dstKey and then gives the
// destination the source's grants. If the ACL step fails the object has
// been copied but the error is still returned.
func (c *Copier) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	copySource := CopySource(srcBucket, srcKey)

	_, err := c.s3Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(copySource),
	})
	if err != nil {
		return errors.FromAPI(op, dstBucket, dstKey, err)
	}

	return c.copyACL(ctx, srcBucket, srcKey, dstBucket, dstKey)
}

// CopySource returns the URL-encoded "bucket/key" value of CopyObjectInput.CopySource.
// Each key segment is escaped on its own so "/" keeps separating segments;
// "+" is escaped too since S3 would otherwise decode it as a space.
func CopySource(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = strings.ReplaceAll(url.PathEscape(segment), "+", "%2B")
	}
	return bucket + "/" + strings.Join(segments, "/")
}

// copyACL applies the access control policy of the source object to the destination
func (c *Copier) copyACL(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	acl, err := c.s3Client.GetObjectAcl(ctx, &s3.GetObjectAclInput{
		Bucket: aws.String(srcBucket),
		Key:    aws.String(srcKey),
	})
	if err != nil {
		return errors.FromAPI("getting acl", srcBucket, srcKey, err)
	}

	_, err = c.s3Client.PutObjectAcl(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(dstBucket),
		Key:    aws.String(dstKey),
		AccessControlPolicy: &awstypes.AccessControlPolicy{
			Grants: acl.Grants,
			Owner:  acl.Owner,
		},
	})
	if err != nil {
		return errors.FromAPI("setting acl", dstBucket, dstKey, err)
	}

	return nil
}
