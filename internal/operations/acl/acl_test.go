package acl

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

func TestConvertGrants(t *testing.T) {
	grants := []awstypes.Grant{
		{
			Grantee: &awstypes.Grantee{
				Type:         awstypes.TypeCanonicalUser,
				ID:           aws.String("abc"),
				DisplayName:  aws.String("owner"),
				EmailAddress: aws.String("owner@example.com"),
			},
			Permission: awstypes.PermissionFullControl,
		},
		{
			Grantee:    &awstypes.Grantee{Type: awstypes.TypeGroup, URI: aws.String(testutil.AllUsersURI)},
			Permission: awstypes.PermissionRead,
		},
	}

	got := ConvertGrants(grants)
	require.Len(t, got, 2)

	assert.Equal(t, "FULL_CONTROL", aws.ToString(got[0].Permission))
	assert.Equal(t, "owner", aws.ToString(got[0].DisplayName))
	assert.Equal(t, "owner@example.com", aws.ToString(got[0].EmailAddress))
	assert.Equal(t, "abc", aws.ToString(got[0].ID))
	assert.Nil(t, got[0].Message)

	assert.Equal(t, "READ", aws.ToString(got[1].Permission))
	assert.Nil(t, got[1].ID)
	assert.Nil(t, got[1].DisplayName)

	assert.Empty(t, ConvertGrants(nil))
}

func TestManager_SetThenGet(t *testing.T) {
	ctx := context.Background()
	fake := testutil.NewFakeS3()
	fake.AddObject("bucket", "k", []byte("v"))
	m := New(fake)

	require.NoError(t, m.SetBucket(ctx, "bucket", s3types.ACLPublicReadWrite))
	bucketGrants, err := m.BucketGrants(ctx, "bucket")
	require.NoError(t, err)
	assert.Len(t, bucketGrants, 3)

	require.NoError(t, m.SetKey(ctx, "bucket", "k", s3types.ACLAuthenticatedRead))
	keyGrants, err := m.KeyGrants(ctx, "bucket", "k")
	require.NoError(t, err)
	require.Len(t, keyGrants, 2)
	assert.Equal(t, testutil.FakeOwnerID, aws.ToString(keyGrants[0].ID))
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()
	mock := &testutil.MockS3Client{
		GetBucketAclFunc: func(context.Context, *s3.GetBucketAclInput, ...func(*s3.Options)) (*s3.GetBucketAclOutput, error) {
			return nil, testutil.APIError("AccessDenied", "Access Denied")
		},
		PutObjectAclFunc: func(_ context.Context, in *s3.PutObjectAclInput, _ ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
			assert.Equal(t, awstypes.ObjectCannedACLPrivate, in.ACL)
			return nil, testutil.APIError("NoSuchKey", "The specified key does not exist.")
		},
	}
	m := New(mock)

	_, err := m.BucketGrants(ctx, "bucket")
	require.Error(t, err)
	assert.Equal(t, "S3ResponseError = AccessDenied Access Denied when getting acl", err.Error())

	err = m.SetKey(ctx, "bucket", "k", s3types.ACLPrivate)
	require.Error(t, err)
	assert.True(t, s3errors.IsNotFound(err))
}
