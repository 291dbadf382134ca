package testutil

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockS3Client(t *testing.T) {
	t.Run("PutObject with custom function", func(t *testing.T) {
		mock := &MockS3Client{
			PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
				assert.Equal(t, "test-bucket", *params.Bucket)
				assert.Equal(t, "test-key", *params.Key)
				return &s3.PutObjectOutput{ETag: aws.String("test-etag")}, nil
			},
		}

		output, err := mock.PutObject(context.Background(), &s3.PutObjectInput{
			Bucket: aws.String("test-bucket"),
			Key:    aws.String("test-key"),
		})

		require.NoError(t, err)
		assert.Equal(t, "test-etag", *output.ETag)
	})

	t.Run("returns default when no function set", func(t *testing.T) {
		mock := &MockS3Client{}
		output, err := mock.GetObject(context.Background(), &s3.GetObjectInput{
			Bucket: aws.String("test-bucket"),
			Key:    aws.String("test-key"),
		})

		require.NoError(t, err)
		assert.NotNil(t, output)
	})

	t.Run("records calls in order", func(t *testing.T) {
		mock := &MockS3Client{}
		ctx := context.Background()
		_, _ = mock.HeadBucket(ctx, &s3.HeadBucketInput{})
		_, _ = mock.DeleteObject(ctx, &s3.DeleteObjectInput{})
		_, _ = mock.DeleteObject(ctx, &s3.DeleteObjectInput{})
		_, _ = mock.DeleteBucket(ctx, &s3.DeleteBucketInput{})

		assert.Equal(t, []string{"HeadBucket", "DeleteObject", "DeleteObject", "DeleteBucket"}, mock.Calls())
		assert.Equal(t, 2, mock.CallCount("DeleteObject"))
		assert.Zero(t, mock.CallCount("PutObject"))
	})
}

func TestFakeS3(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get round trip", func(t *testing.T) {
		fake := NewFakeS3()
		fake.AddBucket("bucket")

		_, err := fake.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String("bucket"),
			Key:         aws.String("/p/f"),
			Body:        bytes.NewReader([]byte("hello")),
			ContentType: aws.String("text/plain"),
		})
		require.NoError(t, err)

		out, err := fake.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String("bucket"), Key: aws.String("/p/f")})
		require.NoError(t, err)
		data, err := io.ReadAll(out.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.Equal(t, "text/plain", fake.ContentType("bucket", "/p/f"))
	})

	t.Run("missing bucket and key", func(t *testing.T) {
		fake := NewFakeS3()

		_, err := fake.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String("nope")})
		var notFound *types.NotFound
		assert.ErrorAs(t, err, &notFound)

		_, err = fake.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String("nope"), Key: aws.String("k")})
		var noBucket *types.NoSuchBucket
		assert.ErrorAs(t, err, &noBucket)

		fake.AddBucket("bucket")
		_, err = fake.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String("bucket"), Key: aws.String("k")})
		var noKey *types.NoSuchKey
		assert.ErrorAs(t, err, &noKey)
	})

	t.Run("pages listings with prefix", func(t *testing.T) {
		fake := NewFakeS3()
		fake.PageSize = 2
		for _, k := range []string{"a/1", "a/2", "a/3", "b/1"} {
			fake.AddObject("bucket", k, []byte(k))
		}

		var keys []string
		paginator := s3.NewListObjectsV2Paginator(fake, &s3.ListObjectsV2Input{
			Bucket: aws.String("bucket"),
			Prefix: aws.String("a/"),
		})
		pages := 0
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			require.NoError(t, err)
			pages++
			for _, obj := range page.Contents {
				keys = append(keys, aws.ToString(obj.Key))
			}
		}

		assert.Equal(t, []string{"a/1", "a/2", "a/3"}, keys)
		assert.Equal(t, 2, pages)
	})

	t.Run("refuses to delete non-empty bucket", func(t *testing.T) {
		fake := NewFakeS3()
		fake.AddObject("bucket", "k", []byte("v"))

		_, err := fake.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String("bucket")})
		require.Error(t, err)
		assert.True(t, fake.HasBucket("bucket"))
	})

	t.Run("canned ACL expands to grants", func(t *testing.T) {
		fake := NewFakeS3()
		fake.AddObject("bucket", "k", []byte("v"))

		_, err := fake.PutObjectAcl(ctx, &s3.PutObjectAclInput{
			Bucket: aws.String("bucket"),
			Key:    aws.String("k"),
			ACL:    types.ObjectCannedACLPublicRead,
		})
		require.NoError(t, err)

		out, err := fake.GetObjectAcl(ctx, &s3.GetObjectAclInput{Bucket: aws.String("bucket"), Key: aws.String("k")})
		require.NoError(t, err)
		require.Len(t, out.Grants, 2)
		assert.Equal(t, types.PermissionFullControl, out.Grants[0].Permission)
		assert.Equal(t, AllUsersURI, aws.ToString(out.Grants[1].Grantee.URI))
	})

	t.Run("injected failures", func(t *testing.T) {
		fake := NewFakeS3()
		fake.AddObject("bucket", "good", []byte("v"))
		fake.AddObject("bucket", "bad", []byte("v"))
		fake.FailOnKey("DeleteObject", "bad", APIError("AccessDenied", "Access Denied"))

		_, err := fake.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String("bucket"), Key: aws.String("good")})
		require.NoError(t, err)
		_, err = fake.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String("bucket"), Key: aws.String("bad")})
		require.Error(t, err)

		assert.Equal(t, []string{"bad"}, fake.Keys("bucket"))
		assert.Equal(t, 2, fake.CallCount("DeleteObject"))
	})

	t.Run("uses injected clock", func(t *testing.T) {
		fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		fake := NewFakeS3()
		fake.Now = func() time.Time { return fixed }
		fake.AddBucket("bucket")

		out, err := fake.ListBuckets(ctx, &s3.ListBucketsInput{})
		require.NoError(t, err)
		require.Len(t, out.Buckets, 1)
		assert.Equal(t, fixed, aws.ToTime(out.Buckets[0].CreationDate))
	})
}

func TestHelpers(t *testing.T) {
	t.Run("generates random data", func(t *testing.T) {
		data := GenerateRandomData(1024)
		assert.Len(t, data, 1024)
	})

	t.Run("generates test bucket name", func(t *testing.T) {
		name := GenerateTestBucketName("test")
		assert.Contains(t, name, "test-")
		assert.LessOrEqual(t, len(name), 63)
		assert.Regexp(t, "^[a-z0-9][a-z0-9.-]*[a-z0-9]$", name)
	})

	t.Run("creates list output", func(t *testing.T) {
		objects := []types.Object{CreateTestObject("a", 1, time.Now())}
		out := CreateListObjectsV2Output(objects, "", true)
		assert.Equal(t, "next-token", aws.ToString(out.NextContinuationToken))
		assert.Equal(t, int32(1), aws.ToInt32(out.KeyCount))
	})

	t.Run("reads and writes billy files", func(t *testing.T) {
		fs := memfs.New()
		WriteFile(t, fs, "dir/f", []byte("content"))
		assert.Equal(t, []byte("content"), ReadFile(t, fs, "dir/f"))
	})
}
