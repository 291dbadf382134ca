//go:build integration
// +build integration

package s3tool

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// TestIntegrationOperations runs every operation against LocalStack.
func TestIntegrationOperations(t *testing.T) {
	ctx := context.Background()
	creds := testutil.SetupLocalStackTest(t)

	conn := Connect(ctx, creds, WithConnectionCheck())
	require.NoError(t, conn.Err())

	bucketName := testutil.GenerateTestBucketName("integration")
	t.Cleanup(func() {
		c, err := conn.Get()
		if err != nil || !LookupBucket(ctx, conn, bucketName).IsExists {
			return
		}
		if err := testutil.CleanupTestBucket(ctx, c.api, bucketName); err != nil {
			t.Logf("Failed to clean up bucket %s: %v", bucketName, err)
		}
	})

	t.Run("Connection test", func(t *testing.T) {
		res := TestConnection(ctx, conn)
		assert.True(t, res.IsConnected)
		assert.Equal(t, creds.Region, res.Region)
	})

	t.Run("Create bucket twice", func(t *testing.T) {
		first := CreateBucket(ctx, conn, bucketName, "")
		require.True(t, first.IsCreated, aws.ToString(first.Message))

		second := CreateBucket(ctx, conn, bucketName, "")
		assert.False(t, second.IsCreated)
		assert.Equal(t, "Bucket "+bucketName+" already exists", aws.ToString(second.Message))

		found := false
		for _, entry := range ListBuckets(ctx, conn) {
			found = found || aws.ToString(entry.Name) == bucketName
		}
		assert.True(t, found)
	})

	dir := t.TempDir()
	content := testutil.GenerateRandomData(64 * 1024)
	localPath := filepath.Join(dir, "report.bin")
	require.NoError(t, os.WriteFile(localPath, content, 0o644))

	t.Run("Upload, list and download", func(t *testing.T) {
		up := UploadFile(ctx, conn, localPath, bucketName, "p")
		require.True(t, up.IsUploaded, aws.ToString(up.Message))
		assert.Equal(t, "/p/report.bin", aws.ToString(up.KeyName))

		bucket := ResolveBucket(ctx, conn, bucketName)
		entries := ListKeyEntries(ctx, ListKeys(bucket, aws.String("/p/")))
		require.Len(t, entries, 1)
		assert.Equal(t, int64(len(content)), aws.ToInt64(entries[0].Size))

		outDir := filepath.Join(dir, "out")
		down := DownloadFile(ctx, ResolveKey(ctx, bucket, "/p/report.bin"), outDir)
		require.True(t, down.IsDownloaded, aws.ToString(down.Message))
		assert.Equal(t, filepath.Join(outDir, "report.bin"), aws.ToString(down.FilePath))

		data, err := os.ReadFile(aws.ToString(down.FilePath))
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})

	t.Run("ACL and copy", func(t *testing.T) {
		bucket := ResolveBucket(ctx, conn, bucketName)
		grants := SetKeyACL(ctx, ResolveKey(ctx, bucket, "/p/report.bin"), string(s3types.ACLPublicRead))
		require.Nil(t, grants[0].Message)
		assert.GreaterOrEqual(t, len(grants), 2)

		res := CopyFile(ctx, conn, bucketName, "/p/report.bin", bucketName, "/copy/report.bin")
		require.True(t, res.IsCopied, aws.ToString(res.Message))

		copied := GetKeyACL(ctx, ResolveKey(ctx, bucket, "/copy/report.bin"))
		assert.Len(t, copied, len(grants))
	})

	t.Run("Presigned URL", func(t *testing.T) {
		key := ResolveKey(ctx, ResolveBucket(ctx, conn, bucketName), "/p/report.bin")
		res := GeneratePresignedURL(ctx, key, 300)
		require.NotNil(t, res.URL, aws.ToString(res.Message))

		resp, err := http.Get(*res.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, content, body)
	})

	t.Run("Delete keys and bucket", func(t *testing.T) {
		bucket := ResolveBucket(ctx, conn, bucketName)
		res := DeleteKeys(ctx, bucket, nil, aws.String("/copy/"))
		assert.Equal(t, 1, res.NumKeys)

		deletion := DeleteBucket(ctx, conn, bucketName)
		assert.True(t, deletion.IsDeleted, aws.ToString(deletion.Message))
		assert.Equal(t, 1, deletion.NumKeys)
		assert.False(t, LookupBucket(ctx, conn, bucketName).IsExists)
	})
}

// TestIntegrationBadCredentials checks that a rejected connection check is a connection error.
func TestIntegrationBadCredentials(t *testing.T) {
	creds := testutil.SetupLocalStackTest(t)
	creds.SecretAccessKey = ""

	conn := Connect(context.Background(), creds, WithConnectionCheck())

	assert.Equal(t, "connection error", conn.Err().Error())
}
