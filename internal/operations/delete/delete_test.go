package delete

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/testutil"
)

func TestDeleter_DeletePrefix(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		prefix      *string
		failKeys    []string
		wantDeleted []string
		wantLeft    []string
		wantErr     bool
	}{
		{
			name:        "all keys",
			wantDeleted: []string{"a/1", "a/2", "b/1"},
		},
		{
			name:        "prefix only",
			prefix:      aws.String("a/"),
			wantDeleted: []string{"a/1", "a/2"},
			wantLeft:    []string{"b/1"},
		},
		{
			name:        "failures do not stop siblings",
			failKeys:    []string{"a/2"},
			wantDeleted: []string{"a/1", "b/1"},
			wantLeft:    []string{"a/2"},
			wantErr:     true,
		},
		{
			name:     "nothing matches",
			prefix:   aws.String("zzz"),
			wantLeft: []string{"a/1", "a/2", "b/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeS3()
			for _, k := range []string{"a/1", "a/2", "b/1"} {
				fake.AddObject("bucket", k, []byte(k))
			}
			for _, k := range tt.failKeys {
				fake.FailOnKey("DeleteObject", k, testutil.APIError("AccessDenied", "Access Denied"))
			}

			result, err := New(fake).DeletePrefix(ctx, "bucket", tt.prefix)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDeleted, result.Deleted)
			assert.Equal(t, len(tt.wantDeleted)+len(tt.failKeys), result.Matched)
			if tt.wantLeft == nil {
				assert.Empty(t, fake.Keys("bucket"))
			} else {
				assert.Equal(t, tt.wantLeft, fake.Keys("bucket"))
			}
			if tt.wantErr {
				require.Error(t, result.Err)
				assert.True(t, s3errors.IsAccessDenied(result.Err))
				assert.Contains(t, result.Err.Error(), "when deleting key")
			} else {
				assert.NoError(t, result.Err)
			}
		})
	}
}

func TestDeleter_ListingFailureDeletesNothing(t *testing.T) {
	fake := testutil.NewFakeS3()
	fake.AddObject("bucket", "k", []byte("v"))
	fake.FailOn("ListObjectsV2", testutil.APIError("InternalError", "We encountered an internal error"))

	result, err := New(fake).DeletePrefix(context.Background(), "bucket", nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, s3errors.KindProtocol, s3errors.KindOf(err))
	assert.Zero(t, fake.CallCount("DeleteObject"))
}

func TestDeleter_DeleteKey(t *testing.T) {
	fake := testutil.NewFakeS3()
	fake.AddObject("bucket", "k", []byte("v"))

	require.NoError(t, New(fake).DeleteKey(context.Background(), "bucket", "k"))
	_, ok := fake.Object("bucket", "k")
	assert.False(t, ok)

	err := New(fake).DeleteKey(context.Background(), "missing", "k")
	require.Error(t, err)
	assert.True(t, s3errors.IsNotFound(err))
}
