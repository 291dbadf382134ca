package list

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/testutil"
)

func TestLister_Objects(t *testing.T) {
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		prefix    *string
		setupMock func(*testing.T, *testutil.MockS3Client)
		wantKeys  []string
		wantErr   bool
	}{
		{
			name: "single page without prefix",
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.ListObjectsV2Func = func(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					assert.Nil(t, in.Prefix)
					assert.Equal(t, int32(1000), aws.ToInt32(in.MaxKeys))
					return testutil.CreateListObjectsV2Output([]types.Object{
						testutil.CreateTestObject("a.txt", 10, modified),
						testutil.CreateTestObject("b/c.txt", 20, modified),
					}, "", false), nil
				}
			},
			wantKeys: []string{"a.txt", "b/c.txt"},
		},
		{
			name:   "prefix is sent server side",
			prefix: aws.String("logs/"),
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.ListObjectsV2Func = func(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					assert.Equal(t, "logs/", aws.ToString(in.Prefix))
					return testutil.CreateListObjectsV2Output([]types.Object{
						testutil.CreateTestObject("logs/1", 1, modified),
					}, "logs/", false), nil
				}
			},
			wantKeys: []string{"logs/1"},
		},
		{
			name: "follows continuation tokens",
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.ListObjectsV2Func = func(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					if in.ContinuationToken == nil {
						return testutil.CreateListObjectsV2Output([]types.Object{
							testutil.CreateTestObject("1", 1, modified),
						}, "", true), nil
					}
					assert.Equal(t, "next-token", aws.ToString(in.ContinuationToken))
					return testutil.CreateListObjectsV2Output([]types.Object{
						testutil.CreateTestObject("2", 1, modified),
					}, "", false), nil
				}
			},
			wantKeys: []string{"1", "2"},
		},
		{
			name: "error ends the sequence",
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.ListObjectsV2Func = func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					return nil, errors.New("boom")
				}
			},
			wantErr: true,
		},
		{
			name: "empty bucket",
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.ListObjectsV2Func = func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					return testutil.CreateListObjectsV2Output(nil, "", false), nil
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &testutil.MockS3Client{}
			tt.setupMock(t, mock)

			var keys []string
			var gotErr error
			for obj, err := range New(mock).Objects(context.Background(), &Config{Bucket: "bucket", Prefix: tt.prefix}) {
				if err != nil {
					gotErr = err
					continue
				}
				keys = append(keys, obj.Key)
			}

			if tt.wantErr {
				require.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.wantKeys, keys)
		})
	}
}

func TestLister_ObjectsIsLazyAndRestartable(t *testing.T) {
	fake := testutil.NewFakeS3()
	fake.AddObject("bucket", "k1", []byte("1"))
	fake.AddObject("bucket", "k2", []byte("22"))

	seq := New(fake).Objects(context.Background(), &Config{Bucket: "bucket"})
	assert.Zero(t, fake.CallCount("ListObjectsV2"), "listing must not start before iteration")

	for pass := 0; pass < 2; pass++ {
		var sizes []int64
		for obj, err := range seq {
			require.NoError(t, err)
			sizes = append(sizes, obj.Size)
		}
		assert.Equal(t, []int64{1, 2}, sizes)
	}
	assert.Equal(t, 2, fake.CallCount("ListObjectsV2"))
}

func TestLister_StopsEarly(t *testing.T) {
	fake := testutil.NewFakeS3()
	fake.PageSize = 1
	for _, k := range []string{"a", "b", "c"} {
		fake.AddObject("bucket", k, nil)
	}

	for obj, err := range New(fake).Objects(context.Background(), &Config{Bucket: "bucket"}) {
		require.NoError(t, err)
		assert.Equal(t, "a", obj.Key)
		break
	}
	assert.Equal(t, 1, fake.CallCount("ListObjectsV2"))
}
