package download

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/testutil"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"a/b/c.txt", "c.txt"},
		{"a/b/", "file"},
		{"c.txt", "c.txt"},
		{"/p/f", "f"},
		{"", "file"},
		{"/", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.key))
		})
	}
}

func TestDownloader_Download(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*testutil.MockS3Client)
		want      string
		wantKind  s3errors.Kind
		wantErr   bool
	}{
		{
			name: "streams body",
			setupMock: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return testutil.CreateGetObjectOutput([]byte("payload:"+aws.ToString(in.Key)), "text/plain"), nil
				}
			},
			want: "payload:k",
		},
		{
			name: "missing key",
			setupMock: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return nil, testutil.APIError("NoSuchKey", "The specified key does not exist.")
				}
			},
			wantErr:  true,
			wantKind: s3errors.KindNotFound,
		},
		{
			name: "transport failure",
			setupMock: func(m *testutil.MockS3Client) {
				m.GetObjectFunc = func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return nil, errors.New("connection reset")
				}
			},
			wantErr:  true,
			wantKind: s3errors.KindUnhandled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &testutil.MockS3Client{}
			tt.setupMock(mock)

			var buf bytes.Buffer
			n, err := New(mock, memfs.New()).Download(context.Background(), "bucket", "k", &buf)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, s3errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, int64(len(tt.want)), n)
		})
	}
}

func TestDownloader_DownloadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("writes basename into directory", func(t *testing.T) {
		fake := testutil.NewFakeS3()
		fake.AddObject("bucket", "/p/f", []byte("contents"))
		fs := memfs.New()

		file, err := New(fake, fs).DownloadFile(ctx, "bucket", "/p/f", "d")
		require.NoError(t, err)
		assert.Equal(t, "f", file.Name)
		assert.Equal(t, fs.Join("d", "f"), file.Path)
		assert.Equal(t, int64(8), file.Size)
		assert.Equal(t, []byte("contents"), testutil.ReadFile(t, fs, file.Path))
	})

	t.Run("directory key downloads as file", func(t *testing.T) {
		fake := testutil.NewFakeS3()
		fake.AddObject("bucket", "a/b/", []byte{})
		fs := memfs.New()

		file, err := New(fake, fs).DownloadFile(ctx, "bucket", "a/b/", "out")
		require.NoError(t, err)
		assert.Equal(t, "file", file.Name)
		assert.Empty(t, testutil.ReadFile(t, fs, fs.Join("out", "file")))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		fake := testutil.NewFakeS3()
		fake.AddObject("bucket", "x.txt", []byte("new"))
		fs := memfs.New()
		testutil.WriteFile(t, fs, "d/x.txt", []byte("old and longer"))

		_, err := New(fake, fs).DownloadFile(ctx, "bucket", "x.txt", "d")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), testutil.ReadFile(t, fs, "d/x.txt"))
	})

	t.Run("provider failure leaves no file", func(t *testing.T) {
		fake := testutil.NewFakeS3()
		fake.AddBucket("bucket")
		fs := memfs.New()

		_, err := New(fake, fs).DownloadFile(ctx, "bucket", "missing.txt", "d")
		require.Error(t, err)
		assert.True(t, s3errors.IsNotFound(err))

		_, statErr := fs.Stat("d/missing.txt")
		assert.Error(t, statErr)
	})

	t.Run("keeps backslash in the file name", func(t *testing.T) {
		if filepath.Separator != '/' {
			t.Skip("backslash separates paths on this platform")
		}
		fake := testutil.NewFakeS3()
		fake.AddObject("bucket", `dir\file.txt`, []byte("contents"))
		fs := memfs.New()

		file, err := New(fake, fs).DownloadFile(ctx, "bucket", `dir\file.txt`, "d")
		require.NoError(t, err)
		assert.Equal(t, `dir\file.txt`, file.Name)
		assert.Equal(t, []byte("contents"), testutil.ReadFile(t, fs, file.Path))
	})

	t.Run("rejects dot segment", func(t *testing.T) {
		fake := testutil.NewFakeS3()
		_, err := New(fake, memfs.New()).DownloadFile(ctx, "bucket", "a/..", "d")
		require.Error(t, err)
		assert.True(t, s3errors.IsInvalidInput(err))
		assert.Zero(t, fake.CallCount("GetObject"))
	})
}
