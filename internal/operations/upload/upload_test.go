package upload

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

func TestUploader_UploadFile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		localPath string
		content   []byte
		config    *s3types.UploadOptionConfig
		setupMock func(*testing.T, *testutil.MockS3Client)
		wantErr   bool
		wantKind  s3errors.Kind
		wantType  string
	}{
		{
			name:      "detects content type and sends body",
			localPath: "/src/doc.json",
			content:   []byte(`{"a": 1}`),
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.PutObjectFunc = func(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					assert.Equal(t, "bucket", aws.ToString(in.Bucket))
					assert.Equal(t, "/p/doc.json", aws.ToString(in.Key))
					assert.Equal(t, "application/json", aws.ToString(in.ContentType))
					assert.Empty(t, in.ACL)
					body, err := io.ReadAll(in.Body)
					require.NoError(t, err)
					assert.Equal(t, `{"a": 1}`, string(body))
					return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
				}
			},
			wantType: "application/json",
		},
		{
			name:      "explicit content type and acl",
			localPath: "/src/page.bin",
			content:   []byte("<html></html>"),
			config: &s3types.UploadOptionConfig{
				ContentType: "text/html",
				ACL:         s3types.ACLPublicRead,
				Metadata:    map[string]string{"owner": "me"},
			},
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.PutObjectFunc = func(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					assert.Equal(t, "text/html", aws.ToString(in.ContentType))
					assert.Equal(t, awstypes.ObjectCannedACLPublicRead, in.ACL)
					assert.Equal(t, "me", in.Metadata["owner"])
					return &s3.PutObjectOutput{}, nil
				}
			},
			wantType: "text/html",
		},
		{
			name:      "missing local file makes no request",
			localPath: "/src/missing.txt",
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.PutObjectFunc = func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					t.Fatal("PutObject must not be called")
					return nil, nil
				}
			},
			wantErr:  true,
			wantKind: s3errors.KindLocalInput,
		},
		{
			name:      "provider error is classified",
			localPath: "/src/f",
			content:   []byte("data"),
			setupMock: func(t *testing.T, m *testutil.MockS3Client) {
				m.PutObjectFunc = func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					return nil, testutil.APIError("AccessDenied", "Access Denied")
				}
			},
			wantErr:  true,
			wantKind: s3errors.KindAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			if tt.content != nil {
				testutil.WriteFile(t, fs, tt.localPath, tt.content)
			}
			mock := &testutil.MockS3Client{}
			tt.setupMock(t, mock)

			key := "/p/" + tt.localPath[strings.LastIndex(tt.localPath, "/")+1:]
			result, err := New(mock, fs).UploadFile(ctx, "bucket", key, tt.localPath, tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, s3errors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, key, result.Key)
			assert.Equal(t, int64(len(tt.content)), result.Size)
			assert.Equal(t, tt.wantType, result.ContentType)
		})
	}
}

func TestUploader_DirectoryIsNotAFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/src/dir", 0o755))

	_, err := New(&testutil.MockS3Client{}, fs).UploadFile(context.Background(), "bucket", "/dir", "/src/dir", nil)
	require.Error(t, err)
	assert.True(t, s3errors.IsInvalidInput(err))
	assert.Equal(t, "file /src/dir does not exist when uploading file", err.Error())
}

func TestUploader_MultipartRoundTrip(t *testing.T) {
	const partSize = 5 * 1024 * 1024
	data := testutil.GenerateRandomData(partSize*2 + 17)

	fs := memfs.New()
	testutil.WriteFile(t, fs, "/big.bin", data)
	fake := testutil.NewFakeS3()
	fake.AddBucket("bucket")

	_, err := New(fake, fs).UploadFile(context.Background(), "bucket", "/big.bin", "/big.bin",
		&s3types.UploadOptionConfig{PartSize: partSize})
	require.NoError(t, err)

	stored, ok := fake.Object("bucket", "/big.bin")
	require.True(t, ok)
	assert.True(t, bytes.Equal(data, stored))
	assert.Equal(t, 1, fake.CallCount("CreateMultipartUpload"))
	assert.Equal(t, 3, fake.CallCount("UploadPart"))
	assert.Equal(t, 1, fake.CallCount("CompleteMultipartUpload"))
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
		want    string
	}{
		{"png by content", "image", []byte("\x89PNG\r\n\x1a\n0000"), "image/png"},
		{"plain text keeps mimetype answer", "notes", []byte("hello"), "text/plain; charset=utf-8"},
		{"extension refines text", "style.css", []byte("body { color: red }"), "text/css"},
		{"empty file without extension", "empty", []byte{}, DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			testutil.WriteFile(t, fs, tt.file, tt.content)
			f, err := fs.Open(tt.file)
			require.NoError(t, err)
			defer f.Close()

			got, err := DetectContentType(f, tt.file)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got, tt.want), "got %q, want prefix %q", got, tt.want)

			rest, err := io.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, len(tt.content), len(rest), "file must be rewound")
		})
	}
}
