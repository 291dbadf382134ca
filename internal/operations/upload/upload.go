package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

const op = "uploading file"

// DefaultContentType is used when content sniffing and the file extension
// both fail to identify a type.
const DefaultContentType = "application/octet-stream"

// sniffLen is how many leading bytes are read for content detection.
const sniffLen = 512

// Uploader handles S3 upload operations.
type Uploader struct {
	client manager.UploadAPIClient
	fs     billy.Filesystem
}

// New creates a new Uploader reading local files from fs.
func New(client manager.UploadAPIClient, fs billy.Filesystem) *Uploader {
	return &Uploader{
		client: client,
		fs:     fs,
	}
}

// Result describes a completed upload.
type Result struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// UploadFile uploads the local file at localPath to bucket under key.
// A missing or unreadable local file fails with a LocalInputError before any
// request is made.
func (u *Uploader) UploadFile(
	ctx context.Context,
	bucket, key, localPath string,
	config *s3types.UploadOptionConfig,
) (*Result, error) {
	info, err := u.fs.Stat(localPath)
	if err != nil || info.IsDir() {
		return nil, errors.NewInputError(op, fmt.Sprintf("file %s does not exist", localPath)).WithKey(key)
	}

	file, err := u.fs.Open(localPath)
	if err != nil {
		return nil, errors.NewError(op, errors.KindLocalInput, err).
			WithKey(key).
			WithMessage(fmt.Sprintf("cannot open file %s: %v", localPath, err))
	}
	defer file.Close()

	if config == nil {
		config = &s3types.UploadOptionConfig{}
	}
	contentType := config.ContentType
	if contentType == "" {
		if contentType, err = DetectContentType(file, localPath); err != nil {
			return nil, errors.NewError(op, errors.KindLocalInput, err).
				WithKey(key).
				WithMessage(fmt.Sprintf("cannot read file %s: %v", localPath, err))
		}
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	}
	if config.ACL != "" {
		input.ACL = awstypes.ObjectCannedACL(config.ACL)
	}
	if len(config.Metadata) > 0 {
		input.Metadata = config.Metadata
	}

	uploader := manager.NewUploader(u.client, func(mu *manager.Uploader) {
		if config.PartSize > 0 {
			mu.PartSize = max(config.PartSize, manager.MinUploadPartSize)
		}
		mu.Concurrency = 1
	})

	output, err := uploader.Upload(ctx, input)
	if err != nil {
		return nil, errors.FromAPI(op, bucket, key, err)
	}

	return &Result{
		Key:         key,
		Size:        info.Size(),
		ETag:        aws.ToString(output.ETag),
		ContentType: contentType,
	}, nil
}

// DetectContentType sniffs the first bytes of file with mimetype, falling
// back to the extension of name. The file is rewound before returning.
func DetectContentType(file billy.File, name string) (string, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if n > 0 {
		// mimetype reports text/plain or application/octet-stream when it has
		// no better match, let the extension refine those.
		mt := mimetype.Detect(buf[:n])
		if !mt.Is("application/octet-stream") && !mt.Is("text/plain") {
			return mt.String(), nil
		}
		if byExt := contentTypeFromExtension(name); byExt != "" {
			return byExt, nil
		}
		return mt.String(), nil
	}

	if byExt := contentTypeFromExtension(name); byExt != "" {
		return byExt, nil
	}
	return DefaultContentType, nil
}

func contentTypeFromExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}
