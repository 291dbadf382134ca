package download

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/validation"
)

const op = "downloading file"

// DefaultFileName is used when a key ends with "/".
const DefaultFileName = "file"

// S3Interface defines the S3 operations we need.
type S3Interface interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Downloader handles S3 download operations.
type Downloader struct {
	s3Client S3Interface
	fs       billy.Filesystem
}

// New creates a new Downloader writing to fs.
func New(s3Client S3Interface, fs billy.Filesystem) *Downloader {
	return &Downloader{
		s3Client: s3Client,
		fs:       fs,
	}
}

// File describes a completed download.
type File struct {
	// Name is the file name derived from the key
	Name string

	// Path is where the file was written
	Path string

	// Size is the number of bytes written
	Size int64
}

// FileName returns the last "/"-delimited segment of key, or "file" when that
// segment is empty.
func FileName(key string) string {
	name := key[strings.LastIndex(key, "/")+1:]
	if name == "" {
		return DefaultFileName
	}
	return name
}

// Download streams an object from S3 into writer and returns the bytes written.
func (d *Downloader) Download(ctx context.Context, bucket, key string, writer io.Writer) (int64, error) {
	output, err := d.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, errors.FromAPI(op, bucket, key, err)
	}
	defer output.Body.Close()

	n, err := io.Copy(writer, output.Body)
	if err != nil {
		return n, errors.NewError(op, errors.KindUnhandled, err).WithBucket(bucket).WithKey(key)
	}
	return n, nil
}

// DownloadFile writes an object to <dir>/<FileName(key)>, creating dir if needed.
// The file is created if it doesn't exist, or truncated if it does.
func (d *Downloader) DownloadFile(ctx context.Context, bucket, key, dir string) (*File, error) {
	name := FileName(key)
	if err := validation.ValidateFileName(name); err != nil {
		return nil, err
	}

	filePath := d.fs.Join(dir, name)
	if dir != "" {
		if err := d.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewError(op, errors.KindLocalInput, err).
				WithKey(key).
				WithMessage("cannot create directory " + dir + ": " + err.Error())
		}
	}

	file, err := d.fs.Create(filePath)
	if err != nil {
		return nil, errors.NewError(op, errors.KindLocalInput, err).
			WithKey(key).
			WithMessage("cannot create file " + filePath + ": " + err.Error())
	}

	n, err := d.Download(ctx, bucket, key, file)
	closeErr := file.Close()
	if err != nil {
		_ = d.fs.Remove(filePath)
		return nil, err
	}
	if closeErr != nil {
		return nil, errors.NewError(op, errors.KindLocalInput, closeErr).
			WithKey(key).
			WithMessage("cannot write file " + filePath + ": " + closeErr.Error())
	}

	return &File{Name: name, Path: filePath, Size: n}, nil
}
