package s3tool

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/copy"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/download"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/operations/upload"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// FileName returns the local file name a key downloads to: the last
// "/"-delimited segment of key, or "file" when that segment is empty.
//
//	FileName("a/b/c.txt") // "c.txt"
//	FileName("a/b/")      // "file"
func FileName(key string) string {
	return download.FileName(key)
}

// DownloadFile writes the content of key to <dir>/<FileName(key)> on the
// connection's filesystem, creating dir when missing.
func DownloadFile(ctx context.Context, key KeyResult, dir string) s3types.DownloadEntry {
	k, err := key.Get()
	if err != nil {
		return s3types.DownloadEntry{KeyName: aws.String(key.Name()), Message: message(err)}
	}
	return downloadKey(ctx, k, dir)
}

// DownloadFiles downloads every key of listing whose name matches pattern
// (every key when pattern is empty) into dir.
//
// Each key is downloaded independently: a failing key produces an entry with
// a message and the remaining keys are still downloaded. An empty match
// yields a single entry with the message "No key found".
func DownloadFiles(ctx context.Context, listing ListingResult, dir, pattern string) []s3types.DownloadEntry {
	var match *regexp.Regexp
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			e := s3errors.NewInputError("downloading file", fmt.Sprintf("pattern %q is not a valid regular expression", pattern))
			return []s3types.DownloadEntry{{Message: message(e)}}
		}
		match = re
	}

	l, err := listing.Get()
	if err != nil {
		return []s3types.DownloadEntry{{Message: message(err)}}
	}

	var entries []s3types.DownloadEntry
	for k, err := range l.Keys(ctx) {
		if err != nil {
			entries = append(entries, s3types.DownloadEntry{Message: message(err)})
			break
		}
		if match != nil && !match.MatchString(k.Name()) {
			continue
		}
		entries = append(entries, downloadKey(ctx, k, dir))
	}

	if len(entries) == 0 {
		return []s3types.DownloadEntry{{Message: aws.String(NoKeyFound)}}
	}
	return entries
}

func downloadKey(ctx context.Context, k *Key, dir string) s3types.DownloadEntry {
	b := k.bucket
	entry := s3types.DownloadEntry{
		KeyName:  aws.String(k.Name()),
		FileName: aws.String(FileName(k.Name())),
	}

	file, err := download.New(b.conn.api, b.conn.fs).DownloadFile(ctx, b.name, k.Name(), dir)
	if err != nil {
		b.conn.logger.WarnContext(ctx, "failed to download key", "bucket", b.name, "key", k.Name(), "error", err)
		entry.Message = message(err)
		return entry
	}

	entry.FilePath = aws.String(file.Path)
	entry.IsDownloaded = true
	return entry
}

// UploadFile uploads the local file at localPath to bucket under
// <prefix>/<file name>. The prefix always starts with "/"; an empty prefix
// uploads to "/<file name>".
//
// Errors reported in Message:
//   - LocalInputError: the local file does not exist, or an option is invalid
//   - NotFound: the bucket does not exist
//   - AccessDenied or ProtocolError: the provider rejected the upload
func UploadFile(
	ctx context.Context,
	conn ConnectionResult,
	localPath, bucket, prefix string,
	opts ...s3types.UploadOption,
) s3types.Upload {
	fileName := filepath.Base(localPath)
	key := validation.UploadKey(prefix, fileName)
	res := s3types.Upload{
		BucketName: bucket,
		KeyName:    aws.String(key),
		FileName:   fileName,
	}

	c, err := conn.Get()
	if err != nil {
		res.Message = message(err)
		return res
	}

	config := newUploadConfig(opts)
	if err := validateUpload(key, config); err != nil {
		res.Message = message(err)
		return res
	}

	if _, err := upload.New(c.api, c.fs).UploadFile(ctx, bucket, key, localPath, config); err != nil {
		c.logger.ErrorContext(ctx, "failed to upload file",
			"bucket", bucket,
			"key", key,
			"path", localPath,
			"error", err)
		res.Message = message(err)
		return res
	}

	res.IsUploaded = true
	return res
}

func validateUpload(key string, config *s3types.UploadOptionConfig) error {
	if err := validation.ValidateObjectKey(key); err != nil {
		return err
	}
	if config.ACL != "" {
		if _, err := validation.ValidateCannedACL(string(config.ACL)); err != nil {
			return err
		}
	}
	if err := validation.ValidateContentType(config.ContentType); err != nil {
		return err
	}
	config.Metadata = validation.SanitizeMetadata(config.Metadata)
	return validation.ValidateMetadata(config.Metadata)
}

// CopyFile copies srcKey of srcBucket to dstKey of dstBucket on the server
// side and applies the source ACL to the copy. An empty dstKey keeps the
// source key name.
//
// The copy fails without any write when the source key or the destination
// bucket cannot be resolved.
func CopyFile(
	ctx context.Context,
	conn ConnectionResult,
	srcBucket, srcKey, dstBucket, dstKey string,
) s3types.Copy {
	if dstKey == "" {
		dstKey = srcKey
	}
	res := s3types.Copy{
		SrcBucketName: srcBucket,
		SrcKeyName:    srcKey,
		DstBucketName: dstBucket,
		DstKeyName:    dstKey,
	}

	src, err := ResolveKey(ctx, ResolveBucket(ctx, conn, srcBucket), srcKey).Get()
	if err != nil {
		res.Message = message(err)
		return res
	}

	dst, err := ResolveBucket(ctx, conn, dstBucket).Get()
	if err != nil {
		res.Message = message(err)
		return res
	}

	c := dst.conn
	if err := copy.NewCopier(c.api).Copy(ctx, src.bucket.name, src.Name(), dst.name, dstKey); err != nil {
		c.logger.ErrorContext(ctx, "failed to copy key",
			"src_bucket", srcBucket,
			"src_key", srcKey,
			"dst_bucket", dstBucket,
			"dst_key", dstKey,
			"error", err)
		res.Message = message(err)
		return res
	}

	res.IsCopied = true
	return res
}
