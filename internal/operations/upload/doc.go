// Package upload handles S3 object upload operations.
// Local files are read from a billy filesystem and sent through the
// aws-sdk-go-v2 transfer manager, which switches to multipart uploads for
// large files on its own.
package upload
