// Package s3tool is a small facade over an S3-compatible object store.
//
// Work flows strictly downward: credentials are turned into a connection,
// a connection resolves buckets, a bucket resolves keys or lists them, and an
// operation turns resolved handles into a flat, JSON-serializable record.
//
// Every resolution step returns a result union (ConnectionResult,
// BucketResult, KeyResult, ListingResult) that holds either a handle or an
// error, never both. A step given a failed upstream result forwards the same
// error without contacting the store, so one lookup failure is reported by
// every operation built on it.
//
// Operations never return a Go error. Failures are data: each record carries
// a Message that is nil exactly when the operation fully succeeded.
//
// Example usage:
//
//	conn := s3tool.Connect(ctx, s3types.Credentials{
//	    AccessKeyID:     id,
//	    SecretAccessKey: secret,
//	})
//
//	bucket := s3tool.ResolveBucket(ctx, conn, "my-bucket")
//	entries := s3tool.ListKeyEntries(ctx, s3tool.ListKeys(bucket, nil))
//
//	key := s3tool.ResolveKey(ctx, bucket, "/reports/2024.csv")
//	download := s3tool.DownloadFile(ctx, key, "out")
//	if download.Message != nil {
//	    log.Println(*download.Message)
//	}
package s3tool
