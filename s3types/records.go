package s3types

import "time"

// Response records are flat and JSON-serializable. Message is null exactly
// when the operation fully succeeded.

// BucketLookup is the result of lookup-bucket.
type BucketLookup struct {
	BucketName string  `json:"bucket_name"`
	IsExists   bool    `json:"is_exists"`
	Message    *string `json:"message"`
}

// KeyLookup is the result of lookup-key.
type KeyLookup struct {
	BucketName string  `json:"bucket_name"`
	KeyName    string  `json:"key_name"`
	IsExists   bool    `json:"is_exists"`
	Message    *string `json:"message"`
}

// BucketEntry is one element of list-buckets.
type BucketEntry struct {
	Name    *string    `json:"name"`
	Created *time.Time `json:"created"`
	Message *string    `json:"message"`
}

// KeyEntry is one element of list-keys.
type KeyEntry struct {
	KeyName  *string    `json:"key_name"`
	Size     *int64     `json:"size"`
	Modified *time.Time `json:"modified"`
	Message  *string    `json:"message"`
}

// Grant is one access-control grant. A failure is reported as a single Grant
// whose other fields are null.
type Grant struct {
	Permission   *string `json:"permission"`
	DisplayName  *string `json:"display_name"`
	EmailAddress *string `json:"email_address"`
	ID           *string `json:"id"`
	Message      *string `json:"message"`
}

// BucketCreation is the result of create-bucket.
type BucketCreation struct {
	BucketName string  `json:"bucket_name"`
	IsCreated  bool    `json:"is_created"`
	Location   string  `json:"location"`
	Message    *string `json:"message"`
}

// BucketDeletion is the result of delete-bucket. NumKeys counts the keys
// deleted before the bucket itself.
type BucketDeletion struct {
	BucketName string  `json:"bucket_name"`
	IsDeleted  bool    `json:"is_deleted"`
	NumKeys    int     `json:"num_keys"`
	Message    *string `json:"message"`
}

// KeyDeletion is the result of delete-keys. NumKeys is 0 when nothing
// matched and -1 when the provider reported an error.
type KeyDeletion struct {
	BucketName string   `json:"bucket_name"`
	KeyName    *string  `json:"key_name"`
	Prefix     *string  `json:"prefix"`
	NumKeys    int      `json:"num_keys"`
	Keys       []string `json:"keys"`
	Message    *string  `json:"message"`
}

// DownloadEntry is the result of downloading one key.
type DownloadEntry struct {
	KeyName      *string `json:"key_name"`
	FileName     *string `json:"file_name"`
	FilePath     *string `json:"file_path"`
	IsDownloaded bool    `json:"is_downloaded"`
	Message      *string `json:"message"`
}

// Upload is the result of upload-file.
type Upload struct {
	BucketName string  `json:"bucket_name"`
	KeyName    *string `json:"key_name"`
	FileName   string  `json:"file_name"`
	IsUploaded bool    `json:"is_uploaded"`
	Message    *string `json:"message"`
}

// Copy is the result of copy-file.
type Copy struct {
	SrcBucketName string  `json:"src_bucket_name"`
	SrcKeyName    string  `json:"src_key_name"`
	DstBucketName string  `json:"dst_bucket_name"`
	DstKeyName    string  `json:"dst_key_name"`
	IsCopied      bool    `json:"is_copied"`
	Message       *string `json:"message"`
}

// PresignedURL is the result of generate-url.
type PresignedURL struct {
	BucketName *string `json:"bucket_name"`
	KeyName    *string `json:"key_name"`
	Seconds    int64   `json:"seconds"`
	URL        *string `json:"url"`
	Message    *string `json:"message"`
}

// Connect is the result of connect-test.
type Connect struct {
	IsConnected     bool    `json:"is_connected"`
	Region          string  `json:"region"`
	AddressingStyle string  `json:"addressing_style"`
	Message         *string `json:"message"`
}
