package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

var mimePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-+.]*\/[a-zA-Z0-9][a-zA-Z0-9\-+.]*(\s*;.*)?$`)

// ValidateCannedACL checks permission against the canned ACLs in s3types.CannedACLs.
func ValidateCannedACL(permission string) (s3types.CannedACL, error) {
	for _, acl := range s3types.CannedACLs {
		if string(acl) == permission {
			return acl, nil
		}
	}

	names := make([]string, len(s3types.CannedACLs))
	for i, acl := range s3types.CannedACLs {
		names[i] = string(acl)
	}
	return "", errors.NewInputError("setting acl",
		fmt.Sprintf("permission %q must be one of: %s", permission, strings.Join(names, ", ")))
}

// LookupLocation resolves a location given by name ("EU") or by constraint
// ("eu-central-1"). The empty string resolves to the default location.
func LookupLocation(location string) (s3types.Location, error) {
	if location == "" {
		return s3types.Locations[0], nil
	}

	for _, loc := range s3types.Locations {
		if loc.Name == location || (loc.Constraint != "" && loc.Constraint == location) {
			return loc, nil
		}
	}
	if location == s3types.DefaultRegion {
		return s3types.Locations[0], nil
	}

	return s3types.Location{}, errors.NewInputError("creating bucket",
		fmt.Sprintf("location %s is not a known location", location))
}

// ValidateBucketName validates that a bucket name is DNS-compliant according to AWS S3 rules.
// It is applied to names of buckets about to be created; existing buckets are
// looked up by whatever name the store accepts.
func ValidateBucketName(bucket string) error {
	if err := validateBucketNameBasics(bucket); err != nil {
		return err
	}

	if err := validateBucketNameCharacters(bucket); err != nil {
		return err
	}

	if err := validateBucketNameStructure(bucket); err != nil {
		return err
	}

	return nil
}

// ValidateObjectKey validates that an object key can be written.
// Leading slashes are allowed, uploads produce keys such as "/p/f".
func ValidateObjectKey(key string) error {
	if key == "" {
		return keyError(key, "object key cannot be empty")
	}

	// S3 supports keys up to 1024 bytes
	if len(key) > 1024 {
		return keyError(key, "object key cannot exceed 1024 characters")
	}

	if hasControlCharacters(key) {
		return keyError(key, "object key cannot contain control characters")
	}

	return nil
}

// ValidateFileName checks that a local file name derived from a key stays
// inside its destination directory. A backslash is only rejected where it
// separates paths.
func ValidateFileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsFunc(name, isPathSeparator) {
		return errors.NewInputError("downloading file", fmt.Sprintf("file name %q is not usable", name))
	}
	return nil
}

// NormalizePrefix returns prefix with a leading slash. An empty prefix becomes "/".
func NormalizePrefix(prefix string) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

// UploadKey joins a normalized prefix and a file name into a destination key.
// The prefix is kept as given apart from the leading slash and a single
// trailing slash: "a//b" stays "/a//b/<file>".
func UploadKey(prefix, fileName string) string {
	return strings.TrimSuffix(NormalizePrefix(prefix), "/") + "/" + fileName
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// SanitizeMetadata sanitizes metadata values to prevent injection attacks.
// This removes or escapes potentially dangerous characters.
func SanitizeMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}

	sanitized := make(map[string]string, len(metadata))
	for key, value := range metadata {
		sanitized[sanitizeMetadataKey(key)] = sanitizeMetadataValue(value)
	}

	return sanitized
}

// ValidateMetadata validates metadata keys and values according to S3 rules.
func ValidateMetadata(metadata map[string]string) error {
	for key, value := range metadata {
		if err := validateMetadataKey(key); err != nil {
			return err
		}
		if err := validateMetadataValue(value); err != nil {
			return err
		}
	}

	return nil
}

// ValidateContentType validates that a content type is a MIME type
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if !mimePattern.MatchString(contentType) {
		return errors.NewInputError("uploading file", "content type must be a valid MIME type")
	}

	return nil
}

func bucketError(bucket, message string) error {
	return errors.NewInputError("validating bucket name", message).WithBucket(bucket)
}

func keyError(key, message string) error {
	return errors.NewInputError("validating key", message).WithKey(key)
}

// validateBucketNameBasics validates basic bucket name requirements
func validateBucketNameBasics(bucket string) error {
	if bucket == "" {
		return bucketError(bucket, "bucket name cannot be empty")
	}

	// Bucket names must be between 3 and 63 characters long
	if len(bucket) < 3 || len(bucket) > 63 {
		return bucketError(bucket, "bucket name must be between 3 and 63 characters long")
	}

	return nil
}

// validateBucketNameCharacters validates allowed characters in bucket names
func validateBucketNameCharacters(bucket string) error {
	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return bucketError(bucket, "bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	return nil
}

// validateBucketNameStructure validates bucket name structural requirements
func validateBucketNameStructure(bucket string) error {
	first, last := bucket[0], bucket[len(bucket)-1]
	if first == '-' || first == '.' || last == '-' || last == '.' {
		return bucketError(bucket, "bucket name cannot start or end with a hyphen or dot")
	}

	if isIPAddress(bucket) {
		return bucketError(bucket, "bucket name cannot be formatted as an IP address")
	}

	if strings.Contains(bucket, "..") {
		return bucketError(bucket, "bucket name cannot contain two adjacent periods")
	}

	if bucket == "localhost" {
		return bucketError(bucket, "bucket name cannot be a reserved word")
	}

	return nil
}

// isValidBucketChar checks if a character is valid in a bucket name
func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '.' || char == '-'
}

// isIPAddress checks if a string is formatted as an IPv4 address
func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		num := 0
		for _, char := range part {
			if char < '0' || char > '9' {
				return false
			}
			num = num*10 + int(char-'0')
		}
		if num > 255 {
			return false
		}
	}

	return true
}

// hasControlCharacters checks for control characters in the key
func hasControlCharacters(key string) bool {
	for _, char := range key {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}

// sanitizeMetadataKey removes non-printable characters
func sanitizeMetadataKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, key)
}

// sanitizeMetadataValue removes control characters but keeps newlines and tabs
func sanitizeMetadataValue(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, value)
}

// validateMetadataKey validates a metadata key according to S3 rules
func validateMetadataKey(key string) error {
	if key == "" {
		return errors.NewInputError("uploading file", "metadata key cannot be empty")
	}

	if len(key) > 128 {
		return errors.NewInputError("uploading file", "metadata key cannot exceed 128 characters")
	}

	for _, prefix := range []string{"aws:", "x-amz-", "x-amz:"} {
		if strings.HasPrefix(strings.ToLower(key), prefix) {
			return errors.NewInputError("uploading file",
				fmt.Sprintf("metadata key cannot start with reserved prefix: %s", prefix))
		}
	}

	for _, char := range key {
		if char < 33 || char > 126 {
			return errors.NewInputError("uploading file", "metadata key can only contain printable ASCII characters")
		}
	}

	return nil
}

// validateMetadataValue validates a metadata value according to S3 rules
func validateMetadataValue(value string) error {
	if len(value) > 2048 {
		return errors.NewInputError("uploading file", "metadata value cannot exceed 2048 characters")
	}

	for _, char := range value {
		if !unicode.IsPrint(char) && char != '\n' && char != '\t' {
			return errors.NewInputError("uploading file", "metadata value can only contain printable characters")
		}
	}

	return nil
}
