// Package acl reads and applies S3 access control lists for buckets and keys.
package acl
