package testutil

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/s3api"
)

// FakeOwnerID is the canonical user id owning every fake bucket and object.
const FakeOwnerID = "fake-owner-id"

// FakeS3 is an in-memory object store implementing s3api.S3API.
// It keeps enough state for round trips (upload then download, copy with
// ACLs, delete then list) and lets tests inject per-operation failures.
type FakeS3 struct {
	// PageSize caps ListObjectsV2 pages. Zero means 1000.
	PageSize int

	// Now returns the timestamp recorded on writes. Nil means time.Now.
	Now func() time.Time

	mu      sync.Mutex
	buckets map[string]*fakeBucket
	uploads map[string]*fakeUpload
	fail    map[string]error
	failKey map[string]error
	calls   []string
	nextID  int
}

type fakeBucket struct {
	created time.Time
	region  string
	grants  []types.Grant
	objects map[string]*fakeObject
}

type fakeObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
	grants      []types.Grant
}

type fakeUpload struct {
	bucket, key string
	contentType string
	acl         types.ObjectCannedACL
	parts       map[int32][]byte
}

// NewFakeS3 creates an empty fake store.
func NewFakeS3() *FakeS3 {
	return &FakeS3{
		buckets: make(map[string]*fakeBucket),
		uploads: make(map[string]*fakeUpload),
		fail:    make(map[string]error),
		failKey: make(map[string]error),
	}
}

// AddBucket creates a bucket directly, bypassing CreateBucket.
func (f *FakeS3) AddBucket(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[name] = &fakeBucket{
		created: f.now(),
		grants:  cannedGrants(types.ObjectCannedACLPrivate),
		objects: make(map[string]*fakeObject),
	}
}

// AddObject stores an object directly, creating the bucket if needed.
func (f *FakeS3) AddObject(bucket, key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		b = &fakeBucket{
			created: f.now(),
			grants:  cannedGrants(types.ObjectCannedACLPrivate),
			objects: make(map[string]*fakeObject),
		}
		f.buckets[bucket] = b
	}
	b.objects[key] = &fakeObject{
		data:     append([]byte(nil), data...),
		modified: f.now(),
		grants:   cannedGrants(types.ObjectCannedACLPrivate),
	}
}

// Object returns a copy of the stored object bytes.
func (f *FakeS3) Object(bucket, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		return nil, false
	}
	obj, ok := b.objects[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), obj.data...), true
}

// ContentType returns the stored content type of an object.
func (f *FakeS3) ContentType(bucket, key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.buckets[bucket]; ok {
		if obj, ok := b.objects[key]; ok {
			return obj.contentType
		}
	}
	return ""
}

// HasBucket reports whether the bucket exists.
func (f *FakeS3) HasBucket(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.buckets[name]
	return ok
}

// Keys returns the sorted keys of a bucket.
func (f *FakeS3) Keys(bucket string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.buckets[bucket]
	if !ok {
		return nil
	}
	return sortedKeys(b.objects)
}

// BucketRegion returns the LocationConstraint a bucket was created with.
func (f *FakeS3) BucketRegion(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.buckets[name]; ok {
		return b.region
	}
	return ""
}

// FailOn makes every call of op return err.
func (f *FakeS3) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

// FailOnKey makes op return err only for the given key.
func (f *FakeS3) FailOnKey(op, key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failKey[op+"\x00"+key] = err
}

// Calls returns the names of the operations invoked so far.
func (f *FakeS3) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times op was invoked.
func (f *FakeS3) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// APIError builds a provider fault as the SDK would surface it.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message, Fault: smithy.FaultClient}
}

func (f *FakeS3) now() time.Time {
	if f.Now != nil {
		return f.Now().UTC()
	}
	return time.Now().UTC()
}

// begin records op and returns an injected failure. Callers hold f.mu.
func (f *FakeS3) begin(op string, key *string) error {
	f.calls = append(f.calls, op)
	if key != nil {
		if err, ok := f.failKey[op+"\x00"+aws.ToString(key)]; ok {
			return err
		}
	}
	return f.fail[op]
}

func (f *FakeS3) bucket(name *string) (*fakeBucket, error) {
	b, ok := f.buckets[aws.ToString(name)]
	if !ok {
		return nil, &types.NoSuchBucket{Message: aws.String("The specified bucket does not exist")}
	}
	return b, nil
}

func (f *FakeS3) object(bucket, key *string) (*fakeObject, error) {
	b, err := f.bucket(bucket)
	if err != nil {
		return nil, err
	}
	obj, ok := b.objects[aws.ToString(key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return obj, nil
}

// ListBuckets lists the buckets in name order.
func (f *FakeS3) ListBuckets(
	_ context.Context,
	_ *s3.ListBucketsInput,
	_ ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ListBuckets", nil); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(f.buckets))
	for name := range f.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &s3.ListBucketsOutput{Owner: owner()}
	for _, name := range names {
		out.Buckets = append(out.Buckets, types.Bucket{
			Name:         aws.String(name),
			CreationDate: aws.Time(f.buckets[name].created),
		})
	}
	return out, nil
}

// HeadBucket reports NotFound for missing buckets, like the real API.
func (f *FakeS3) HeadBucket(
	_ context.Context,
	params *s3.HeadBucketInput,
	_ ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("HeadBucket", nil); err != nil {
		return nil, err
	}
	b, ok := f.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NotFound{Message: aws.String("Not Found")}
	}
	return &s3.HeadBucketOutput{BucketRegion: aws.String(b.region)}, nil
}

// CreateBucket creates a bucket unless it already exists.
func (f *FakeS3) CreateBucket(
	_ context.Context,
	params *s3.CreateBucketInput,
	_ ...func(*s3.Options),
) (*s3.CreateBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateBucket", nil); err != nil {
		return nil, err
	}
	name := aws.ToString(params.Bucket)
	if _, ok := f.buckets[name]; ok {
		return nil, &types.BucketAlreadyOwnedByYou{
			Message: aws.String("Your previous request to create the named bucket succeeded and you already own it."),
		}
	}

	b := &fakeBucket{
		created: f.now(),
		grants:  cannedGrants(types.ObjectCannedACL(params.ACL)),
		objects: make(map[string]*fakeObject),
	}
	if params.CreateBucketConfiguration != nil {
		b.region = string(params.CreateBucketConfiguration.LocationConstraint)
	}
	f.buckets[name] = b
	return &s3.CreateBucketOutput{Location: aws.String("/" + name)}, nil
}

// DeleteBucket deletes an empty bucket.
func (f *FakeS3) DeleteBucket(
	_ context.Context,
	params *s3.DeleteBucketInput,
	_ ...func(*s3.Options),
) (*s3.DeleteBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteBucket", nil); err != nil {
		return nil, err
	}
	b, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}
	if len(b.objects) > 0 {
		return nil, APIError("BucketNotEmpty", "The bucket you tried to delete is not empty")
	}
	delete(f.buckets, aws.ToString(params.Bucket))
	return &s3.DeleteBucketOutput{}, nil
}

// ListObjectsV2 lists keys in lexical order, honouring Prefix and continuation tokens.
func (f *FakeS3) ListObjectsV2(
	_ context.Context,
	params *s3.ListObjectsV2Input,
	_ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ListObjectsV2", nil); err != nil {
		return nil, err
	}
	b, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	if m := aws.ToInt32(params.MaxKeys); m > 0 && int(m) < pageSize {
		pageSize = int(m)
	}

	prefix := aws.ToString(params.Prefix)
	after := aws.ToString(params.ContinuationToken)
	if after == "" {
		after = aws.ToString(params.StartAfter)
	}

	out := &s3.ListObjectsV2Output{
		Name:   params.Bucket,
		Prefix: params.Prefix,
	}
	for _, key := range sortedKeys(b.objects) {
		if !strings.HasPrefix(key, prefix) || (after != "" && key <= after) {
			continue
		}
		if len(out.Contents) == pageSize {
			out.IsTruncated = aws.Bool(true)
			out.NextContinuationToken = out.Contents[len(out.Contents)-1].Key
			break
		}
		obj := b.objects[key]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(obj.data))),
			LastModified: aws.Time(obj.modified),
			ETag:         aws.String(etag(obj.data)),
			StorageClass: types.ObjectStorageClassStandard,
		})
	}
	out.KeyCount = aws.Int32(int32(len(out.Contents)))
	if out.IsTruncated == nil {
		out.IsTruncated = aws.Bool(false)
	}
	return out, nil
}

// HeadObject returns object metadata or NotFound.
func (f *FakeS3) HeadObject(
	_ context.Context,
	params *s3.HeadObjectInput,
	_ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("HeadObject", params.Key); err != nil {
		return nil, err
	}
	if _, err := f.bucket(params.Bucket); err != nil {
		return nil, err
	}
	obj, err := f.object(params.Bucket, params.Key)
	if err != nil {
		return nil, &types.NotFound{Message: aws.String("Not Found")}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.data))),
		ContentType:   nilIfEmpty(obj.contentType),
		ETag:          aws.String(etag(obj.data)),
		LastModified:  aws.Time(obj.modified),
		Metadata:      obj.metadata,
	}, nil
}

// GetObject returns the object body.
func (f *FakeS3) GetObject(
	_ context.Context,
	params *s3.GetObjectInput,
	_ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetObject", params.Key); err != nil {
		return nil, err
	}
	obj, err := f.object(params.Bucket, params.Key)
	if err != nil {
		return nil, err
	}
	data := append([]byte(nil), obj.data...)
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   nilIfEmpty(obj.contentType),
		ETag:          aws.String(etag(data)),
		LastModified:  aws.Time(obj.modified),
	}, nil
}

// PutObject stores the body under the key.
func (f *FakeS3) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	var data []byte
	if params.Body != nil {
		var err error
		if data, err = io.ReadAll(params.Body); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("PutObject", params.Key); err != nil {
		return nil, err
	}
	b, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}
	b.objects[aws.ToString(params.Key)] = &fakeObject{
		data:        data,
		contentType: aws.ToString(params.ContentType),
		metadata:    params.Metadata,
		modified:    f.now(),
		grants:      cannedGrants(params.ACL),
	}
	return &s3.PutObjectOutput{ETag: aws.String(etag(data))}, nil
}

// DeleteObject removes the key. Missing keys are not an error.
func (f *FakeS3) DeleteObject(
	_ context.Context,
	params *s3.DeleteObjectInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteObject", params.Key); err != nil {
		return nil, err
	}
	b, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}
	delete(b.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// CopyObject copies "bucket/key" from CopySource. The copy gets a private ACL
// unless the input names one, as on the real service.
func (f *FakeS3) CopyObject(
	_ context.Context,
	params *s3.CopyObjectInput,
	_ ...func(*s3.Options),
) (*s3.CopyObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CopyObject", params.Key); err != nil {
		return nil, err
	}
	srcBucket, encodedKey, ok := strings.Cut(aws.ToString(params.CopySource), "/")
	if !ok {
		return nil, APIError("InvalidArgument", "Copy Source must mention the source bucket and key")
	}
	srcKey, err := url.PathUnescape(encodedKey)
	if err != nil {
		return nil, APIError("InvalidArgument", "Copy Source must be URL-encoded")
	}
	src, err := f.object(aws.String(srcBucket), aws.String(srcKey))
	if err != nil {
		return nil, err
	}
	dst, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}
	data := append([]byte(nil), src.data...)
	dst.objects[aws.ToString(params.Key)] = &fakeObject{
		data:        data,
		contentType: src.contentType,
		metadata:    src.metadata,
		modified:    f.now(),
		grants:      cannedGrants(params.ACL),
	}
	return &s3.CopyObjectOutput{
		CopyObjectResult: &types.CopyObjectResult{
			ETag:         aws.String(etag(data)),
			LastModified: aws.Time(f.now()),
		},
	}, nil
}

// GetBucketAcl returns the bucket grants.
func (f *FakeS3) GetBucketAcl(
	_ context.Context,
	params *s3.GetBucketAclInput,
	_ ...func(*s3.Options),
) (*s3.GetBucketAclOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetBucketAcl", nil); err != nil {
		return nil, err
	}
	b, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}
	return &s3.GetBucketAclOutput{Owner: owner(), Grants: append([]types.Grant(nil), b.grants...)}, nil
}

// PutBucketAcl replaces the bucket grants from a canned ACL or a policy.
func (f *FakeS3) PutBucketAcl(
	_ context.Context,
	params *s3.PutBucketAclInput,
	_ ...func(*s3.Options),
) (*s3.PutBucketAclOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("PutBucketAcl", nil); err != nil {
		return nil, err
	}
	b, err := f.bucket(params.Bucket)
	if err != nil {
		return nil, err
	}
	b.grants = policyGrants(types.ObjectCannedACL(params.ACL), params.AccessControlPolicy)
	return &s3.PutBucketAclOutput{}, nil
}

// GetObjectAcl returns the object grants.
func (f *FakeS3) GetObjectAcl(
	_ context.Context,
	params *s3.GetObjectAclInput,
	_ ...func(*s3.Options),
) (*s3.GetObjectAclOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetObjectAcl", params.Key); err != nil {
		return nil, err
	}
	obj, err := f.object(params.Bucket, params.Key)
	if err != nil {
		return nil, err
	}
	return &s3.GetObjectAclOutput{Owner: owner(), Grants: append([]types.Grant(nil), obj.grants...)}, nil
}

// PutObjectAcl replaces the object grants from a canned ACL or a policy.
func (f *FakeS3) PutObjectAcl(
	_ context.Context,
	params *s3.PutObjectAclInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectAclOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("PutObjectAcl", params.Key); err != nil {
		return nil, err
	}
	obj, err := f.object(params.Bucket, params.Key)
	if err != nil {
		return nil, err
	}
	obj.grants = policyGrants(params.ACL, params.AccessControlPolicy)
	return &s3.PutObjectAclOutput{}, nil
}

// CreateMultipartUpload starts a multipart upload.
func (f *FakeS3) CreateMultipartUpload(
	_ context.Context,
	params *s3.CreateMultipartUploadInput,
	_ ...func(*s3.Options),
) (*s3.CreateMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateMultipartUpload", params.Key); err != nil {
		return nil, err
	}
	if _, err := f.bucket(params.Bucket); err != nil {
		return nil, err
	}
	f.nextID++
	id := "upload-" + strconv.Itoa(f.nextID)
	f.uploads[id] = &fakeUpload{
		bucket:      aws.ToString(params.Bucket),
		key:         aws.ToString(params.Key),
		contentType: aws.ToString(params.ContentType),
		acl:         params.ACL,
		parts:       make(map[int32][]byte),
	}
	return &s3.CreateMultipartUploadOutput{Bucket: params.Bucket, Key: params.Key, UploadId: aws.String(id)}, nil
}

// UploadPart stores one part of a multipart upload.
func (f *FakeS3) UploadPart(
	_ context.Context,
	params *s3.UploadPartInput,
	_ ...func(*s3.Options),
) (*s3.UploadPartOutput, error) {
	var data []byte
	if params.Body != nil {
		var err error
		if data, err = io.ReadAll(params.Body); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UploadPart", params.Key); err != nil {
		return nil, err
	}
	up, ok := f.uploads[aws.ToString(params.UploadId)]
	if !ok {
		return nil, APIError("NoSuchUpload", "The specified upload does not exist.")
	}
	up.parts[aws.ToInt32(params.PartNumber)] = data
	return &s3.UploadPartOutput{ETag: aws.String(etag(data))}, nil
}

// CompleteMultipartUpload assembles the uploaded parts in part-number order.
func (f *FakeS3) CompleteMultipartUpload(
	_ context.Context,
	params *s3.CompleteMultipartUploadInput,
	_ ...func(*s3.Options),
) (*s3.CompleteMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CompleteMultipartUpload", params.Key); err != nil {
		return nil, err
	}
	id := aws.ToString(params.UploadId)
	up, ok := f.uploads[id]
	if !ok {
		return nil, APIError("NoSuchUpload", "The specified upload does not exist.")
	}
	b, err := f.bucket(aws.String(up.bucket))
	if err != nil {
		return nil, err
	}

	numbers := make([]int, 0, len(up.parts))
	for n := range up.parts {
		numbers = append(numbers, int(n))
	}
	sort.Ints(numbers)
	var buf bytes.Buffer
	for _, n := range numbers {
		buf.Write(up.parts[int32(n)])
	}

	b.objects[up.key] = &fakeObject{
		data:        buf.Bytes(),
		contentType: up.contentType,
		modified:    f.now(),
		grants:      cannedGrants(up.acl),
	}
	delete(f.uploads, id)
	return &s3.CompleteMultipartUploadOutput{
		Bucket: aws.String(up.bucket),
		Key:    aws.String(up.key),
		ETag:   aws.String(etag(buf.Bytes())),
	}, nil
}

// AbortMultipartUpload discards a multipart upload.
func (f *FakeS3) AbortMultipartUpload(
	_ context.Context,
	params *s3.AbortMultipartUploadInput,
	_ ...func(*s3.Options),
) (*s3.AbortMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AbortMultipartUpload", params.Key); err != nil {
		return nil, err
	}
	delete(f.uploads, aws.ToString(params.UploadId))
	return &s3.AbortMultipartUploadOutput{}, nil
}

func owner() *types.Owner {
	return &types.Owner{ID: aws.String(FakeOwnerID), DisplayName: aws.String("owner")}
}

func ownerGrant() types.Grant {
	return types.Grant{
		Grantee: &types.Grantee{
			Type:        types.TypeCanonicalUser,
			ID:          aws.String(FakeOwnerID),
			DisplayName: aws.String("owner"),
		},
		Permission: types.PermissionFullControl,
	}
}

func groupGrant(uri string, perm types.Permission) types.Grant {
	return types.Grant{
		Grantee:    &types.Grantee{Type: types.TypeGroup, URI: aws.String(uri)},
		Permission: perm,
	}
}

// Group URIs used by the canned ACLs.
const (
	AllUsersURI           = "http://acs.amazonaws.com/groups/global/AllUsers"
	AuthenticatedUsersURI = "http://acs.amazonaws.com/groups/global/AuthenticatedUsers"
)

// cannedGrants expands a canned ACL into grants the way S3 documents it.
func cannedGrants(acl types.ObjectCannedACL) []types.Grant {
	grants := []types.Grant{ownerGrant()}
	switch acl {
	case types.ObjectCannedACLPublicRead:
		grants = append(grants, groupGrant(AllUsersURI, types.PermissionRead))
	case types.ObjectCannedACLPublicReadWrite:
		grants = append(grants,
			groupGrant(AllUsersURI, types.PermissionRead),
			groupGrant(AllUsersURI, types.PermissionWrite))
	case types.ObjectCannedACLAuthenticatedRead:
		grants = append(grants, groupGrant(AuthenticatedUsersURI, types.PermissionRead))
	}
	return grants
}

func policyGrants(acl types.ObjectCannedACL, policy *types.AccessControlPolicy) []types.Grant {
	if policy != nil && acl == "" {
		return append([]types.Grant(nil), policy.Grants...)
	}
	return cannedGrants(acl)
}

func sortedKeys(objects map[string]*fakeObject) []string {
	keys := make([]string, 0, len(objects))
	for k := range objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func etag(data []byte) string {
	return fmt.Sprintf(`"%x"`, md5.Sum(data))
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

var _ s3api.S3API = (*FakeS3)(nil)
