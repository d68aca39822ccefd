package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjects implements objectAPI in memory.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	madeBucket      string
	makeBucketErr   error

	objects     map[string]string
	contentType map[string]string
	putErr      error
	removeErr   error
	statErr     error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{
		bucketExists: true,
		objects:      make(map[string]string),
		contentType:  make(map[string]string),
	}
}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _, key string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.objects[key] = string(data)
	f.contentType[key] = opts.ContentType
	return minioLib.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, _, key string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, minioLib.ErrorResponse{Code: "NoSuchKey"}
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (f *fakeObjects) RemoveObject(_ context.Context, _, key string, _ minioLib.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjects) StatObject(_ context.Context, _, key string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	if f.statErr != nil {
		return minioLib.ObjectInfo{}, f.statErr
	}
	if _, ok := f.objects[key]; !ok {
		return minioLib.ObjectInfo{}, minioLib.ErrorResponse{Code: "NoSuchKey"}
	}
	return minioLib.ObjectInfo{Key: key}, nil
}

func TestNewImageStore_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		api := newFakeObjects()
		s, err := newImageStore(ctx, api, "images")
		require.NoError(t, err)
		assert.Equal(t, "images", s.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		api := newFakeObjects()
		api.bucketExists = false
		_, err := newImageStore(ctx, api, "images")
		require.NoError(t, err)
		assert.Equal(t, "images", api.madeBucket)
	})

	t.Run("check fails", func(t *testing.T) {
		api := newFakeObjects()
		api.bucketExistsErr = errors.New("boom")
		s, err := newImageStore(ctx, api, "images")
		assert.Nil(t, s)
		assert.ErrorContains(t, err, "failed to ensure bucket exists")
	})

	t.Run("create fails", func(t *testing.T) {
		api := newFakeObjects()
		api.bucketExists = false
		api.makeBucketErr = errors.New("denied")
		_, err := newImageStore(ctx, api, "images")
		assert.ErrorContains(t, err, "failed to create bucket")
	})
}

func TestImageStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjects()
	s, err := newImageStore(ctx, api, "images")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "national-id/1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, "national-id/1", strings.NewReader("jpeg-bytes"), 10, "image/jpeg"))
	assert.Equal(t, "image/jpeg", api.contentType["national-id/1"])

	exists, err = s.Exists(ctx, "national-id/1")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, "national-id/1")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "national-id/1"))
	exists, err = s.Exists(ctx, "national-id/1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImageStore_Upload_DefaultContentType(t *testing.T) {
	api := newFakeObjects()
	s, err := newImageStore(context.Background(), api, "images")
	require.NoError(t, err)

	require.NoError(t, s.Upload(context.Background(), "k", strings.NewReader("x"), -1, ""))
	assert.Equal(t, "application/octet-stream", api.contentType["k"])
}

func TestImageStore_Errors(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjects()
	s, err := newImageStore(ctx, api, "images")
	require.NoError(t, err)

	api.putErr = errors.New("full")
	assert.ErrorContains(t, s.Upload(ctx, "k", strings.NewReader("x"), 1, "image/png"), "failed to upload object")

	api.removeErr = errors.New("denied")
	assert.ErrorContains(t, s.Delete(ctx, "k"), "failed to delete object")

	api.statErr = errors.New("timeout")
	_, err = s.Exists(ctx, "k")
	assert.ErrorContains(t, err, "failed to stat object")

	_, err = s.Download(ctx, "missing")
	assert.ErrorContains(t, err, "failed to get object")
}
