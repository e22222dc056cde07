package s3aws

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(in.Body)
	f.objects[*in.Key] = data
	f.types[*in.Key] = aws.StringValue(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "missing", nil)
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(data)),
		ContentType: aws.String(f.types[*in.Key]),
	}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

type memRedis struct {
	values map[string]string
}

func (m *memRedis) Set(key string, value any, _ time.Duration) error {
	if s, ok := value.(string); ok {
		m.values[key] = `"` + s + `"`
	}
	return nil
}
func (m *memRedis) Get(key string) (string, error)     { return m.values[key], nil }
func (m *memRedis) Del(key string) error               { delete(m.values, key); return nil }
func (m *memRedis) Expire(string, time.Duration) error { return nil }
func (m *memRedis) Ping() error                        { return nil }
func (m *memRedis) Close() error                       { return nil }

func TestUploadDownloadDelete(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	client := NewWithAPI(api, "receipts", nil)

	require.NoError(t, client.UploadFile(ctx, "receipts/a.png", []byte("png-bytes"), "image/png"))

	data, ct, err := client.DownloadFile(ctx, "receipts/a.png")
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
	require.Equal(t, "image/png", ct)

	require.NoError(t, client.DeleteFile(ctx, "receipts/a.png"))
	_, _, err = client.DownloadFile(ctx, "receipts/a.png")
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestGetPresignedURLIsCached(t *testing.T) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("ap-southeast-1"),
		Credentials: credentials.NewStaticCredentials("key", "secret", ""),
	})
	require.NoError(t, err)

	cache := &memRedis{values: map[string]string{}}
	client := NewWithAPI(s3.New(sess), "receipts", cache)

	url, err := client.GetPresignedURL("receipts/a.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://"))
	require.Contains(t, cache.values, "s3:receipts:receipts/a.png")

	again, err := client.GetPresignedURL("receipts/a.png")
	require.NoError(t, err)
	require.Equal(t, url, again)
}

func TestGetContentTypeFromKey(t *testing.T) {
	require.Equal(t, "image/jpeg", getContentTypeFromKey("x/y.JPG"))
	require.Equal(t, "application/octet-stream", getContentTypeFromKey("x/y"))
}
