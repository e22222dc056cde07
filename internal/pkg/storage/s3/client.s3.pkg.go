package s3aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/redis"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const presignTTL = 3 * 24 * time.Hour

var ErrObjectNotFound = errors.New("object not found")

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// Endpoint targets S3-compatible stores such as MinIO. Empty means AWS.
	Endpoint string
}

type S3Client struct {
	Client     s3iface.S3API
	BucketName string
	redis      redis.IRedis
}

type Is3 interface {
	GetBucketName() string
	UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error
	DownloadFile(ctx context.Context, key string) ([]byte, string, error)
	DeleteFile(ctx context.Context, key string) error
	GetPresignedURL(key string) (string, error)
}

func newSession(cfg S3Config) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	return session.NewSession(awsCfg)
}

func NewS3Client(ctx context.Context, cfg S3Config, bucketName string, redis redis.IRedis) (*S3Client, error) {
	sess, err := newSession(cfg)
	if err != nil {
		return nil, err
	}

	s3Client := NewWithAPI(s3.New(sess), bucketName, redis)

	exists, err := s3Client.bucketExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Info.Printf("Creating bucket %s", bucketName)
		if _, err := s3Client.Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(bucketName),
		}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
	}

	return s3Client, nil
}

// NewWithAPI builds a client around an existing S3 API implementation. redis may be nil.
func NewWithAPI(api s3iface.S3API, bucketName string, redis redis.IRedis) *S3Client {
	return &S3Client{
		Client:     api,
		BucketName: bucketName,
		redis:      redis,
	}
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey, "NotFound":
			return true
		}
	}
	return false
}

func (s *S3Client) bucketExists(ctx context.Context) (bool, error) {
	_, err := s.Client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3Client) GetBucketName() string {
	return s.BucketName
}

func (s *S3Client) UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error {
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

func (s *S3Client) DownloadFile(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	contentType := aws.StringValue(out.ContentType)
	if contentType == "" {
		contentType = getContentTypeFromKey(key)
	}
	return data, contentType, nil
}

func (s *S3Client) DeleteFile(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	if s.redis != nil {
		_ = s.redis.Del(s.presignCacheKey(key))
	}
	return nil
}

func (s *S3Client) presignCacheKey(key string) string {
	return fmt.Sprintf("s3:%s:%s", s.BucketName, key)
}

func (s *S3Client) GetPresignedURL(key string) (string, error) {
	cacheKey := s.presignCacheKey(key)
	if s.redis != nil {
		// values are stored JSON encoded
		cached, err := s.redis.Get(cacheKey)
		if err == nil && cached != "" {
			if url := strings.Trim(cached, `"`); strings.HasPrefix(url, "http") {
				return url, nil
			}
		}
	}

	req, _ := s.Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(s.BucketName),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String(getContentTypeFromKey(key)),
		ResponseContentDisposition: aws.String("inline"),
	})

	urlStr, err := req.Presign(presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.redis != nil {
		// cache a little shorter than the signature lives
		if err := s.redis.Set(cacheKey, urlStr, presignTTL-time.Hour); err != nil {
			logger.Warning.Printf("Failed to cache presigned URL for %s: %v", key, err)
		}
	}

	return urlStr, nil
}

func getContentTypeFromKey(key string) string {
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".heic": "image/heic",
		".pdf":  "application/pdf",
	}

	if contentType, exists := contentTypes[strings.ToLower(filepath.Ext(key))]; exists {
		return contentType
	}
	return "application/octet-stream"
}
