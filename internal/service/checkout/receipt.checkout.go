package checkout

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	s3aws "topup-store/internal/pkg/storage/s3"

	"github.com/google/uuid"
)

var ErrReceiptTooLarge = errors.New("receipt exceeds the upload size limit")

const receiptFolder = "receipts"

// S3ReceiptUploader stores receipts in S3 and returns a presigned URL as the reference.
type S3ReceiptUploader struct {
	s3       s3aws.Is3
	maxBytes int64
}

func NewS3ReceiptUploader(s3 s3aws.Is3, maxBytes int64) *S3ReceiptUploader {
	return &S3ReceiptUploader{s3: s3, maxBytes: maxBytes}
}

func (u *S3ReceiptUploader) UploadReceipt(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	if u.maxBytes > 0 && int64(len(data)) > u.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrReceiptTooLarge, len(data))
	}

	key := fmt.Sprintf("%s/%s%s", receiptFolder, uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
	if err := u.s3.UploadFile(ctx, key, data, contentType); err != nil {
		return "", err
	}

	ref, err := u.s3.GetPresignedURL(key)
	if err != nil {
		return "", err
	}
	return ref, nil
}
