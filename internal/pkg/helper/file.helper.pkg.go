package helper

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	_type "topup-store/internal/common/type"

	"github.com/google/uuid"
)

func PrepareFileUploadPayload(p _type.UploadFile) (*_type.UploadFilesRes, error) {
	if seeker, ok := p.File.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek: %w", err)
		}
	}

	buf := bytes.NewBuffer(nil)
	if _, err := buf.ReadFrom(p.File); err != nil {
		return nil, fmt.Errorf("failed to read from file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(p.Header.Filename))
	folder := "uploads/"
	if p.Path != "" {
		folder = strings.TrimSuffix(p.Path, "/") + "/"
	}
	objectKey := folder + uuid.New().String() + ext

	// browsers send a header, but it is not trusted when it is generic
	contentType := p.Header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(buf.Bytes())
	}

	return &_type.UploadFilesRes{
		ObjectKey:   objectKey,
		FileName:    p.Header.Filename,
		FileBytes:   buf.Bytes(),
		ContentType: contentType,
	}, nil
}
