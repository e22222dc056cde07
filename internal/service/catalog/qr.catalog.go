package catalog

import (
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
)

// Messenger, Facebook, Instagram, Line and WeChat webviews cannot save attachments.
var inAppBrowser = regexp.MustCompile(`(?i)(FBAN|FBAV|FB_IAB|Messenger|Instagram|\bLine/|MicroMessenger)`)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func IsInAppBrowser(userAgent string) bool {
	return inAppBrowser.MatchString(userAgent)
}

// DownloadQR fetches the QR image of a payment method so it downloads as a
// file. In-app browsers and failed fetches get a redirect to the image instead.
func (s *Service) DownloadQR(id, userAgent string) *types.Response {
	method, err := s.rp.Catalog.FindPaymentMethod(s.ctx, id)
	if err != nil {
		return paymentMethodError(err)
	}
	if method.QRURL == "" {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusNotFound,
			Message: "Payment method has no QR code",
		})
	}

	redirect := &QRDownload{Redirect: true, URL: method.QRURL}
	if IsInAppBrowser(userAgent) {
		return helper.ParseResponse(&types.Response{Code: http.StatusFound, Data: redirect})
	}

	res, err := s.http.Fetch(s.ctx, method.QRURL)
	if err != nil {
		logger.Warning.Printf("QR download for %s failed, redirecting: %v", method.ID, err)
		return helper.ParseResponse(&types.Response{Code: http.StatusFound, Data: redirect})
	}

	contentType := res.Headers.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(res.Body)
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: &QRDownload{
			URL:         method.QRURL,
			FileName:    qrFileName(method.Name, method.QRURL),
			ContentType: contentType,
			Data:        res.Body,
		},
	})
}

func qrFileName(name, rawURL string) string {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(rawURL, "?", 2)[0]))
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = "payment"
	}
	return fmt.Sprintf("qr-%s%s", slug, ext)
}
