package checkout

import (
	"encoding/json"
	"fmt"
	"time"

	"topup-store/internal/pkg/logger"
)

// Store is the key-value store sessions live in. Set JSON encodes value and
// Get returns the stored JSON, or "" when the key is absent.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value any, expiration time.Duration) error
	Del(key string) error
}

const (
	keyPaymentMethodID = "payment_method_id"
	keyFieldValues     = "custom_field_values"
	keyReceiptURL      = "receipt_url"
	keyReceiptPreview  = "receipt_preview"
	keyReceiptFile     = "receipt_file"
	keyReceiptUpload   = "receipt_uploading"
	keyBulkValues      = "bulk_input_values"
	keyBulkSelected    = "bulk_selected_games"
	keyCurrentOrderID  = "current_order_id"
	keyOrderStatusOpen = "show_order_status"
	keyMessageCopied   = "message_copied"
	keyCart            = "cart"
	keyAppView         = "app_view"
	keyAppCategory     = "app_category"
	keyAppSearch       = "app_search"
)

var sessionKeys = []string{
	keyPaymentMethodID, keyFieldValues, keyReceiptURL, keyReceiptPreview, keyReceiptFile,
	keyReceiptUpload, keyBulkValues, keyBulkSelected, keyCurrentOrderID, keyOrderStatusOpen,
	keyMessageCopied, keyCart, keyAppView, keyAppCategory, keyAppSearch,
}

// sessionStore scopes Store keys to one checkout session.
type sessionStore struct {
	store     Store
	sessionID string
	ttl       time.Duration
}

func (s *sessionStore) key(name string) string {
	return fmt.Sprintf("checkout:%s:%s", s.sessionID, name)
}

// readValue decodes a session key. Missing, null or unreadable values yield def.
func readValue[T any](s *sessionStore, name string, def T) T {
	raw, err := s.store.Get(s.key(name))
	if err != nil {
		logger.Warning.Printf("session %s: failed to read %s: %v", s.sessionID, name, err)
		return def
	}
	if raw == "" || raw == "null" {
		return def
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Debug.Printf("session %s: ignoring unreadable %s: %v", s.sessionID, name, err)
		return def
	}
	return out
}

func (s *sessionStore) write(name string, value any) {
	if err := s.store.Set(s.key(name), value, s.ttl); err != nil {
		logger.Warning.Printf("session %s: failed to write %s: %v", s.sessionID, name, err)
	}
}

func (s *sessionStore) remove(name string) {
	if err := s.store.Del(s.key(name)); err != nil {
		logger.Warning.Printf("session %s: failed to remove %s: %v", s.sessionID, name, err)
	}
}

func (s *sessionStore) clear() {
	for _, name := range sessionKeys {
		s.remove(name)
	}
}
