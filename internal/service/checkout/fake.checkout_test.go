package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"
)

type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memStore) Set(key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = string(data)
	return nil
}

func (s *memStore) Del(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memStore) raw(sessionID, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values["checkout:"+sessionID+":"+name]
}

func (s *memStore) put(sessionID, name, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values["checkout:"+sessionID+":"+name] = raw
}

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n")
	jpegBytes = []byte("\xff\xd8\xff\xe0")
)

type fakeUploader struct {
	ref    string
	err    error
	calls  int
	during func()
	gotCT  string
}

func (u *fakeUploader) UploadReceipt(_ context.Context, _ string, _ []byte, contentType string) (string, error) {
	u.calls++
	u.gotCT = contentType
	if u.during != nil {
		u.during()
	}
	return u.ref, u.err
}

type fakeOrders struct {
	orders      map[string]*types.OrderSummary
	created     []*types.CreateOrderPayload
	createErr   error
	fetchErr    error
	createCalls int
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]*types.OrderSummary{}}
}

func (f *fakeOrders) CreateOrder(_ context.Context, payload *types.CreateOrderPayload) (*types.OrderSummary, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	order := &types.OrderSummary{ID: "order-1", OrderCode: "TP-1", Status: enum.ORDER_PENDING, TotalPrice: payload.TotalPrice}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrders) FetchOrder(_ context.Context, id string) (*types.OrderSummary, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	order, ok := f.orders[id]
	if !ok {
		return nil, types.ErrOrderNotFound
	}
	return order, nil
}

var errBackendDown = errors.New("backend down")

func field(key, label string, required bool) types.CustomField {
	return types.CustomField{Key: key, Label: label, Required: required}
}

func item(id, name string, qty int, unit int64, custom ...types.CustomField) CartItem {
	return CartItem{ID: id, Name: name, Quantity: qty, Price: unit, TotalPrice: unit * int64(qty), CustomFields: custom}
}
