package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	database "topup-store/internal/pkg/db"
	"topup-store/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (IService, repository.IRepository) {
	t.Helper()
	db, err := database.Setup(&database.Config{
		Driver:   database.SQLITE,
		Database: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.RunMigrations())

	rp := repository.NewRepository(db)
	return NewService(context.Background(), rp, nil), rp
}

func TestListMenuDecodesFields(t *testing.T) {
	svc, rp := setup(t)
	ctx := context.Background()

	require.NoError(t, rp.Catalog.CreateMenuItem(ctx, &models.MenuItem{
		Name:         "Mobile Legends",
		Category:     "games",
		Available:    true,
		Variations:   models.ToJSONB([]types.Variation{{ID: "86", Name: "86 Diamonds", Price: 20000}}),
		CustomFields: models.ToJSONB([]types.CustomField{{Key: "user_id", Label: "User ID", Required: true}}),
	}))
	require.NoError(t, rp.Catalog.CreateMenuItem(ctx, &models.MenuItem{Name: "Pulsa", Category: "pulsa", Available: true}))

	res := svc.ListMenu(&ListMenuRequest{Category: "games"})
	require.Equal(t, http.StatusOK, res.Code)
	items := res.Data.([]MenuItemResponse)
	require.Len(t, items, 1)
	assert.Equal(t, "86 Diamonds", items[0].Variations[0].Name)
	assert.True(t, items[0].CustomFields[0].Required)

	res = svc.ListMenu(&ListMenuRequest{Search: "puls"})
	items = res.Data.([]MenuItemResponse)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].CustomFields)
	assert.NotNil(t, items[0].CustomFields)
}

func TestCreateAndListPaymentMethods(t *testing.T) {
	svc, _ := setup(t)

	inactive := false
	require.Equal(t, http.StatusCreated, svc.CreatePaymentMethod(&CreatePaymentMethodRequest{Name: "QRIS", QRURL: "https://cdn.test/qr.png", SortOrder: 2}).Code)
	require.Equal(t, http.StatusCreated, svc.CreatePaymentMethod(&CreatePaymentMethodRequest{Name: "BCA", AccountNumber: "123", SortOrder: 1}).Code)
	require.Equal(t, http.StatusCreated, svc.CreatePaymentMethod(&CreatePaymentMethodRequest{Name: "Old", Active: &inactive}).Code)
	require.Equal(t, http.StatusBadRequest, svc.CreatePaymentMethod(&CreatePaymentMethodRequest{QRURL: "nope"}).Code)

	res := svc.ListPaymentMethods()
	require.Equal(t, http.StatusOK, res.Code)
	methods := res.Data.([]PaymentMethodResponse)
	require.Len(t, methods, 2)
	assert.Equal(t, "BCA", methods[0].Name)
	assert.False(t, methods[0].HasQR)
	assert.True(t, methods[1].HasQR)
}

func TestDownloadQR(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("qr-bytes"))
	}))
	t.Cleanup(srv.Close)

	svc, rp := setup(t)
	ctx := context.Background()
	ok := &models.PaymentMethod{Name: "QRIS Shop", QRURL: srv.URL + "/qr.png", Active: true}
	broken := &models.PaymentMethod{Name: "Broken", QRURL: srv.URL + "/missing.png", Active: true}
	noQR := &models.PaymentMethod{Name: "BCA", Active: true}
	require.NoError(t, rp.Catalog.CreatePaymentMethod(ctx, ok))
	require.NoError(t, rp.Catalog.CreatePaymentMethod(ctx, broken))
	require.NoError(t, rp.Catalog.CreatePaymentMethod(ctx, noQR))

	res := svc.DownloadQR(ok.ID, "Mozilla/5.0 (X11; Linux x86_64)")
	require.Equal(t, http.StatusOK, res.Code)
	dl := res.Data.(*QRDownload)
	assert.False(t, dl.Redirect)
	assert.Equal(t, []byte("qr-bytes"), dl.Data)
	assert.Equal(t, "image/png", dl.ContentType)
	assert.Equal(t, "qr-qris-shop.png", dl.FileName)

	res = svc.DownloadQR(ok.ID, "Mozilla/5.0 (iPhone) [FBAN/FBIOS;FBAV/400.0]")
	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, ok.QRURL, res.Data.(*QRDownload).URL)

	res = svc.DownloadQR(broken.ID, "Mozilla/5.0")
	require.Equal(t, http.StatusFound, res.Code)
	assert.True(t, res.Data.(*QRDownload).Redirect)

	assert.Equal(t, http.StatusNotFound, svc.DownloadQR(noQR.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, svc.DownloadQR("missing", "").Code)
}

func TestIsInAppBrowser(t *testing.T) {
	assert.True(t, IsInAppBrowser("Mozilla/5.0 Instagram 300.0"))
	assert.True(t, IsInAppBrowser("Mozilla/5.0 Line/13.1.0"))
	assert.True(t, IsInAppBrowser("Mozilla/5.0 MicroMessenger/8.0"))
	assert.True(t, IsInAppBrowser("Mozilla/5.0 [FB_IAB/Orca-Android;FBAV/1]"))
	assert.False(t, IsInAppBrowser("Mozilla/5.0 (Macintosh) Safari/605.1.15"))
	assert.False(t, IsInAppBrowser("Mozilla/5.0 Online/1.0"))
}

func TestQRFileName(t *testing.T) {
	assert.Equal(t, "qr-bank-bca.jpg", qrFileName("Bank BCA!", "https://x/y/code.JPG?sig=1"))
	assert.Equal(t, "qr-payment.png", qrFileName("", "https://x/y/code"))
}
