package catalog

import (
	"context"
	"fmt"
	"testing"

	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	database "topup-store/internal/pkg/db"

	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) IRepository {
	t.Helper()
	db, err := database.Setup(&database.Config{
		Driver:   database.SQLITE,
		Database: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.RunMigrations())
	return NewRepo(db)
}

func TestPaymentMethodsOrderedAndFiltered(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreatePaymentMethod(ctx, &models.PaymentMethod{Name: "QRIS", Active: true, SortOrder: 2}))
	require.NoError(t, repo.CreatePaymentMethod(ctx, &models.PaymentMethod{Name: "BCA", Active: true, SortOrder: 1}))
	require.NoError(t, repo.CreatePaymentMethod(ctx, &models.PaymentMethod{Name: "Old Bank", Active: false}))

	active, err := repo.ListPaymentMethods(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "BCA", active[0].Name)
	require.Equal(t, "QRIS", active[1].Name)

	all, err := repo.ListPaymentMethods(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	found, err := repo.FindPaymentMethod(ctx, active[0].ID)
	require.NoError(t, err)
	require.Equal(t, "BCA", found.Name)

	_, err = repo.FindPaymentMethod(ctx, "missing")
	require.ErrorIs(t, err, types.ErrPaymentMethodNotFound)
}

func TestListMenuItemsFilters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	fields := models.ToJSONB([]types.CustomField{{Key: "user_id", Label: "User ID", Required: true}})
	require.NoError(t, repo.CreateMenuItem(ctx, &models.MenuItem{Name: "Mobile Legends", Category: "games", Available: true, CustomFields: fields}))
	require.NoError(t, repo.CreateMenuItem(ctx, &models.MenuItem{Name: "Free Fire", Category: "games", Available: true}))
	require.NoError(t, repo.CreateMenuItem(ctx, &models.MenuItem{Name: "Pulsa Telkomsel", Category: "pulsa", Available: true}))
	require.NoError(t, repo.CreateMenuItem(ctx, &models.MenuItem{Name: "Legends Retired", Category: "games", Available: false}))

	games, err := repo.ListMenuItems(ctx, MenuFilter{Category: "games"})
	require.NoError(t, err)
	require.Len(t, games, 2)

	found, err := repo.ListMenuItems(ctx, MenuFilter{Search: "LEGENDS"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Mobile Legends", found[0].Name)

	var custom []types.CustomField
	require.NoError(t, found[0].CustomFields.Decode(&custom))
	require.Equal(t, "User ID", custom[0].Label)

	item, err := repo.FindMenuItem(ctx, found[0].ID)
	require.NoError(t, err)
	require.Equal(t, "games", item.Category)

	_, err = repo.FindMenuItem(ctx, "missing")
	require.ErrorIs(t, err, types.ErrMenuItemNotFound)
}
