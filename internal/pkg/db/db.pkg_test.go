package database

import (
	"context"
	"testing"

	"topup-store/internal/common/models"

	"github.com/go-gorm/caches/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupSqliteRunsMigrations(t *testing.T) {
	db, err := Setup(&Config{Driver: SQLITE, Database: "file:migrate_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.RunMigrations())
	require.True(t, db.Migrator().HasTable(&models.Order{}))
	require.True(t, db.Migrator().HasTable(&models.PaymentMethod{}))
	require.True(t, db.Migrator().HasTable(&models.MenuItem{}))
	require.False(t, db.IsCloseConnection())
}

func TestSetupRejectsUnknownDriver(t *testing.T) {
	_, err := Setup(&Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestMemoryCacherInvalidatedOnWrite(t *testing.T) {
	db, err := Setup(&Config{Driver: SQLITE, Database: "file:cache_test?mode=memory&cache=shared", Cache: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.RunMigrations())

	plugin, ok := db.DB.Config.Plugins[(&caches.Caches{}).Name()].(*caches.Caches)
	require.True(t, ok)
	cacher, ok := plugin.Conf.Cacher.(*memoryCacher)
	require.True(t, ok)

	require.NoError(t, db.Create(&models.PaymentMethod{Name: "Bank Transfer", Active: true}).Error)

	var methods []models.PaymentMethod
	require.NoError(t, db.Where("active = ?", true).Find(&methods).Error)
	require.Len(t, methods, 1)
	require.Equal(t, 1, cacher.len())

	require.NoError(t, db.Create(&models.PaymentMethod{Name: "E-Wallet", Active: true}).Error)
	require.Equal(t, 0, cacher.len())

	require.NoError(t, db.Where("active = ?", true).Find(&methods).Error)
	require.Len(t, methods, 2)
}

func TestMemoryCacherMissReturnsNil(t *testing.T) {
	c := &memoryCacher{}
	q, err := c.Get(context.Background(), "missing", &caches.Query[any]{})
	require.NoError(t, err)
	require.Nil(t, q)
}
