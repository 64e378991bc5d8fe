// Package testutil provides sqlite-backed databases and fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openshop-kr/journey-api/internal/database"
	"github.com/openshop-kr/journey-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema.
// A single connection keeps the in-memory database alive for the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateTestPM inserts a PM profile with the given display name.
func CreateTestPM(t *testing.T, db *gorm.DB, name, greeting string) *domain.ProjectManager {
	t.Helper()
	pm := &domain.ProjectManager{
		UserID:          "pm-" + uuid.NewString()[:8],
		Name:            name,
		Phone:           "010-0000-0000",
		GreetingMessage: greeting,
		IsAvailable:     true,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(pm).Error)
	return pm
}

// CreateTestPartner inserts an active partner.
func CreateTestPartner(t *testing.T, db *gorm.DB, name, category string) *domain.Partner {
	t.Helper()
	partner := &domain.Partner{
		Name:           name,
		Category:       category,
		PriceMin:       100,
		PriceMax:       300,
		PriceUnit:      "만원",
		CommissionRate: 0.1,
		IsActive:       true,
	}
	require.NoError(t, db.Create(partner).Error)
	return partner
}

// Actors used across service and handler tests.
func Consumer(id string) domain.Actor {
	return domain.Actor{UserID: id, Name: "고객", Role: domain.ActorRoleConsumer}
}

func PMActor(pm *domain.ProjectManager) domain.Actor {
	return domain.Actor{UserID: pm.UserID, Name: pm.Name, Role: domain.ActorRolePM}
}

func Admin() domain.Actor {
	return domain.Actor{UserID: "admin-1", Name: "관리자", Role: domain.ActorRoleAdmin}
}
