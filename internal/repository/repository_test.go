package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"teamup-board-api/internal/database"
	"teamup-board-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to open database")

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, name, email string) *domain.Profile {
	p := &domain.Profile{Name: name, Email: email}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCompany(t *testing.T, db *gorm.DB, owner uuid.UUID) *domain.Company {
	c := &domain.Company{Name: "Acme", CreatedBy: owner}
	require.NoError(t, NewCompanyRepository(db).CreateWithAdmin(context.Background(), c, owner))
	return c
}

func seedBoard(t *testing.T, db *gorm.DB, companyID uuid.UUID) *domain.Board {
	b := &domain.Board{CompanyID: companyID, Name: "Roadmap"}
	require.NoError(t, db.Create(b).Error)
	return b
}
