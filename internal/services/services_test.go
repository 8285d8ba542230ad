package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/woffu/woffu/internal/config"
	"github.com/woffu/woffu/internal/database"
	"github.com/woffu/woffu/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiration: 1,
		DueSoonDays:   3,
		AppName:       "WOFFU",
	}
}

func createMember(t *testing.T, db *gorm.DB, name string, role models.MemberRole) *models.Member {
	t.Helper()

	member := &models.Member{
		Email:        name + "@woffu.local",
		PasswordHash: "x",
		DisplayName:  name,
		Department:   models.DepartmentAll,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func createProject(t *testing.T, db *gorm.DB, creator *models.Member, status models.ProjectStatus) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:     "Spring campaign",
		Type:      models.ProjectTypeVideo,
		Status:    status,
		CreatedBy: creator.ID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func countLogs(t *testing.T, db *gorm.DB, projectID interface{}, action string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.ProjectLog{}).
		Where("project_id = ? AND action = ?", projectID, action).
		Count(&n).Error)
	return n
}

func daysFromNow(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}
