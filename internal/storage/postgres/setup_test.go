package postgres

import (
	"testing"

	"github.com/realchief/RenderShotPanel/internal/config"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Disable logs during tests
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{}, &models.JobStatus{}, &models.RenderPlan{},
		&models.JobError{}, &models.Job{}, &models.JobTask{},
		&models.SubmitSession{}, &models.Payment{}, &models.CouponCode{},
		&models.PromotionPackage{}, &models.Ticket{}, &models.TicketReply{},
		&models.Setting{},
	)
	require.NoError(t, err)

	return db
}

// seedReferenceData inserts the status and plan rows the migrations
// normally provide.
func seedReferenceData(t *testing.T, db *gorm.DB) {
	statuses := []models.JobStatus{
		{Name: config.StatusSubmitted, DisplayName: "Submitted", IsDeletable: true},
		{Name: config.StatusRendering, DisplayName: "Rendering", IsSuspendable: true, IsDeletable: true, IsUpgradable: true},
		{Name: config.StatusSuspending, DisplayName: "Suspending"},
		{Name: config.StatusSuspended, DisplayName: "Suspended", IsDeletable: true, IsUpgradable: true},
		{Name: config.StatusResuming, DisplayName: "Resuming"},
		{Name: config.StatusCompleted, DisplayName: "Completed", IsDeletable: true},
		{Name: config.StatusFailed, DisplayName: "Failed", IsDeletable: true},
		{Name: config.StatusDeleted, DisplayName: "Deleted"},
	}
	require.NoError(t, db.Create(&statuses).Error)

	plans := []models.RenderPlan{
		{Name: "test_frame", DisplayName: "Test Frame", RatePerMin: 0.02},
		{Name: "animation_slow", DisplayName: "Animation (Economy)", RatePerMin: 0.05},
		{Name: "unlimited", DisplayName: "Unlimited", AdminOnly: true},
	}
	require.NoError(t, db.Create(&plans).Error)
}

func seedUser(t *testing.T, db *gorm.DB, username string, credit float64) *models.User {
	user := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		APIToken:       "token-" + username,
		Credit:         credit,
		RateMultiplier: 1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
