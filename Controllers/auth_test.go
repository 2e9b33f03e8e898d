package Controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"Mydailylogs/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB, Models.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Models.Organization{}, &Models.User{}))

	org := Models.Organization{Name: "Acme Kitchens", Slug: "acme-kitchens"}
	require.NoError(t, db.Create(&org).Error)
	user := Models.User{OrganizationID: org.ID, Name: "Sam Staff", Email: "sam@acme.test", Role: Models.RoleStaff, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	controller := NewAuthController(db)
	app := fiber.New()
	app.Post("/api/me/device", func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return controller.RegisterDevice(c)
	})
	return app, db, user
}

func TestRegisterDeviceStoresToken(t *testing.T) {
	app, db, user := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/me/device",
		strings.NewReader(`{"fcm_token":"device-token-123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored Models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "device-token-123", stored.FCMToken)
}

func TestRegisterDeviceRequiresToken(t *testing.T) {
	app, _, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/me/device", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
