package services_test

import (
	"testing"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*services.AuthService, *gorm.DB) {
	db := newTestDB(t)
	return services.NewAuthService(repositories.NewAdminRepository(db)), db
}

func TestEnsureDefaultAdminCreatesOnce(t *testing.T) {
	svc, db := newAuthService(t)

	require.NoError(t, svc.EnsureDefaultAdmin())
	require.NoError(t, svc.EnsureDefaultAdmin())

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var admin models.Admin
	require.NoError(t, db.First(&admin).Error)
	assert.Equal(t, config.AdminEmail(), admin.Email)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, config.AdminPassword(), admin.HashedPassword)
}

func TestAuthenticateAndResolve(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin())

	token, err := svc.Authenticate(config.AdminEmail(), config.AdminPassword())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	admin, err := svc.ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, config.AdminEmail(), admin.Email)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin())

	_, wrongPass := svc.Authenticate(config.AdminEmail(), "nope")
	_, unknownEmail := svc.Authenticate("ghost@example.com", "nope")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(wrongPass))
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(unknownEmail))
	// Same message, so callers cannot enumerate accounts.
	assert.Equal(t, apperr.PublicMessage(wrongPass), apperr.PublicMessage(unknownEmail))
}

func TestResolveTokenRejectsDeactivatedAdmin(t *testing.T) {
	svc, db := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin())

	token, err := svc.Authenticate(config.AdminEmail(), config.AdminPassword())
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Admin{}).
		Where("email = ?", config.AdminEmail()).
		Update("is_active", false).Error)

	_, err = svc.ResolveToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.ResolveToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}
