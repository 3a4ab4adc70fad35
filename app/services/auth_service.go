package services

import (
	"errors"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/skbags/atelier/pkg/auth"
	"github.com/skbags/atelier/pkg/logger"
	"gorm.io/gorm"
)

// AuthService issues and validates admin access tokens.
type AuthService struct {
	admins *repositories.AdminRepository
}

func NewAuthService(admins *repositories.AdminRepository) *AuthService {
	return &AuthService{admins: admins}
}

// Authenticate checks credentials and returns a signed bearer token.
// Unknown email, wrong password, and deactivated account all return the
// same Unauthorized error so callers cannot probe which admins exist.
func (s *AuthService) Authenticate(email, password string) (string, error) {
	admin, err := s.admins.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.Unauthorizedf("Incorrect email or password")
		}
		return "", apperr.Wrap(err, "auth: lookup admin")
	}

	if !admin.IsActive || !auth.CheckPassword(admin.HashedPassword, password) {
		return "", apperr.Unauthorizedf("Incorrect email or password")
	}

	token, err := auth.GenerateToken(admin.Email, config.TokenTTL())
	if err != nil {
		return "", apperr.Wrap(err, "auth: sign token")
	}
	return token, nil
}

// ResolveToken validates a bearer token and re-fetches the admin so a
// deactivated account loses access immediately, not at token expiry.
func (s *AuthService) ResolveToken(token string) (*models.Admin, error) {
	subject, err := auth.ValidateToken(token)
	if err != nil {
		return nil, apperr.Unauthorizedf("Could not validate credentials")
	}

	admin, err := s.admins.FindByEmail(subject)
	if err != nil {
		return nil, apperr.Unauthorizedf("Could not validate credentials")
	}
	if !admin.IsActive {
		return nil, apperr.Forbiddenf("Account is disabled")
	}

	return &admin, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account on first boot.
// When SYNC_ADMIN_PASSWORD is set, an existing account's password is reset
// to the configured one, which recovers access after a lost password.
func (s *AuthService) EnsureDefaultAdmin() error {
	email := config.AdminEmail()
	password := config.AdminPassword()

	admin, err := s.admins.FindByEmail(email)
	if err == nil {
		if !config.SyncAdminPassword() {
			return nil
		}
		hash, herr := auth.HashPassword(password)
		if herr != nil {
			return herr
		}
		if uerr := s.admins.UpdatePassword(admin.ID, hash); uerr != nil {
			return uerr
		}
		logger.Info("auth: default admin password synced", "email", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin = models.Admin{
		Email:          email,
		HashedPassword: hash,
		FullName:       "Store Admin",
		IsActive:       true,
	}
	if err := s.admins.Create(&admin); err != nil {
		return err
	}

	logger.Info("auth: default admin created", "email", email)
	return nil
}
