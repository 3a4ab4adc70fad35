package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/middleware"
	"github.com/skbags/atelier/pkg/response"
	"github.com/skbags/atelier/pkg/validate"
)

// AuthController handles admin login and token introspection.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges admin credentials for a bearer token. Credentials arrive
// either as a JSON body or as a form-encoded username/password pair.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			response.Error(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		in.Email = r.FormValue("username")
		in.Password = r.FormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validate.Struct(in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Authenticate(in.Email, in.Password)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(config.TokenTTL().Seconds()),
	})
}

// Me returns the authenticated admin, confirming the token is still valid.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromCtx(r.Context())
	if admin == nil {
		response.Unauthorized(w, "Could not validate credentials")
		return
	}
	response.Success(w, admin)
}
