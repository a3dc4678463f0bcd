package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/middleware"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stemsi/placement-backend/internal/validator"
)

// AuthHandler handles registration and authentication endpoints.
type AuthHandler struct {
	registrationService *service.RegistrationService
	authService         *service.AuthService
	accountService      *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	registrationService *service.RegistrationService,
	authService *service.AuthService,
	accountService *service.AccountService,
) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		authService:         authService,
		accountService:      accountService,
	}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an Admin, Recruiter or Student account. Admin registration creates
// the institute on first use of its college name.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	reg, err := h.registrationService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reg)
}

// Login godoc
// POST /api/v1/auth/login
// Validates role + email + password and returns a JWT. A new sign-in replaces
// the account's previous session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.authService.SignIn(c.Request.Context(), req.Role, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Logout godoc
// POST /api/v1/auth/logout
// Ends the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), claims); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the signed-in account.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	profile, err := h.accountService.Profile(c.Request.Context(), claims.Role, claims.Email)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}
