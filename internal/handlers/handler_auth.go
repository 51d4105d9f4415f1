package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/SscSPs/komunity_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles login, sign up and password resets.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// registerAuthRoutes sets up the public authentication routes. limit guards
// the credential endpoints and may be nil.
func registerAuthRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade, limit gin.HandlerFunc) {
	h := &authHandler{userService: userService, tokenService: tokenService}

	guarded := rg.Group("")
	if limit != nil {
		guarded.Use(limit)
	}
	guarded.POST("/auth-token/", h.obtainToken)
	guarded.POST("/users/signup/", h.signUp)
	guarded.POST("/password-reset/", h.requestPasswordReset)
	guarded.POST("/password-reset/confirm/", h.confirmPasswordReset)
}

// obtainToken godoc
// @Summary Obtain a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth-token/ [post]
func (h *authHandler) obtainToken(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Token issued", slog.Int64("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// signUp godoc
// @Summary Register new user
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.SignUpRequest true "Sign up details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /users/signup/ [post]
func (h *authHandler) signUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *authHandler) requestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to request password reset")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "OK"})
}

func (h *authHandler) confirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "OK"})
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{ID: u.UserID, Email: u.Email, DateJoined: u.DateJoined}
}
