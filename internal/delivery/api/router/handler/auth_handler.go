package handler

import (
	"net/http"
	"time"

	"signin/internal/delivery/api/middleware"
	"signin/internal/delivery/api/response"
	"signin/internal/delivery/api/validator"
	deliverycontext "signin/internal/delivery/context"
	domainerrors "signin/internal/domain/errors"
	"signin/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// loginRequest is the JSON body of POST /login.
// Both fields must be present, but an empty string is a credential like any other and is rejected with 401.
type loginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// meResponse describes the bearer of a valid access token.
type meResponse struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthHandler serves the login endpoint and the token introspection endpoint.
type AuthHandler struct {
	uc usecase.LoginUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(uc usecase.LoginUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login exchanges a username and password for an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.ValidationError(c, map[string]string{"body": "invalid JSON"})
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.FieldErrors(err))
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: *req.Username,
		Password: *req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

	return response.Success(c, http.StatusOK, response.TokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
	})
}

// Me reports the subject of the presented access token. Requires AuthMiddleware.Authenticate.
func (h *AuthHandler) Me(c echo.Context) error {
	subject := deliverycontext.GetSubject(c)
	claims := middleware.GetClaims(c)
	if subject == "" || claims == nil {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	out := meResponse{Subject: subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	return response.Success(c, http.StatusOK, out)
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
