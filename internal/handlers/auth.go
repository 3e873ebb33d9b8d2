package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/auth"
	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/internal/middleware"
	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/pkg/crypto"
	apperrors "github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/response"
	"github.com/sigpat/sigpat/pkg/validator"
)

// AuthHandler serves login and identity endpoints.
type AuthHandler struct {
	db  *gorm.DB
	jwt *auth.JWTService
}

// NewAuthHandler builds the authentication handler.
func NewAuthHandler(db *gorm.DB, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an operator and issues an access token. Inactive
// accounts cannot log in.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.NewBadRequest("Corpo da requisição inválido"))
		return
	}
	req.Email = entities.Normalize(entities.FieldEmail, req.Email)
	if err := validator.ValidateStruct(req); err != nil {
		response.Error(c, apperrors.NewBadRequest(err.Error()))
		return
	}

	var user models.Usuario
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ? AND is_deleted = ?", req.Email, false).
		First(&user).Error
	if err != nil {
		response.Error(c, apperrors.ErrInvalidCredentials)
		return
	}

	if !crypto.VerifyPassword(user.PasswordHash, req.Password) {
		response.Error(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := h.jwt.GenerateAccessToken(auth.AccessTokenInput{
		UserID: user.ID,
		Name:   user.Nome,
		Email:  user.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the identity bound to the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	raw, ok := c.Get(middleware.CtxClaimsKey)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}
	claims, ok := raw.(*auth.Claims)
	if !ok {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":    claims.UserID,
		"nome":  claims.Name,
		"email": claims.Email,
	})
}
