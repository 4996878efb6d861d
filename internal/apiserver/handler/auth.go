package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/jwt"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/password"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/revocation"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
)

// Auth handles account registration, login and token lifecycle
type Auth struct {
	db      database.Database
	tokens  *jwt.Service
	revoked revocation.Store
	hasher  password.Hasher
	logger  *zap.Logger
}

// NewAuth creates a new authentication handler
func NewAuth(db database.Database, tokens *jwt.Service, revoked revocation.Store, hasher password.Hasher, logger *zap.Logger) *Auth {
	return &Auth{
		db:      db,
		tokens:  tokens,
		revoked: revoked,
		hasher:  hasher,
		logger:  logger.Named("apiserver.handler.auth"),
	}
}

func userInfo(u *database.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// Register creates a farmer or mill account
func (h *Auth) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	user := &database.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		FullName: req.FullName,
		Role:     database.UserRole(req.Role),
		IsActive: true,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrEmailExists)
			return
		}
		respondStoreError(c, h.logger, "failed to create user", err, nil)
		return
	}

	h.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", req.Role))
	c.JSON(http.StatusCreated, userInfo(user))
}

// Login exchanges email and password for a bearer token
func (h *Auth) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
			return
		}
		respondStoreError(c, h.logger, "failed to load user", err, nil)
		return
	}
	if err := h.hasher.Compare(user.Password, req.Password); err != nil {
		i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
		return
	}
	if !user.IsActive {
		i18n.RespondWithError(c, i18n.ErrInactiveAccount)
		return
	}

	token, claims, err := h.tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		h.logger.Error("failed to generate token", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        userInfo(user),
	})
}

// Me returns the authenticated account
func (h *Auth) Me(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userInfo(p.User()))
}

// ChangePassword replaces the password after checking the current one
func (h *Auth) ChangePassword(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	user := p.User()
	if err := h.hasher.Compare(user.Password, req.OldPassword); err != nil {
		i18n.RespondWithError(c, i18n.ErrIncorrectPassword)
		return
	}
	hash, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	if err := h.db.UpdateUserPassword(c.Request.Context(), user.ID, hash); err != nil {
		respondStoreError(c, h.logger, "failed to update password", err, i18n.ErrUserNotFound)
		return
	}

	i18n.RespondOK(c, i18n.SuccessPasswordChanged, nil, nil)
}

// Logout revokes the presented token until it would have expired
func (h *Auth) Logout(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	claims := p.Claims()
	if err := h.revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		h.logger.Error("failed to revoke token", zap.String("jti", claims.ID), zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	i18n.RespondOK(c, i18n.SuccessLoggedOut, nil, nil)
}
