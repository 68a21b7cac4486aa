package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/tasker-api/internal/middleware"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  AuthServiceInterface
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	log          *zap.Logger
}

func NewAuthHandler(
	authService AuthServiceInterface,
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
		log:          log,
	}
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Phone == "" || req.Password == "" {
		c.BadRequest("phone and password are required")
		return
	}

	ctx := c.Request.Context()

	user, created, err := h.authService.LoginOrRegister(ctx, req.Phone, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if created {
		h.log.Info("user registered", zap.String("user_id", user.ID.String()))
	}

	_ = c.JSON(200, dto.LoginResponse{
		TokenResponse: *tokens,
		User:          toUserResponse(user),
		Created:       created,
	})
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx := c.Request.Context()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil || user.IsBanned() {
		c.Unauthorized("user not found")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Phone)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	newTokenHash := services.HashToken(tokenPair.RefreshToken)
	if err := h.tokenService.Rotate(ctx, user.ID, tokenHash, newTokenHash, expiresAt); err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		tokenHash := services.HashToken(req.RefreshToken)
		if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), tokenHash); err != nil {
			h.log.Warn("failed to revoke refresh token", zap.Error(err))
		}
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(c.Request.Context(), userID); err != nil {
		writeError(c, h.log, err)
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "all sessions logged out"})
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Phone)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, services.HashToken(tokenPair.RefreshToken), expiresAt); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}
