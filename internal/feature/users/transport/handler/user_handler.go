// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/transport/http/dto"
	"user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/http/validation"
	jwtmw "user_backend/internal/platform/jwt"
)

// UserUsecase はハンドラーが利用するユーザー管理操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id uint, in usecase.UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

var errInvalidUserID = errors.New("user id must be a positive integer")

// UserHandler は /users リソースを処理します。全ルートはjwtmw.AuthRequiredの配下に置きます。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List は全ユーザーを返します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.internalError(c, "list users failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListRes(users))
}

// Get はユーザーを1件返します。存在しない場合は404を返却します。
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	user, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.internalError(c, "get user failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// Create はリクエストを検証して新しいユーザーを保存します。
// - バリデーションエラーとメール重複は400を返却
// - 成功時は作成したユーザー付きで201を返却
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	user, err := h.uc.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("create user rejected", "error", err, "email", req.Email, "actor_id", c.GetUint(jwtmw.ContextUserID))
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrEmailAlreadyExists.Error()})
			return
		}
		h.internalError(c, "create user failed", err)
		return
	}

	slog.Info("user created", "user_id", user.ID, "actor_id", c.GetUint(jwtmw.ContextUserID))
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Update は部分更新を適用します。
// - バリデーションエラーとメール重複は400を返却
// - 存在しないユーザーは404を返却
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update user validation failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
		return
	}

	user, err := h.uc.UpdateUser(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("update user rejected", "error", err, "user_id", id, "actor_id", c.GetUint(jwtmw.ContextUserID))
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrEmailAlreadyExists.Error()})
		default:
			h.internalError(c, "update user failed", err)
		}
		return
	}

	slog.Info("user updated", "user_id", user.ID, "actor_id", c.GetUint(jwtmw.ContextUserID))
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// Delete はユーザーを削除し、ユーザーの有無にかかわらず成功時は204を返却します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		h.internalError(c, "delete user failed", err)
		return
	}
	slog.Info("user deleted", "user_id", id, "actor_id", c.GetUint(jwtmw.ContextUserID))
	c.Status(http.StatusNoContent)
}

// userID はパスパラメータ{id}をバインドします。失敗時は400を書き込みfalseを返します。
func (h *UserHandler) userID(c *gin.Context) (uint, bool) {
	var id uint
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err == nil && id == 0 {
		err = errInvalidUserID
	}
	if err != nil {
		slog.Warn("invalid user id", "error", err, "id", c.Param("id"), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// internalError は原因をログに記録し、内容を公開せずに500を返却します。
func (h *UserHandler) internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
