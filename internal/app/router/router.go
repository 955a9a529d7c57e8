package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "user_backend/internal/feature/auth/transport/handler"
	usershandler "user_backend/internal/feature/users/transport/handler"
	"user_backend/internal/platform/http/handler"
	"user_backend/internal/platform/http/middleware"
	jwtmw "user_backend/internal/platform/jwt"
)

// Deps はルーターに登録するハンドラーと依存関係です。
type Deps struct {
	Auth        *authhandler.AuthHandler
	Users       *usershandler.UserHandler
	Verifier    jwtmw.Verifier
	DB          handler.Pinger
	Logger      *slog.Logger
	CORSEnabled bool
}

// NewRouter はミドルウェアとルートを登録したgin.Engineを生成します。
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(d.Logger))
	if d.CORSEnabled {
		r.Use(cors.Default())
	}

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(d.DB))
	r.GET("/docs", handler.Docs)
	r.POST("/register", d.Auth.Register)
	r.POST("/login", d.Auth.Login)

	// 認証必須のルート（Bearerトークンが必要）
	users := r.Group("/users")
	users.Use(jwtmw.AuthRequired(d.Verifier))
	{
		users.GET("", d.Users.List)
		users.POST("", d.Users.Create)
		users.GET("/:id", d.Users.Get)
		users.PUT("/:id", d.Users.Update)
		users.DELETE("/:id", d.Users.Delete)
	}

	return r
}
