package router

import (
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/pkg"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginPath is where unauthenticated callers of gated routes get redirected.
const LoginPath = "/api/user/login"

type Deps struct {
	Log      *zap.Logger
	Posts    *service.PostService
	Users    *service.UserService
	Subs     *service.SubscriptionService
	Email    *service.EmailService
	Tokens   *pkg.TokenManager
	Sessions middleware.SessionStore
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log), gin.Recovery())

	post := handler.NewPostHandler(d.Posts)
	group := handler.NewGroupHandler(d.Posts)
	user := handler.NewUserHandler(d.Users)
	sub := handler.NewSubscriptionHandler(d.Subs)
	email := handler.NewEmailHandler(d.Email)

	api := r.Group("/api")

	// Public listings and detail. OptionalAuth only fills in the principal
	// for the is_author flag; nothing here is gated.
	public := api.Group("")
	public.Use(middleware.OptionalAuth(d.Tokens, d.Sessions))
	{
		public.GET("/post", post.Index)
		public.GET("/post/:id", post.Detail)
		public.GET("/group", group.List)
		public.GET("/group/:slug", group.Posts)
		public.GET("/profile/:username", post.Profile)
	}

	// Account entry points.
	userGroup := api.Group("/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	api.POST("/token/refresh", user.Refresh)
	api.POST("/email/:scope/code", email.SendCode)

	// Everything below requires a live session; anonymous callers are
	// redirected to the login route before any form handling.
	auth := api.Group("")
	auth.Use(middleware.RequireAuth(d.Tokens, d.Sessions, LoginPath))
	{
		auth.POST("/post/create", post.Create)
		auth.POST("/post/:id/edit", post.Edit)
		auth.GET("/feed/follow", post.Followed)

		auth.POST("/follow", sub.Subscribe)
		auth.DELETE("/follow/:username", sub.Unsubscribe)
		auth.GET("/follow/:username", sub.Relation)

		auth.POST("/user/logout", user.Logout)
		auth.POST("/auth/change-password", user.ChangePassword)
	}

	return r
}
