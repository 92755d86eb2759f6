package main

import (
	"context"
	"log"
	"strings"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/client"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/config"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/handler"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/oauth2"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env는 로컬 개발 편의용 - 없으면 환경변수만 사용
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	postgres, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}
	defer postgres.Close()

	if err := postgres.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	redisClient, err := db.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}
	defer redisClient.Close()

	sessions := db.NewSessionStore(redisClient)

	verifiers := map[string]service.ProviderVerifier{
		oauth2.ProviderGoogle: client.NewGoogleVerifier(cfg.OAuth.GoogleClientID),
		oauth2.ProviderKakao:  client.NewKakaoClient(),
		oauth2.ProviderNaver:  client.NewNaverClient(),
	}

	authService, err := service.NewAuthService(postgres, sessions, cfg.Auth, verifiers)
	if err != nil {
		log.Fatalf("failed to init auth service: %v", err)
	}
	userService := service.NewUserService(postgres)
	pinService := service.NewPinService(postgres)
	memberService := service.NewMemberService(postgres)
	taskService := service.NewTaskService(postgres)
	notificationService := service.NewNotificationService(postgres)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	pinHandler := handler.NewPinHandler(pinService, memberService)
	taskHandler := handler.NewTaskHandler(taskService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ",")))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/token", authHandler.Refresh)
		auth.POST("/verify", authHandler.Verify)
		auth.POST("/oauth2", authHandler.OAuth2Login)
		auth.POST("/password", authHandler.ResetPassword)
		auth.POST("/logout", handler.AuthMiddleware(authService), authHandler.Logout)
	}

	users := router.Group("/api/users")
	{
		users.POST("/find-username", userHandler.FindUsername)

		me := users.Group("", handler.AuthMiddleware(authService))
		{
			me.GET("/me", userHandler.Me)
			me.PUT("/me", userHandler.UpdateMe)
			me.DELETE("/me", userHandler.DeleteMe)
		}
	}

	pins := router.Group("/api/pins", handler.AuthMiddleware(authService))
	{
		pins.POST("", pinHandler.Create)
		pins.GET("", pinHandler.List)
		pins.GET("/:pinId", pinHandler.Get)
		pins.PUT("/:pinId", pinHandler.Update)
		pins.DELETE("/:pinId", pinHandler.Delete)

		pins.POST("/:pinId/members", pinHandler.AddMember)
		pins.GET("/:pinId/members", pinHandler.ListMembers)
		pins.DELETE("/:pinId/members/me", pinHandler.Leave)
		pins.DELETE("/:pinId/members/:userId", pinHandler.RemoveMember)

		pins.POST("/:pinId/tasks", taskHandler.Create)
		pins.GET("/:pinId/tasks", taskHandler.List)
	}

	tasks := router.Group("/api/tasks", handler.AuthMiddleware(authService))
	{
		tasks.PUT("/:taskId", taskHandler.Update)
		tasks.DELETE("/:taskId", taskHandler.Delete)
		tasks.PUT("/:taskId/complete", taskHandler.Complete)
		tasks.PUT("/:taskId/uncomplete", taskHandler.Uncomplete)
		tasks.POST("/:taskId/times", taskHandler.AddTimeInfo)
	}

	notifications := router.Group("/api/notifications", handler.AuthMiddleware(authService))
	{
		notifications.POST("", notificationHandler.Create)
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/:notificationId/read", notificationHandler.MarkRead)
		notifications.PUT("/:notificationId/unread", notificationHandler.MarkUnread)
		notifications.DELETE("/:notificationId", notificationHandler.Delete)
		notifications.POST("/location-trigger", notificationHandler.LocationTrigger)
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
