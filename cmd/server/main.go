package main

import (
	"log"
	"net/http"
	"strings"

	_ "docstore-api/docs"
	"docstore-api/internal/auth"
	"docstore-api/internal/config"
	"docstore-api/internal/db"
	"docstore-api/internal/documents"
	"docstore-api/internal/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title DocStore API
// @version 1.0
// @description Document management backend with pluggable storage.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	// Users always live in Postgres; STORE_TYPE only selects the
	// documents backend.
	database := db.Connect(cfg.DBUrl)
	if err := db.Migrate(database); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	store, err := documents.NewStore(documents.StoreConfig{
		Type:    cfg.StoreType,
		DataDir: cfg.DataDir,
		DB:      database,
	})
	if err != nil {
		log.Fatal("failed to construct document store: ", err)
	}
	log.Printf("Using %s document store", cfg.StoreType)

	authService := &auth.AuthService{
		DB:        database,
		JWTSecret: cfg.JWTSecret,
	}

	hub := notify.NewHub()
	go hub.Run()

	var redisService *notify.RedisService
	if cfg.RedisUrl != "" {
		redisService, err = notify.NewRedisService(cfg.RedisUrl, hub)
		if err != nil {
			log.Fatal("failed to connect to redis: ", err)
		}
		go redisService.StartSubscription()
	}

	documentService := &documents.DocumentService{Store: store}
	documentHandler := &documents.DocumentHandler{
		Service:     documentService,
		AuthService: authService,
		Notifier:    notify.NewBroadcaster(hub, redisService),
	}
	wsHandler := notify.NewWebSocketHandler(hub, cfg.AllowedOrigins)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/register", authService.Register)
	router.POST("/login", authService.Login)
	router.GET("/me", authService.Me)

	router.GET("/documents", documentHandler.GetAll)
	router.POST("/documents", documentHandler.Create)
	router.GET("/documents/:id", documentHandler.GetByID)
	router.PATCH("/documents/:id", documentHandler.Update)
	router.DELETE("/documents/:id", documentHandler.Delete)

	router.GET("/ws", authService.AuthMiddleware(), wsHandler.HandleWebSocket)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Println("Server running on :" + cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
