package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"cashpoint/internal/config"
	"cashpoint/internal/repositories"
	"cashpoint/internal/repositories/cache"
	"cashpoint/internal/routes"
)

func main() {
	config.LoadEnv()

	db, err := repositories.InitDB(repositories.DefaultDBConfig())
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var cacheSvc *cache.Service
	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	candidate := cache.NewService(redisClient, 5*time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := candidate.HealthCheck(ctx); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	} else {
		cacheSvc = candidate
		defer cacheSvc.Close()
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName:      "cashpoint",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Brute-force protection on the credential endpoints only.
	authLimiter := limiter.New(limiter.Config{
		Max:        config.GetIntEnv("AUTH_RATE_LIMIT", 10),
		Expiration: time.Minute,
	})
	app.Use("/api/login", authLimiter)
	app.Use("/api/register", authLimiter)

	routes.SetupRoutes(app, db, cacheSvc)

	port := config.GetEnv("PORT", "8080")
	log.Printf("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
