package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"eventhub_backend/internals/configs"
	database "eventhub_backend/internals/databases"
	eventModel "eventhub_backend/internals/features/events/event/model"
	orderModel "eventhub_backend/internals/features/events/order/model"
	orderService "eventhub_backend/internals/features/events/order/service"
	userModel "eventhub_backend/internals/features/users/user/model"
	"eventhub_backend/internals/helpers/geocode"
	"eventhub_backend/internals/helpers/imagestore"
	"eventhub_backend/internals/middlewares"
	"eventhub_backend/internals/route"
)

func main() {
	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               64 * 1024 * 1024, // event forms carry several images
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.Setup(app)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	database.TunePool(db)

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&eventModel.EventModel{},
		&eventModel.EventImageModel{},
		&eventModel.EventPriceZoneModel{},
		&orderModel.OrderModel{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	geocoder := geocode.New(cfg.GeocodeBaseURL, cfg.AppVersion)
	store := imagestore.New(cfg.ImageAPIBaseURL, cfg.ImagePublicKey, cfg.ImageAPIKey, cfg.CDNDomain)
	gateway := orderService.NewMidtransGateway(cfg.MidtransServerKey)

	route.Setup(app, db, cfg, geocoder, store, gateway)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
