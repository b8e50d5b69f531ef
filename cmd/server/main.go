package main // Entry point

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/config"
    "github.com/iliyamo/travel-tour-booking/internal/database"
    "github.com/iliyamo/travel-tour-booking/internal/handler"
    "github.com/iliyamo/travel-tour-booking/internal/middleware"
    "github.com/iliyamo/travel-tour-booking/internal/payment"
    "github.com/iliyamo/travel-tour-booking/internal/queue"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
    "github.com/iliyamo/travel-tour-booking/internal/router"
    "github.com/iliyamo/travel-tour-booking/internal/service"
    "github.com/iliyamo/travel-tour-booking/internal/storage"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    if err := godotenv.Load(); err != nil {
        log.Printf("no .env file loaded: %v", err)
    }

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient()

    // Repositories.
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    destinations := repository.NewDestinationRepo(db)
    tours := repository.NewTourRepo(db)
    banners := repository.NewBannerRepo(db)
    participants := repository.NewParticipantRepo(db)
    orders := repository.NewOrderRepo(db)

    // Payment-link provider and the order service built on it.
    linker := payment.NewMidtransLinker(cfg.MidtransServerKey, cfg.MidtransProd)
    orderSvc := service.NewOrderService(orders, participants, tours, linker, service.QueuePublisher{})

    // Media storage is optional; catalog image uploads 503 without it.
    var media *storage.MediaStore
    if cfg.S3Bucket != "" {
        media, err = storage.NewMediaStore(context.Background(), storage.MediaConfig{
            Bucket:    cfg.S3Bucket,
            Region:    cfg.S3Region,
            Endpoint:  cfg.S3Endpoint,
            AccessKey: cfg.S3AccessKey,
            SecretKey: cfg.S3SecretKey,
            PublicURL: cfg.S3PublicURL,
        })
        if err != nil {
            log.Fatalf("media storage: %v", err)
        }
    }

    // Handlers.
    authH := handler.NewAuthHandler(cfg, users, tokens)
    googleH := handler.NewGoogleHandler(cfg, users, tokens)
    destinationH := handler.NewDestinationHandler(destinations)
    tourH := handler.NewTourHandler(tours, destinations)
    bannerH := handler.NewBannerHandler(banners)
    participantH := handler.NewParticipantHandler(participants, tours)
    orderH := handler.NewOrderHandler(orderSvc, orders)
    mediaH := handler.NewMediaHandler(media)

    e := echo.New()
    e.HideBanner = true

    limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, googleH, cfg.JWTSecret, limiter)
    router.RegisterPublic(e, destinationH, tourH, bannerH, cache)
    router.RegisterCustomer(e, participantH, orderH, cfg.JWTSecret)
    router.RegisterAdmin(e, destinationH, tourH, bannerH, orderH, mediaH, cfg.JWTSecret)

    // Order event consumer writes lifecycle events to logs/orders.log.
    go func() {
        if err := queue.StartOrderConsumer(); err != nil {
            log.Printf("order consumer stopped: %v", err)
        }
    }()

    // Hourly cleanup of long-expired refresh tokens.
    go func() {
        for range time.Tick(time.Hour) {
            if n, err := tokens.PurgeExpired(context.Background()); err != nil {
                log.Printf("token purge: %v", err)
            } else if n > 0 {
                log.Printf("token purge: removed %d expired tokens", n)
            }
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
