package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/freshcart/freshcart-api/configs"
	"github.com/freshcart/freshcart-api/internal/adapter/cache"
	apihttp "github.com/freshcart/freshcart-api/internal/adapter/http"
	"github.com/freshcart/freshcart-api/internal/adapter/http/middleware"
	"github.com/freshcart/freshcart-api/internal/adapter/kafka"
	"github.com/freshcart/freshcart-api/internal/adapter/payment"
	"github.com/freshcart/freshcart-api/internal/adapter/queue"
	"github.com/freshcart/freshcart-api/internal/adapter/recipe"
	"github.com/freshcart/freshcart-api/internal/adapter/repo"
	"github.com/freshcart/freshcart-api/internal/cart"
	"github.com/freshcart/freshcart-api/internal/logging"
	"github.com/freshcart/freshcart-api/internal/usecase"
	"github.com/freshcart/freshcart-api/internal/worker"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, cfg.App.LogFile)
	log.Info("starting up")

	// database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(db); err != nil {
		return nil, nil, err
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}
	setupQueue(ch)

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Idempotency.TTL)
	gateway := payment.NewGateway(cfg.Payment.BaseURL, cfg.Payment.APIKey, cfg.Payment.Timeout)
	carts := cart.NewRegistry()

	// use cases
	createUC := usecase.NewCreateOrder(orderRepo, idem, producer)
	checkoutUC := usecase.NewCheckout(carts, gateway, createUC)
	listUC := usecase.NewListOrders(orderRepo, usecase.NewCooldown(cfg.Orders.FetchCooldown))
	suggestUC := usecase.NewSuggestIngredients(
		recipe.NewGeminiSource(cfg.Recipe.BaseURL, cfg.Recipe.APIKey, cfg.Recipe.Timeout),
		recipe.NewStaticTable(),
	)

	// background jobs
	appCtx, stop := context.WithCancel(context.Background())
	go worker.NewRetentionWorker(orderRepo, cfg.Orders.PurgeInterval).Run(appCtx)
	setupFulfillment(appCtx, cfg, orderRepo, statusCache)

	// http surface
	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cart:           apihttp.NewCartHandler(carts),
		Order:          apihttp.NewOrderHandler(checkoutUC, listUC, statusCache, orderRepo),
		Recipe:         apihttp.NewRecipeHandler(suggestUC),
		Token:          apihttp.NewTokenHandler(cfg),
		Authz:          middleware.NewAuthz(cfg),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	cleanup := func() {
		stop()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp.Channel) {
	h := queue.NewNotifyHandler()

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("order.placed.q", queue.JSONHandler[usecase.OrderPlacedMsg]{HandleFunc: h.HandlePlaced})

	if err := router.Start(); err != nil {
		panic(err)
	}
}

func setupFulfillment(ctx context.Context, cfg configs.Config, orderRepo usecase.OrderRepo, statusCache usecase.StatusCache) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewFulfillmentHandler(orderRepo, statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle, logging.New("fulfillment"))

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			panic(err)
		}
	}()
}
