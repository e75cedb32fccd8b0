package routes

import (
	"context"
	"log"

	_ "payment_gateway/docs" // swag generated
	"payment_gateway/internal/adapter/http/handlers"
	"payment_gateway/internal/adapter/persistence/repository"
	appconfig "payment_gateway/internal/infrastructure/config"
	"payment_gateway/internal/infrastructure/database"
	"payment_gateway/internal/infrastructure/lock"
	"payment_gateway/internal/infrastructure/logger"
	"payment_gateway/internal/infrastructure/metrics"
	"payment_gateway/internal/infrastructure/payments"
	"payment_gateway/internal/usecase"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

var router = gin.New()

// Run will start the server
func Run() {
	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l, err := logger.Setup(cfg.App.LogLevel, cfg.App.IsProduction())
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := getRoutes(context.Background(), cfg); err != nil {
		l.Fatal("failed to wire routes", zap.Error(err))
	}

	l.Info("starting server", zap.String("port", cfg.App.Port), zap.Bool("mock_gateway", cfg.Payment.MockMode))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		l.Fatal("failed to startup the application", zap.Error(err))
	}
}

func getRoutes(ctx context.Context, cfg *appconfig.Config) error {
	l := zap.L().Named("routes")

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return err
	}

	payAccountRepo := repository.NewPayAccountDynamoRepository(ddb, cfg.DynamoDB.PayAccountsTable)
	transactionRepo := repository.NewTransactionDynamoRepository(ddb, cfg.DynamoDB.TransactionsTable)

	paymentGateway, err := payments.NewGateway(cfg.Payment)
	if err != nil {
		l.Warn("payment gateway not configured", zap.Error(err))
	}

	var locker interfaces.IUserLocker
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		locker = lock.NewRedisLocker(rdb, cfg.Lock.TTL, cfg.Lock.Wait)
	} else {
		l.Info("redis not configured; pay account links are not serialized per user")
	}

	linker := usecase.NewAccountLinker(payAccountRepo, paymentGateway, locker)
	chargeUseCase := usecase.NewChargeUseCase(paymentGateway, linker)
	transactionUseCase := usecase.NewTransactionUseCase(transactionRepo, payAccountRepo, chargeUseCase)

	paymentHandler := handlers.NewPaymentHandler(chargeUseCase)
	transactionHandler := handlers.NewTransactionHandler(transactionUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, transactionHandler)
	return nil
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(metrics.Middleware)
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zap.L().Error("recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(500)
	}))
}
