package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/commerce-platform/distribution-service/pkg/cloudevents"
	"github.com/commerce-platform/distribution-service/pkg/errors"
	"github.com/commerce-platform/distribution-service/pkg/kafka"
	"github.com/commerce-platform/distribution-service/pkg/logging"
	"github.com/commerce-platform/distribution-service/pkg/metrics"
	"github.com/commerce-platform/distribution-service/pkg/middleware"
	"github.com/commerce-platform/distribution-service/pkg/mongodb"
	"github.com/commerce-platform/distribution-service/pkg/outbox"

	"github.com/commerce-platform/distribution-service/internal/application"
	"github.com/commerce-platform/distribution-service/internal/domain"
	mongoRepo "github.com/commerce-platform/distribution-service/internal/infrastructure/mongodb"
)

const serviceName = "distribution-service"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting distribution-service API")

	config := loadConfig()
	ctx := context.Background()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	config.MongoDB.Monitor = mongodb.NewCommandMonitor(m, logger)
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	producer := kafka.NewProductionProducer(config.Kafka, m, logger)
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceDistribution)

	db := mongoClient.Database()
	fulfillmentRepo := mongoRepo.NewFulfillmentRepository(db, eventFactory)
	warehouseRepo := mongoRepo.NewWarehouseRepository(db)
	ruleRepo := mongoRepo.NewDistributionRuleRepository(db)
	shippingMethodRepo := mongoRepo.NewShippingMethodRepository(db)

	outboxPublisher := outbox.NewPublisher(
		fulfillmentRepo.GetOutboxRepository(),
		producer,
		logger,
		m,
		&outbox.PublisherConfig{
			PollInterval: 1 * time.Second,
			BatchSize:    100,
		},
	)
	if err := outboxPublisher.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start outbox publisher")
		os.Exit(1)
	}
	defer outboxPublisher.Stop()
	logger.Info("Outbox publisher started")

	resolver := application.NewWarehouseResolver(warehouseRepo, ruleRepo, logger)
	fulfillmentService := application.NewFulfillmentApplicationService(
		fulfillmentRepo,
		warehouseRepo,
		shippingMethodRepo,
		resolver,
		m,
		logger,
	)
	ruleService := application.NewDistributionRuleApplicationService(
		ruleRepo,
		producer,
		eventFactory,
		m,
		logger,
	)

	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))

	router.GET("/metrics", middleware.MetricsEndpoint(m))

	api := router.Group("/api/v1")
	{
		fulfillments := api.Group("/fulfillments")
		{
			fulfillments.POST("", createFulfillmentHandler(fulfillmentService, logger))
			fulfillments.POST("/resolve", resolveWarehouseHandler(fulfillmentService, logger))
			fulfillments.GET("/:fulfillmentId", getFulfillmentHandler(fulfillmentService, logger))
			fulfillments.POST("/:fulfillmentId/status", changeFulfillmentStatusHandler(fulfillmentService, logger))
			fulfillments.GET("/order/:orderId", getFulfillmentsByOrderHandler(fulfillmentService, logger))
		}

		rules := api.Group("/distribution-rules")
		{
			rules.POST("", createRuleHandler(ruleService, logger))
			rules.GET("", listRulesHandler(ruleService, logger))
			rules.GET("/:ruleId", getRuleHandler(ruleService, logger))
			rules.PUT("/:ruleId", updateRuleHandler(ruleService, logger))
			rules.DELETE("/:ruleId", deleteRuleHandler(ruleService, logger))
		}
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8007"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "distribution_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     serviceName,
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Request payloads

type shipToRequest struct {
	Line1      string   `json:"line1" binding:"required"`
	Line2      string   `json:"line2"`
	City       string   `json:"city" binding:"required"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode" binding:"required"`
	Country    string   `json:"country" binding:"required,country_code"`
	Latitude   *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type createFulfillmentRequest struct {
	OrderID              string        `json:"orderId" binding:"required"`
	OrderNumber          string        `json:"orderNumber"`
	WarehouseID          string        `json:"warehouseId"`
	ShippingMethodID     string        `json:"shippingMethodId"`
	PreferredWarehouseID string        `json:"preferredWarehouseId"`
	ShipTo               shipToRequest `json:"shipTo" binding:"required"`
	EstimatedDeliveryAt  *time.Time    `json:"estimatedDeliveryAt"`
	CustomerNotes        string        `json:"customerNotes"`
	CreatedBy            string        `json:"createdBy"`
}

type resolveWarehouseRequest struct {
	Country              string   `json:"country" binding:"required,country_code"`
	State                string   `json:"state"`
	PostalCode           string   `json:"postalCode"`
	Latitude             *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude            *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	ShippingMethodID     string   `json:"shippingMethodId"`
	PreferredWarehouseID string   `json:"preferredWarehouseId"`
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type createRuleRequest struct {
	Name                string   `json:"name" binding:"required"`
	Priority            *int     `json:"priority"`
	WarehouseID         string   `json:"warehouseId"`
	ApplicableCountries []string `json:"applicableCountries" binding:"omitempty,dive,country_code"`
	ApplicableRegions   []string `json:"applicableRegions"`
	PostalCodePatterns  []string `json:"postalCodePatterns" binding:"omitempty,dive,postal_pattern"`
	ShippingMethodID    string   `json:"shippingMethodId"`
	IsActive            *bool    `json:"isActive"`
	IsDefault           bool     `json:"isDefault"`
}

type updateRuleRequest struct {
	Name                *string  `json:"name"`
	Priority            *int     `json:"priority"`
	WarehouseID         *string  `json:"warehouseId"`
	ApplicableCountries []string `json:"applicableCountries" binding:"omitempty,dive,country_code"`
	ApplicableRegions   []string `json:"applicableRegions"`
	PostalCodePatterns  []string `json:"postalCodePatterns" binding:"omitempty,dive,postal_pattern"`
	ShippingMethodID    *string  `json:"shippingMethodId"`
	IsActive            *bool    `json:"isActive"`
	IsDefault           *bool    `json:"isDefault"`
}

// Handler implementations

func respondError(responder *middleware.ErrorResponder, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		responder.RespondWithAppError(appErr)
	} else {
		responder.RespondInternalError(err)
	}
}

func createFulfillmentHandler(service *application.FulfillmentApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req createFulfillmentRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.CreateFulfillmentCommand{
			OrderID:              req.OrderID,
			OrderNumber:          req.OrderNumber,
			WarehouseID:          req.WarehouseID,
			ShippingMethodID:     req.ShippingMethodID,
			PreferredWarehouseID: req.PreferredWarehouseID,
			ShipTo: domain.ShipToAddress{
				Line1:      req.ShipTo.Line1,
				Line2:      req.ShipTo.Line2,
				City:       req.ShipTo.City,
				State:      req.ShipTo.State,
				PostalCode: req.ShipTo.PostalCode,
				Country:    req.ShipTo.Country,
				Latitude:   req.ShipTo.Latitude,
				Longitude:  req.ShipTo.Longitude,
			},
			EstimatedDeliveryAt: req.EstimatedDeliveryAt,
			CustomerNotes:       req.CustomerNotes,
			CreatedBy:           req.CreatedBy,
		}

		fulfillment, err := service.CreateFulfillment(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, fulfillment)
	}
}

func resolveWarehouseHandler(service *application.FulfillmentApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req resolveWarehouseRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.ResolveWarehouseCommand{
			Request: domain.FulfillmentRequest{
				Destination: domain.Destination{
					Country:    req.Country,
					State:      req.State,
					PostalCode: req.PostalCode,
					Latitude:   req.Latitude,
					Longitude:  req.Longitude,
				},
				ShippingMethodID:     req.ShippingMethodID,
				PreferredWarehouseID: req.PreferredWarehouseID,
			},
		}

		result, err := service.ResolveWarehouse(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func getFulfillmentHandler(service *application.FulfillmentApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.GetFulfillmentQuery{FulfillmentID: c.Param("fulfillmentId")}

		fulfillment, err := service.GetFulfillment(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, fulfillment)
	}
}

func getFulfillmentsByOrderHandler(service *application.FulfillmentApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.GetFulfillmentsByOrderQuery{OrderID: c.Param("orderId")}

		fulfillments, err := service.GetFulfillmentsByOrder(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"fulfillments": fulfillments,
			"count":        len(fulfillments),
		})
	}
}

func changeFulfillmentStatusHandler(service *application.FulfillmentApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req changeStatusRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.ChangeFulfillmentStatusCommand{
			FulfillmentID: c.Param("fulfillmentId"),
			NewStatus:     req.Status,
		}

		fulfillment, err := service.ChangeFulfillmentStatus(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, fulfillment)
	}
}

func createRuleHandler(service *application.DistributionRuleApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req createRuleRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.CreateDistributionRuleCommand{
			Name:                req.Name,
			Priority:            req.Priority,
			WarehouseID:         req.WarehouseID,
			ApplicableCountries: req.ApplicableCountries,
			ApplicableRegions:   req.ApplicableRegions,
			PostalCodePatterns:  req.PostalCodePatterns,
			ShippingMethodID:    req.ShippingMethodID,
			IsActive:            req.IsActive,
			IsDefault:           req.IsDefault,
		}

		rule, err := service.CreateRule(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, rule)
	}
}

func listRulesHandler(service *application.DistributionRuleApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		rules, err := service.ListRules(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"rules": rules,
			"count": len(rules),
		})
	}
}

func getRuleHandler(service *application.DistributionRuleApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.GetDistributionRuleQuery{RuleID: c.Param("ruleId")}

		rule, err := service.GetRule(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, rule)
	}
}

func updateRuleHandler(service *application.DistributionRuleApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req updateRuleRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.UpdateDistributionRuleCommand{
			RuleID:              c.Param("ruleId"),
			Name:                req.Name,
			Priority:            req.Priority,
			WarehouseID:         req.WarehouseID,
			ApplicableCountries: req.ApplicableCountries,
			ApplicableRegions:   req.ApplicableRegions,
			PostalCodePatterns:  req.PostalCodePatterns,
			ShippingMethodID:    req.ShippingMethodID,
			IsActive:            req.IsActive,
			IsDefault:           req.IsDefault,
		}

		rule, err := service.UpdateRule(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, rule)
	}
}

func deleteRuleHandler(service *application.DistributionRuleApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		cmd := application.DeleteDistributionRuleCommand{RuleID: c.Param("ruleId")}

		if err := service.DeleteRule(c.Request.Context(), cmd); err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
