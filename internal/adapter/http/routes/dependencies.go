package routes

import (
	"context"
	"fmt"

	"furniture_estimates/internal/adapter/http/handlers"
	"furniture_estimates/internal/adapter/persistence/repository"
	"furniture_estimates/internal/infrastructure/awsclient"
	"furniture_estimates/internal/infrastructure/config"
	"furniture_estimates/internal/infrastructure/imaging"
	"furniture_estimates/internal/infrastructure/payments"
	"furniture_estimates/internal/infrastructure/realtime"
	"furniture_estimates/internal/usecase"
	"furniture_estimates/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type dependencies struct {
	Handlers Handlers
	closers  []func() error
}

func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (*dependencies, error) {
	deps := &dependencies{}

	awsCfg, err := awsclient.LoadConfig(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	ddb := awsclient.NewDynamoDB(awsCfg, cfg.DynamoDBEndpoint)
	estimateRepo := repository.NewEstimateDynamoRepository(ddb, cfg.EstimatesTable)
	paymentRepo := repository.NewEstimatePaymentDynamoRepository(ddb, cfg.PaymentsTable)

	imageStorage, err := newImageStorage(cfg, awsCfg)
	if err != nil {
		return nil, err
	}

	estimator, err := newEstimator(ctx, cfg, log, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	hub := realtime.NewHub(log, realtime.DefaultBuffer)
	notifier, err := newNotifier(ctx, cfg, hub, log, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, estimator, imaging.NewJPEGNormalizer(), notifier, log, cfg.ModelTimeout)

	var paymentGateway interfaces.IPaymentGateway
	if mp, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, log); err != nil {
		log.Warn("[server][routes] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mp
	}
	paymentUseCase := usecase.NewEstimatePaymentUseCase(paymentRepo, estimateRepo, paymentGateway, cfg.PaymentGatewayMock, log)

	deps.Handlers = Handlers{
		Estimates: handlers.NewEstimateHandler(estimateUseCase, imageStorage, log, handlers.EstimateHandlerOptions{
			AsyncIntake:   cfg.EstimateAsyncIntake,
			MaxImageBytes: cfg.EstimateMaxImageBytes,
			JobTimeout:    2 * cfg.ModelTimeout,
		}),
		Payments: handlers.NewEstimatePaymentHandler(paymentUseCase, log),
		Events:   handlers.NewEventsHandler(hub, log),
	}
	return deps, nil
}
