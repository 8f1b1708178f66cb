package app

import (
	"context"
	"fmt"
	"log/slog"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/sav-labs/dynamic-k8s-resources/internal/adapters/outbound/k8s"
	"github.com/sav-labs/dynamic-k8s-resources/internal/config"
	"github.com/sav-labs/dynamic-k8s-resources/internal/httpserver"
	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/shutdown"
	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

// App wires the clients, adapters and services together and owns their lifecycle.
type App struct {
	logger        *slog.Logger
	appState      appstater
	adapter       *k8s.Adapter
	scaler        *scaler.Service
	httpServer    *httpserver.Server
	metricsServer *httpserver.MetricsServer
}

// New creates a new application instance with all dependencies wired.
func New(logger *slog.Logger, cfg *config.Config, appState appstater) (*App, error) {
	kubeConfig, err := clientcmd.BuildConfigFromFlags(
		cfg.KubeMaster,
		cfg.KubeConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	if cfg.InsecureSkipTLSVerify {
		kubeConfig.TLSClientConfig.Insecure = true
		kubeConfig.TLSClientConfig.CAFile = ""
		kubeConfig.TLSClientConfig.CAData = nil
	}

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	metricsClientset, err := metricsv.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create metrics clientset: %w", err)
	}

	// One adapter implements all four scaler ports.
	adapter := k8s.New(logger, clientset, metricsClientset)

	scalerService := scaler.New(
		logger,
		adapter,
		adapter,
		adapter,
		adapter,
		cfg.Thresholds(),
		cfg.Interval,
		cfg.PodLabelSelector,
		cfg.Concurrency,
	)

	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort)
	httpServer := httpserver.New(logger, appState, cfg.HTTPPort, scalerService, metricsServer)

	return &App{
		logger:        logger,
		appState:      appState,
		adapter:       adapter,
		scaler:        scalerService,
		httpServer:    httpServer,
		metricsServer: metricsServer,
	}, nil
}

// Run starts all components and blocks until the context is cancelled, then
// performs a graceful shutdown bounded by the shutdown timeout.
func (a *App) Run(originCtx context.Context) error {
	if err := a.appState.SetStarting(originCtx); err != nil {
		return fmt.Errorf("set starting application state: %w", err)
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	// Refuse to run against a cluster that cannot resize pods in place.
	if err := a.adapter.CheckResizeSupport(ctx); err != nil {
		return fmt.Errorf("check resize support: %w", err)
	}

	signalHandler := shutdown.New(a.logger, a.appState)
	go signalHandler.HandleSignals(ctx, cancel)

	if err := a.metricsServer.Start(ctx); err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}

	a.appState.RegisterShutdowner(a.metricsServer)

	if err := a.httpServer.Start(ctx); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}

	a.appState.RegisterShutdowner(a.httpServer)

	if err := a.scaler.Start(ctx); err != nil {
		return fmt.Errorf("start scaler service: %w", err)
	}

	a.appState.RegisterShutdowner(a.scaler)

	if err := a.appState.SetRunning(ctx); err != nil {
		return fmt.Errorf("set running application state: %w", err)
	}

	a.logger.InfoContext(ctx, "resource manager running")

	<-ctx.Done()

	return a.appState.Shutdown(originCtx)
}
