package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/internal/api/handler"
	"github.com/vfg2006/adlink-api/internal/api/handler/router"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/scheduler"
	"github.com/vfg2006/adlink-api/internal/usecases/authenticating"
	"github.com/vfg2006/adlink-api/internal/usecases/creative"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/internal/usecases/reporting"
	"github.com/vfg2006/adlink-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services reúne os casos de uso expostos pela API
type Services struct {
	Authenticator    authenticating.Authenticator
	Linking          linking.LinkingService
	Reporting        reporting.ReportingService
	Creatives        creative.CreativeService
	HierarchyRefresh *scheduler.HierarchyRefreshService
}

func New(config *config.Config, services Services) (*Server, error) {
	if services.Authenticator == nil || services.Linking == nil {
		return nil, fmt.Errorf("autenticação e vinculação são obrigatórias")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta as rotas com a cadeia de middlewares global
func NewHandler(config *config.Config, services Services) http.Handler {
	cronServices := handler.CronJobServices{
		HierarchyRefreshService: services.HierarchyRefresh,
	}

	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Meta(services.Linking)...),
		router.WithRoutes(handler.LinkedAccounts(services.Linking)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	}
	if services.Reporting != nil {
		configs = append(configs, router.WithRoutes(handler.AdSpend(services.Reporting)...))
	}
	if services.Creatives != nil {
		configs = append(configs, router.WithRoutes(handler.Creatives(services.Creatives)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins...),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
