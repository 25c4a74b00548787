package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/infrastructure/cache"
	"github.com/vfg2006/adlink-api/infrastructure/database/postgres"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adlink-api/infrastructure/migration"
	"github.com/vfg2006/adlink-api/infrastructure/repository"
	"github.com/vfg2006/adlink-api/internal/api"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/scheduler"
	"github.com/vfg2006/adlink-api/internal/usecases/authenticating"
	"github.com/vfg2006/adlink-api/internal/usecases/creative"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pgConn *postgres.Connection
	if cfg.Database.Enabled {
		pgConn = pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		if err := migration.Migrate(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao preparar o schema do banco")
		}
	}

	store, closeStore, err := newCacheStore(cfg, pgConn)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o cache local")
	}
	defer closeStore()

	stateRepo := cache.NewStateRepository(store, cache.NewSealer(cfg.Cache.EncryptionKey))
	manager := linking.NewManager(stateRepo)

	metaConnector := meta.New(cfg, metaclient.NewClient(cfg))
	backend := backendclient.NewClient(cfg)

	linkingService := linking.NewService(cfg, manager, metaConnector, backend)
	authenticator := authenticating.NewService(backend, linkingService, cfg)
	reportingService := reporting.NewService(linkingService, backend)

	var creativeService creative.CreativeService
	if pgConn != nil {
		creativeService = creative.NewService(repository.NewCreativeRepository(pgConn), cfg)
	} else {
		logrus.Warn("Banco desabilitado: rotas de criativos não serão registradas")
	}

	hierarchyRefreshService := scheduler.NewHierarchyRefreshService(linkingService, cfg)
	if err := hierarchyRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização de hierarquias")
	} else {
		logrus.Info("Agendador de atualização de hierarquias iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:    authenticator,
		Linking:          linkingService,
		Reporting:        reportingService,
		Creatives:        creativeService,
		HierarchyRefresh: hierarchyRefreshService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newCacheStore escolhe o backend do estado local conforme CACHE_DRIVER
func newCacheStore(cfg *config.Config, pgConn *postgres.Connection) (cache.Store, func(), error) {
	noop := func() {}

	switch cfg.Cache.Driver {
	case "redis":
		store, err := cache.NewRedisStore(cfg.Cache.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			return nil, noop, err
		}
		logrus.Info("Cache local em Redis")
		return store, func() { _ = store.Close() }, nil

	case "postgres":
		if pgConn == nil {
			return nil, noop, fmt.Errorf("CACHE_DRIVER=postgres exige conexão com o banco")
		}
		logrus.Info("Cache local em PostgreSQL")
		return repository.NewLocalStateStore(pgConn), noop, nil

	case "file":
		store, err := cache.NewFileStore(cfg.Cache.FilePath)
		if err != nil {
			return nil, noop, err
		}
		logrus.Infof("Cache local em arquivo: %s", store.Path())
		return store, noop, nil

	default:
		logrus.Warn("Cache local em memória: o estado será perdido ao reiniciar")
		return cache.NewMemoryStore(), noop, nil
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
