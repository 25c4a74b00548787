// Package cli é o cliente de terminal: conecta a conta de anúncios com um
// listener local e guarda o estado num arquivo do usuário.
package cli

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/adlink-api/infrastructure/cache"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adlink-api/internal/config"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultProfile = "default"

type app struct {
	linking linking.LinkingService
	backend backendclient.Client
	styles  styles
}

type options struct {
	profile string
	asJSON  bool
}

func Execute() error {
	return newRootCmd(nil).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "adlink",
		Short:         "adlink: vincula contas de anúncio à sua empresa",
		Long:          "adlink conecta a conta da plataforma de anúncios, carrega empresas e contas, permite escolher quais vincular e grava a seleção no backend.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.profile, "profile", defaultProfile, "perfil local (chave do estado salvo)")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "saída em JSON")

	if a == nil {
		wired, err := wireApp()
		if err != nil {
			rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
				return err
			}
			return rootCmd
		}
		a = wired
	}

	rootCmd.AddCommand(
		newLoginCmd(a, opts),
		newConnectCmd(a, opts),
		newHierarchyCmd(a, opts),
		newToggleCmd(a, opts),
		newSaveCmd(a, opts),
		newLinkedCmd(a, opts),
		newDisconnectCmd(a, opts),
		newLogoutCmd(a, opts),
	)

	return rootCmd
}

// wireApp monta os serviços com cache em arquivo, salvo se CACHE_DRIVER=memory
func wireApp() (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("carregar configuração: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil || level > logrus.WarnLevel {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)

	var store cache.Store
	if cfg.Cache.Driver == "memory" {
		store = cache.NewMemoryStore()
	} else {
		fileStore, err := cache.NewFileStore(cfg.Cache.FilePath)
		if err != nil {
			return nil, fmt.Errorf("abrir cache local: %w", err)
		}
		store = fileStore
	}

	repo := cache.NewStateRepository(store, cache.NewSealer(cfg.Cache.EncryptionKey))
	backend := backendclient.NewClient(cfg)
	connector := meta.New(cfg, metaclient.NewClient(cfg))

	return &app{
		linking: linking.NewService(cfg, linking.NewManager(repo), connector, backend),
		backend: backend,
		styles:  newStyles(),
	}, nil
}

func writeOutput(w io.Writer, opts *options, v any, rendered func() string) error {
	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	_, err := fmt.Fprintln(w, rendered())
	return err
}
