package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Backend          Backend          `mapstructure:",squash"`
	Meta             Meta             `mapstructure:",squash"`
	Cache            Cache            `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	HierarchyRefresh HierarchyRefresh `mapstructure:",squash"`
	Creative         Creative         `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Enabled  bool   `mapstructure:"database_enabled"`
}

// Backend é o serviço remoto que guarda usuários, empresas e contas vinculadas
type Backend struct {
	URL     string        `mapstructure:"backend_url"`
	Timeout time.Duration `mapstructure:"backend_timeout"`
}

type Meta struct {
	BaseURL              string        `mapstructure:"meta_base_url"`
	URL                  string        `mapstructure:"-"`
	Version              string        `mapstructure:"meta_version"`
	DialogURL            string        `mapstructure:"meta_dialog_url"`
	AppID                string        `mapstructure:"meta_app_id"`
	AppSecret            string        `mapstructure:"meta_app_secret"`
	RedirectURI          string        `mapstructure:"meta_redirect_uri"`
	CallbackAddr         string        `mapstructure:"meta_callback_addr"`
	Scopes               []string      `mapstructure:"meta_scopes"`
	MaxConcurrentFetches int           `mapstructure:"meta_max_concurrent_fetches"`
	ConsentTimeout       time.Duration `mapstructure:"meta_consent_timeout"`
	RequestTimeout       time.Duration `mapstructure:"meta_request_timeout"`
}

type Cache struct {
	Driver        string `mapstructure:"cache_driver"`
	RedisURL      string `mapstructure:"cache_redis_url"`
	Prefix        string `mapstructure:"cache_prefix"`
	FilePath      string `mapstructure:"cache_file_path"`
	EncryptionKey string `mapstructure:"cache_encryption_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret     string        `mapstructure:"auth_secret"`
	Expiration time.Duration `mapstructure:"auth_expiration"`
}

type HierarchyRefresh struct {
	CronSchedule string `mapstructure:"hierarchy_refresh_cron"`
	Enabled      bool   `mapstructure:"hierarchy_refresh_enabled"`
}

type Creative struct {
	MaxTitleLength int `mapstructure:"creative_max_title_length"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adlink?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_ENABLED", true)

	viper.SetDefault("BACKEND_URL", "http://localhost:5000")
	viper.SetDefault("BACKEND_TIMEOUT", "30s")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_DIALOG_URL", "https://www.facebook.com")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:8000/v1/meta/callback")
	viper.SetDefault("META_CALLBACK_ADDR", "127.0.0.1:0") // Apenas para o cliente de terminal
	viper.SetDefault("META_SCOPES", "ads_read,business_management")
	viper.SetDefault("META_MAX_CONCURRENT_FETCHES", 4)
	viper.SetDefault("META_CONSENT_TIMEOUT", "5m")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("CACHE_DRIVER", "redis") // redis, postgres, file ou memory
	viper.SetDefault("CACHE_REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CACHE_PREFIX", "adlink:")
	viper.SetDefault("CACHE_FILE_PATH", defaultCacheFile())
	viper.SetDefault("CACHE_ENCRYPTION_KEY", "your_encryption_key")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_EXPIRATION", "24h")

	viper.SetDefault("HIERARCHY_REFRESH_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("HIERARCHY_REFRESH_ENABLED", false)

	viper.SetDefault("CREATIVE_MAX_TITLE_LENGTH", 120)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Meta.BaseURL, "/"), config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações de configuração que impedem a inicialização
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "redis", "postgres", "file", "memory":
	default:
		return fmt.Errorf("CACHE_DRIVER inválido: %q", c.Cache.Driver)
	}

	if c.Cache.Driver == "postgres" && !c.Database.Enabled {
		return fmt.Errorf("CACHE_DRIVER=postgres exige DATABASE_ENABLED=true")
	}

	if c.Meta.MaxConcurrentFetches < 1 {
		c.Meta.MaxConcurrentFetches = 1
	}

	return nil
}

func defaultCacheFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "adlink-state.toml"
	}
	return filepath.Join(dir, "adlink", "state.toml")
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
