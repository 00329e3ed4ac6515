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
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
)

type Config struct {
	App        App               `mapstructure:",squash"`
	Server     Server            `mapstructure:",squash"`
	Database   Database          `mapstructure:",squash"`
	Auth       Auth              `mapstructure:",squash"`
	Cors       Cors              `mapstructure:",squash"`
	Dataset    Dataset           `mapstructure:",squash"`
	BaseReload BaseReload        `mapstructure:",squash"`
	Limits     paginating.Limits `mapstructure:",squash"`
}

type App struct {
	LogLevel     string   `mapstructure:"log_level"`
	LogDevFields []string `mapstructure:"log_dev_fields"` // Campos mantidos nos logs em desenvolvimento
	Env          string   `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret          string        `mapstructure:"auth_secret"`
	AppPasswordHash string        `mapstructure:"auth_app_password_hash"` // bcrypt da senha compartilhada
	TokenTTL        time.Duration `mapstructure:"auth_token_ttl"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Dataset descreve a tabela de origem e a janela de datas pesquisáveis
type Dataset struct {
	TableName         string    `mapstructure:"dataset_table_name"`
	MinDate           time.Time `mapstructure:"dataset_min_date"`
	DefaultWindowDays int       `mapstructure:"dataset_default_window_days"`
}

type BaseReload struct {
	Interval time.Duration `mapstructure:"base_reload_interval"`
	Enabled  bool          `mapstructure:"base_reload_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/crowley?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_APP_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATASET_TABLE_NAME", "crowley_insercoes")
	viper.SetDefault("DATASET_MIN_DATE", "2024-01-01")
	viper.SetDefault("DATASET_DEFAULT_WINDOW_DAYS", 30)

	viper.SetDefault("BASE_RELOAD_INTERVAL", "1h") // Mesmo TTL do cache da base no painel
	viper.SetDefault("BASE_RELOAD_ENABLED", true)

	limits := paginating.DefaultLimits()
	viper.SetDefault("LIMIT_MAX_PIVOT_CELLS", limits.MaxPivotCells)
	viper.SetDefault("LIMIT_PREVIEW_MAX_CELLS", limits.PreviewMaxCells)
	viper.SetDefault("LIMIT_PREVIEW_MAX_COLUMNS", limits.PreviewMaxColumns)
	viper.SetDefault("LIMIT_PREVIEW_ROWS", limits.PreviewRows)
	viper.SetDefault("LIMIT_PREVIEW_COLUMNS", limits.PreviewColumns)
	viper.SetDefault("LIMIT_EXPORT_MAX_COLUMNS", limits.ExportMaxColumns) // Limite de colunas do Excel
	viper.SetDefault("LIMIT_PRESENCE_PAGE_SIZE", limits.PresencePageSize)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_DEV_FIELDS", strings.Join(log.DefaultDevFields, ","))
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	if err := decode(config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func decode(config *Config) error {
	return viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.DateOnly),
		),
	))
}

func (c *Config) validate() error {
	if c.Dataset.TableName == "" {
		return fmt.Errorf("DATASET_TABLE_NAME é obrigatório")
	}
	if c.Dataset.DefaultWindowDays <= 0 {
		return fmt.Errorf("DATASET_DEFAULT_WINDOW_DAYS deve ser positivo, recebido %d", c.Dataset.DefaultWindowDays)
	}
	if c.Limits.PresencePageSize <= 0 {
		return fmt.Errorf("LIMIT_PRESENCE_PAGE_SIZE deve ser positivo, recebido %d", c.Limits.PresencePageSize)
	}
	if c.BaseReload.Enabled && c.BaseReload.Interval <= 0 {
		return fmt.Errorf("BASE_RELOAD_INTERVAL deve ser positivo quando a recarga está habilitada")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
