package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	QBO           QBO           `mapstructure:",squash"`
	Google        Google        `mapstructure:",squash"`
	OpenAI        OpenAI        `mapstructure:",squash"`
	ScheduledRuns ScheduledRuns `mapstructure:",squash"`
	Retention     Retention     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type QBO struct {
	Environment  string `mapstructure:"qbo_environment"`
	ClientID     string `mapstructure:"qbo_client_id"`
	ClientSecret string `mapstructure:"qbo_client_secret"`
	RedirectURI  string `mapstructure:"qbo_redirect_uri"`
}

type Google struct {
	ClientID     string `mapstructure:"google_client_id"`
	ClientSecret string `mapstructure:"google_client_secret"`
	RedirectURI  string `mapstructure:"google_redirect_uri"`
}

type OpenAI struct {
	APIKey string `mapstructure:"openai_api_key"`
	Model  string `mapstructure:"openai_model"`
}

type ScheduledRuns struct {
	CronSchedule      string `mapstructure:"scheduled_runs_cron"`
	MaxConcurrentJobs int    `mapstructure:"scheduled_runs_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"scheduled_runs_enabled"`
}

type Retention struct {
	CronSchedule string `mapstructure:"retention_cron"`
	SnapshotDays int    `mapstructure:"retention_snapshot_days"`
	DraftDays    int    `mapstructure:"retention_draft_days"`
	Enabled      bool   `mapstructure:"retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ledgerpulse")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("QBO_ENVIRONMENT", "sandbox")
	viper.SetDefault("QBO_CLIENT_ID", "your_client_id")
	viper.SetDefault("QBO_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("QBO_REDIRECT_URI", "http://localhost:8000/callback/qbo")

	viper.SetDefault("GOOGLE_CLIENT_ID", "your_client_id")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost:8000/callback/gmail")

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	// Defaults para execuções agendadas
	viper.SetDefault("SCHEDULED_RUNS_CRON", "0 * * * *")      // A cada hora cheia
	viper.SetDefault("SCHEDULED_RUNS_MAX_CONCURRENT_JOBS", 3) // 3 clientes concorrentes
	viper.SetDefault("SCHEDULED_RUNS_ENABLED", false)

	// Defaults para limpeza de dados antigos
	viper.SetDefault("RETENTION_CRON", "0 2 * * 0") // Domingo às 2h da manhã
	viper.SetDefault("RETENTION_SNAPSHOT_DAYS", 365)
	viper.SetDefault("RETENTION_DRAFT_DAYS", 90)
	viper.SetDefault("RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
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

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
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
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
