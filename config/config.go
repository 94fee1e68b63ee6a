package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	defaultSessionSecret = "nft-session-secret"
)

type Config struct {
	Env        string
	Server     ServerConfig
	Store      StoreConfig
	Redis      RedisConfig
	Simulation SimulationConfig
	Session    SessionConfig
	Log        LogConfig
	Kafka      KafkaConfig
}

type ServerConfig struct {
	HTTPPort        int
	GRpcPort        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Backend string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}

type SimulationConfig struct {
	PurchaseDelay      time.Duration
	WalletConnectDelay time.Duration
	FraudRate          float64
	MockWalletAddress  string
	ExplorerURL        string
	DefaultCurrency    string
}

type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	CookieName    string
	SweepInterval time.Duration
}

type KafkaConfig struct {
	Brokers              []string
	ProducerRetryMax     int
	ProducerRequiredAcks int
	Enabled              bool
	ConsumerGroupID      string
	ClientID             string
}

type LogConfig struct {
	Level    string
	Mode     string
	Encoding string
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			HTTPPort:        getEnvAsInt("SERVER_HTTP_PORT", 8080),
			GRpcPort:        getEnvAsInt("SERVER_GRPC_PORT", 50057),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Simulation: SimulationConfig{
			PurchaseDelay:      getEnvAsDuration("PURCHASE_DELAY", 3*time.Second),
			WalletConnectDelay: getEnvAsDuration("WALLET_CONNECT_DELAY", 2*time.Second),
			FraudRate:          getEnvAsFloat("FRAUD_RATE", 0.2),
			MockWalletAddress:  getEnv("WALLET_MOCK_ADDRESS", "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"),
			ExplorerURL:        getEnv("EXPLORER_URL", "https://explorer.hiro.so/txid/"),
			DefaultCurrency:    getEnv("DEFAULT_CURRENCY", "STX"),
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:           getEnvAsDuration("SESSION_TTL", 2*time.Hour),
			CookieName:    getEnv("SESSION_COOKIE_NAME", "nft_session"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Mode:     getEnv("LOG_MODE", "development"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Kafka: KafkaConfig{
			Brokers:              getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ProducerRetryMax:     getEnvAsInt("KAFKA_PRODUCER_RETRY_MAX", 3),
			ProducerRequiredAcks: getEnvAsInt("KAFKA_PRODUCER_REQUIRED_ACKS", 1),
			Enabled:              getEnvAsBool("KAFKA_ENABLED", false),
			ConsumerGroupID:      getEnv("KAFKA_CONSUMER_GROUP_ID", "nftmarket-service"),
			ClientID:             getEnv("KAFKA_CLIENT_ID", "nftmarket"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}

	if c.Server.GRpcPort <= 0 || c.Server.GRpcPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRpcPort)
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}

	if !(c.Simulation.FraudRate >= 0 && c.Simulation.FraudRate <= 1) {
		return fmt.Errorf("fraud rate must be within [0,1], got %v", c.Simulation.FraudRate)
	}

	if c.Simulation.PurchaseDelay <= 0 || c.Simulation.WalletConnectDelay <= 0 {
		return fmt.Errorf("simulation delays must be positive")
	}

	if c.Simulation.MockWalletAddress == "" {
		return fmt.Errorf("mock wallet address is required")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session sweep interval must be positive")
	}

	if c.Session.Secret == "" || c.Session.Secret == defaultSessionSecret {
		if c.Env == "production" {
			return fmt.Errorf("session secret must be set in production")
		}
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	// Split by comma
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
