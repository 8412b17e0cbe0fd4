package config

import "time"

// Config is the root application configuration.
type Config struct {
	AppEnv    string          `yaml:"app_env" env:"APP_ENV" env-default:"development"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Auth      AuthConfig      `yaml:"auth"`
	Leave     LeaveConfig     `yaml:"leave"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"             env:"PORT"                    env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"        env:"DB_HOST"        env-default:"localhost"`
	User       string `yaml:"user"        env:"DB_USER"        env-default:"postgres"`
	Password   string `yaml:"password"    env:"DB_PASSWORD"`
	Name       string `yaml:"name"        env:"DB_NAME"        env-default:"hris"`
	Port       string `yaml:"port"        env:"DB_PORT"        env-default:"5432"`
	SSLMode    string `yaml:"sslmode"     env:"DB_SSLMODE"     env-default:"disable"`
	MaxRetries int    `yaml:"max_retries" env:"DB_MAX_RETRIES" env-default:"5"`
}

type RedisConfig struct {
	Addr           string        `yaml:"addr"            env:"REDIS_ADDR"            env-default:"localhost:6379"`
	LeaveTypeTTL   time.Duration `yaml:"leave_type_ttl"  env:"REDIS_LEAVE_TYPE_TTL"  env-default:"30m"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl" env:"REDIS_IDEMPOTENCY_TTL" env-default:"24h"`
	MaxRetries     int           `yaml:"max_retries"     env:"REDIS_MAX_RETRIES"     env-default:"5"`
}

type KafkaConfig struct {
	Broker             string        `yaml:"broker"               env:"KAFKA_BROKER"`
	EmployeeGroupID    string        `yaml:"employee_group_id"    env:"KAFKA_EMPLOYEE_GROUP_ID"    env-default:"hris-leave-employee-directory"`
	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval" env:"KAFKA_OUTBOX_POLL_INTERVAL" env-default:"3s"`
	OutboxBatchSize    int           `yaml:"outbox_batch_size"    env:"KAFKA_OUTBOX_BATCH_SIZE"    env-default:"50"`
	MaxRetries         int           `yaml:"max_retries"          env:"KAFKA_MAX_RETRIES"          env-default:"5"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type LeaveConfig struct {
	RejectOverlap bool `yaml:"reject_overlap" env:"LEAVE_REJECT_OVERLAP" env-default:"true"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"   env-default:"10"`
	Burst             int     `yaml:"burst"               env:"RATE_LIMIT_BURST" env-default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
