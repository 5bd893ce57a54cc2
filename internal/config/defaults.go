package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBUser     = "leadscout"
	DefaultDBName     = "leadscout"
	DefaultDBMaxConns = 25

	DefaultMigrationPath = "migrations"

	DefaultRedisAddr     = "localhost:6379"
	DefaultRedisPrefix   = "leadscout"
	DefaultRedisStateTTL = 24 * time.Hour

	DefaultKafkaBroker      = "localhost:9092"
	DefaultKafkaTopicPrefix = "run"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "leadscout-results"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRounds             = 3
	DefaultCandidatesPerRound = 50
	DefaultTopK               = 5
	DefaultMaxViolations      = 1
	DefaultScoringPenalty     = 0.1
	DefaultRunTimeout         = 10 * time.Minute
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// ── Database ──────────────────────────────────────────────────────────────
	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = DefaultDBUser
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.MigrationPath == "" {
		cfg.Database.MigrationPath = DefaultMigrationPath
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisPrefix
	}
	if cfg.Redis.StateTTL == 0 {
		cfg.Redis.StateTTL = DefaultRedisStateTTL
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.TopicPrefix == "" {
		cfg.Kafka.TopicPrefix = DefaultKafkaTopicPrefix
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	if cfg.Engine.Rounds == 0 {
		cfg.Engine.Rounds = DefaultRounds
	}
	if cfg.Engine.CandidatesPerRound == 0 {
		cfg.Engine.CandidatesPerRound = DefaultCandidatesPerRound
	}
	if cfg.Engine.TopK == 0 {
		cfg.Engine.TopK = DefaultTopK
	}
	if cfg.Engine.MaxViolations == 0 {
		cfg.Engine.MaxViolations = DefaultMaxViolations
	}
	if cfg.Engine.ScoringPenalty == 0 {
		cfg.Engine.ScoringPenalty = DefaultScoringPenalty
	}
	if cfg.Engine.RunTimeout == 0 {
		cfg.Engine.RunTimeout = DefaultRunTimeout
	}
}

//Personal.AI order the ending
