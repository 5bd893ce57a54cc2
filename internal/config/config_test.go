package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerMode, cfg.Server.Mode)
	assert.Equal(t, DefaultDBHost, cfg.Database.Host)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultMinIOBucket, cfg.MinIO.Bucket)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultRounds, cfg.Engine.Rounds)
	assert.Equal(t, DefaultCandidatesPerRound, cfg.Engine.CandidatesPerRound)
	assert.Equal(t, DefaultTopK, cfg.Engine.TopK)
	assert.InDelta(t, DefaultScoringPenalty, cfg.Engine.ScoringPenalty, 1e-12)
	assert.Equal(t, DefaultRunTimeout, cfg.Engine.RunTimeout)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Engine.Rounds = 7
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Engine.Rounds)
}

func TestApplyDefaults_NilSafe(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"server port zero", func(c *Config) { c.Server.Port = 0 }},
		{"server port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"bad server mode", func(c *Config) { c.Server.Mode = "verbose" }},
		{"empty db host", func(c *Config) { c.Database.Host = "" }},
		{"empty db name", func(c *Config) { c.Database.DBName = "" }},
		{"zero db max conns", func(c *Config) { c.Database.MaxConns = 0 }},
		{"redis enabled no addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
		{"kafka enabled no brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }},
		{"minio enabled no endpoint", func(c *Config) { c.MinIO.Enabled = true; c.MinIO.Endpoint = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"rounds too high", func(c *Config) { c.Engine.Rounds = 11 }},
		{"candidates too low", func(c *Config) { c.Engine.CandidatesPerRound = 5 }},
		{"candidates too high", func(c *Config) { c.Engine.CandidatesPerRound = 500 }},
		{"topK too high", func(c *Config) { c.Engine.TopK = 21 }},
		{"max violations too high", func(c *Config) { c.Engine.MaxViolations = 6 }},
		{"penalty above one", func(c *Config) { c.Engine.ScoringPenalty = 1.5 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_BoundaryValuesAccepted(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Engine.Rounds = 10
	cfg.Engine.CandidatesPerRound = 200
	cfg.Engine.TopK = 20
	cfg.Engine.MaxViolations = 5
	cfg.Engine.ScoringPenalty = 1.0
	require.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.Engine.Rounds = 1
	cfg.Engine.CandidatesPerRound = 10
	cfg.Engine.TopK = 1
	cfg.Engine.ScoringPenalty = 0.01
	assert.NoError(t, cfg.Validate())
}

//Personal.AI order the ending
