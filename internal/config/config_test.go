package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "DB_DRIVER", "DB_PATH", "FLASH_SECRET", "LOG_FILE",
		"LOG_MAX_SIZE_MB", "EVENTS_ENABLED", "RABBITMQ_URL", "AMQP_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Env != EnvDev || cfg.Port != "3000" || cfg.DBDriver != "sqlite" || cfg.DBPath != "fyyur.db" {
		t.Fatalf("Load() = %+v, want dev defaults", cfg)
	}
	if cfg.FlashSecret == "" {
		t.Fatal("FlashSecret is empty outside prod")
	}
	if cfg.Log.File != "error.log" || cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 1 {
		t.Fatalf("Log = %+v", cfg.Log)
	}
	if cfg.Events.Enabled || cfg.Events.URL == "" {
		t.Fatalf("Events = %+v", cfg.Events)
	}
	if !cfg.Debug() || cfg.IsProd() {
		t.Fatal("dev config should be debug and not prod")
	}
}

func TestLoadMySQL(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "fyyur")
	t.Setenv("DB_NAME", "fyyur")
	t.Setenv("DB_HOST", "")
	t.Setenv("FLASH_SECRET", "s3cret")
	t.Setenv("RABBITMQ_URL", "amqp://mq:5672/")
	t.Setenv("AMQP_URL", "amqp://ignored/")

	cfg := Load()
	if cfg.DBUser != "fyyur" || cfg.DBName != "fyyur" || cfg.DBHost != "127.0.0.1" || cfg.DBPort != "3306" {
		t.Fatalf("Load() = %+v", cfg)
	}
	if cfg.FlashSecret != "s3cret" || !cfg.IsProd() || cfg.Debug() {
		t.Fatalf("prod flags wrong: %+v", cfg)
	}
	if cfg.Events.URL != "amqp://mq:5672/" {
		t.Fatalf("Events.URL = %q, want RABBITMQ_URL", cfg.Events.URL)
	}
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_KEY_STRATEGY", "")
		cfg := LoadRateLimitConfig()
		if cfg.KeyStrategy != KeyByIPRoute || cfg.Capacity != 20 || cfg.RefillInterval != 3*time.Second {
			t.Fatalf("LoadRateLimitConfig() = %+v", cfg)
		}
	})
	t.Run("overrides and clamps", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_BURST", "5")
		t.Setenv("RATE_LIMIT_REFILL_EVERY", "1m")
		t.Setenv("RATE_LIMIT_TTL", "1s")
		t.Setenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route")
		t.Setenv("RATE_LIMIT_ENABLED", "off")
		cfg := LoadRateLimitConfig()
		if cfg.Capacity != 5 || cfg.RefillTokens != 1 || cfg.RefillInterval != time.Minute {
			t.Fatalf("LoadRateLimitConfig() = %+v", cfg)
		}
		if cfg.TTL != 5*time.Minute {
			t.Fatalf("TTL = %v, want clamped to 5m", cfg.TTL)
		}
		if cfg.KeyStrategy != KeyByIPRoute || cfg.Enabled {
			t.Fatalf("KeyStrategy/Enabled = %q/%v", cfg.KeyStrategy, cfg.Enabled)
		}
	})
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "1")
	opts := RedisOptions()
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.TLSConfig == nil {
		t.Fatalf("RedisOptions() = %+v", opts)
	}

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	if got := RedisOptions().Addr; got != "redis:6379" {
		t.Fatalf("Addr = %q, want redis:6379", got)
	}
}
