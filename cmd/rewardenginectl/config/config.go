// Package config loads rewardenginectl's boot configuration via viper,
// accepting a YAML config file and environment variables (REWARDENGINE_
// prefix), with environment variables taking precedence. No CLI flags are
// bound to individual settings.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/luxthread/rewardengine/model"
)

// Config is the full set of values rewardenginectl needs before it can
// boot the FT, Storage, Reward and Logic actors.
type Config struct {
	Admin             model.ActorId
	EscrowAccount     model.ActorId
	CommissionAccount model.ActorId

	// ExpireDelay is how long a thread stays open before it is expired and
	// distributed. It has no built-in default: every deployment must name
	// its own window explicitly.
	ExpireDelay time.Duration

	StorageBackend string // "memory" or "leveldb"
	SnapshotPath   string // leveldb data directory, required when StorageBackend == "leveldb"
	TimerWALPath   string

	HTTPListenAddr string
	MailboxSize    int
}

// Load reads configuration from path (if non-empty), then environment
// variables prefixed REWARDENGINE_, validating that every required field
// ended up set.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("rewardengine")
	v.AutomaticEnv()

	v.SetDefault("storage_backend", "memory")
	v.SetDefault("http_listen_addr", ":8089")
	v.SetDefault("mailbox_size", 256)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	admin, err := model.ParseActorId(v.GetString("admin"))
	if err != nil {
		return Config{}, fmt.Errorf("config: admin: %w", err)
	}
	escrow, err := model.ParseActorId(v.GetString("escrow_account"))
	if err != nil {
		return Config{}, fmt.Errorf("config: escrow_account: %w", err)
	}
	commission, err := model.ParseActorId(v.GetString("commission_account"))
	if err != nil {
		return Config{}, fmt.Errorf("config: commission_account: %w", err)
	}

	expireDelay := v.GetDuration("expire_delay")
	if expireDelay <= 0 {
		return Config{}, fmt.Errorf("config: expire_delay must be set explicitly and positive")
	}

	backend := v.GetString("storage_backend")
	snapshotPath := v.GetString("snapshot_path")
	if backend == "leveldb" && snapshotPath == "" {
		return Config{}, fmt.Errorf("config: snapshot_path is required when storage_backend is leveldb")
	}

	return Config{
		Admin:             admin,
		EscrowAccount:     escrow,
		CommissionAccount: commission,
		ExpireDelay:       expireDelay,
		StorageBackend:    backend,
		SnapshotPath:      snapshotPath,
		TimerWALPath:      v.GetString("timer_wal_path"),
		HTTPListenAddr:    v.GetString("http_listen_addr"),
		MailboxSize:       v.GetInt("mailbox_size"),
	}, nil
}
