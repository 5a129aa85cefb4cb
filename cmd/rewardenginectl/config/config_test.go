package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/model"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	admin := model.ActorId{1}
	escrow := model.ActorId{2}
	commission := model.ActorId{3}

	path := writeConfig(t, `
admin: `+admin.String()+`
escrow_account: `+escrow.String()+`
commission_account: `+commission.String()+`
expire_delay: 72h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, admin, cfg.Admin)
	require.Equal(t, escrow, cfg.EscrowAccount)
	require.Equal(t, commission, cfg.CommissionAccount)
	require.Equal(t, "memory", cfg.StorageBackend)
	require.Equal(t, ":8089", cfg.HTTPListenAddr)
}

func TestLoadMissingExpireDelayFails(t *testing.T) {
	admin := model.ActorId{1}
	path := writeConfig(t, `
admin: `+admin.String()+`
escrow_account: `+admin.String()+`
commission_account: `+admin.String()+`
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadLeveldbBackendRequiresSnapshotPath(t *testing.T) {
	admin := model.ActorId{1}
	path := writeConfig(t, `
admin: `+admin.String()+`
escrow_account: `+admin.String()+`
commission_account: `+admin.String()+`
expire_delay: 1h
storage_backend: leveldb
`)

	_, err := Load(path)
	require.Error(t, err)
}
