package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// 配置文件缺失时走默认值
func TestLoadDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Equal(t, "gym-class-booking", c.App.Name)
	require.Equal(t, 5000, c.App.HTTP.Port)
	require.Equal(t, 168, c.JWT.TTLHours)
	require.Equal(t, "mysql", c.DB.Driver)
	require.True(t, c.DB.AutoMigrate)
	require.Equal(t, "admin@admin.admin", c.Seed.AdminEmail)
	require.Empty(t, c.Redis.Addr)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  env: prod
  http:
    port: 8080
jwt:
  secret: file-secret
  ttlhours: 24
redis:
  addr: localhost:6379
  db: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	c := Load(path)
	require.Equal(t, "prod", c.App.Env)
	require.Equal(t, 8080, c.App.HTTP.Port)
	require.Equal(t, "file-secret", c.JWT.Secret)
	require.Equal(t, 24, c.JWT.TTLHours)
	require.Equal(t, "localhost:6379", c.Redis.Addr)
	require.Equal(t, 2, c.Redis.DB)
	// 未覆盖的仍取默认
	require.Equal(t, "mysql", c.DB.Driver)
}
