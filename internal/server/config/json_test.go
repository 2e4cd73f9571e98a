package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	path := writeConfig(t, `{
		"endpoint_addr_http": ":9000",
		"database_dsn": "dsn",
		"redis_addr": "r:1",
		"redis_db": 0,
		"session_validity_duration": "90m",
		"session_cache_ttl": 5000000000,
		"storage_root": "/srv/files",
		"worker_concurrency": 2
	}`)

	oldArgs := os.Args
	os.Args = []string{"cmd", "-c", path}
	t.Cleanup(func() { os.Args = oldArgs })

	var got Config
	got.LoadDefaults()
	got.RedisDB = 3
	parseJson(&got)

	want := Config{}
	want.LoadDefaults()
	want.EndpointAddrHTTP = ":9000"
	want.DatabaseDSN = "dsn"
	want.RedisAddr = "r:1"
	want.RedisDB = 0
	want.SessionValidityDuration = 90 * time.Minute
	want.SessionCacheTTL = 5 * time.Second
	want.StorageRoot = "/srv/files"
	want.WorkerConcurrency = 2

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJson_NoFlagLeavesConfig(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	t.Cleanup(func() { os.Args = oldArgs })

	var got, want Config
	got.LoadDefaults()
	want.LoadDefaults()
	parseJson(&got)

	assert.Equal(t, want, got)
}

func TestParseJson_Panics(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{name: "bad json", path: func(t *testing.T) string { return writeConfig(t, `{"endpoint_addr_http":`) }},
		{name: "bad duration", path: func(t *testing.T) string { return writeConfig(t, `{"session_validity_duration":"soon"}`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			os.Args = []string{"cmd", "-config", tt.path(t)}
			t.Cleanup(func() { os.Args = oldArgs })

			var c Config
			assert.Panics(t, func() { parseJson(&c) })
		})
	}
}
