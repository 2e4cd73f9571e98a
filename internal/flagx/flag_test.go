package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-d", "-f"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps owned flags and their values",
			args:    []string{"-a", ":5000", "-c", "cfg.json", "-f", "/srv/files"},
			allowed: serverFlags,
			want:    []string{"-a", ":5000", "-f", "/srv/files"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://db/files", "-x=1"},
			allowed: serverFlags,
			want:    []string{"-d=postgres://db/files"},
		},
		{
			name:    "value never taken from the next flag",
			args:    []string{"-a", "-f", "/srv/files"},
			allowed: serverFlags,
			want:    []string{"-a", "-f", "/srv/files"},
		},
		{
			name:    "dangling flag",
			args:    []string{"-d"},
			allowed: serverFlags,
			want:    []string{"-d"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"upload", "cat.png", "-t", "5"},
			allowed: []string{"-t"},
			want:    []string{"-t", "5"},
		},
		{
			name:    "nothing owned",
			args:    []string{"-q", "jobs"},
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"server", "-c", "/etc/fm.json"}, want: "/etc/fm.json"},
		{name: "long with equals", args: []string{"server", "-config=/etc/fm.json", "-a", ":80"}, want: "/etc/fm.json"},
		{name: "absent", args: []string{"server", "-a", ":80"}, want: ""},
		{name: "later wins", args: []string{"server", "-c", "one.json", "-config", "two.json"}, want: "two.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.want, ConfigFilePath())
		})
	}
}
