package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", ":3001"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "joined value",
			args:    []string{"-config=alt.json", "-a", ":3001"},
			allowed: []string{"-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "double dash matches single dash name",
			args:    []string{"--s", "secret", "--a=:8080"},
			allowed: []string{"-s", "-a"},
			want:    []string{"--s", "secret", "--a=:8080"},
		},
		{
			name:    "names given without dashes",
			args:    []string{"-r", "localhost:6379"},
			allowed: []string{"r"},
			want:    []string{"-r", "localhost:6379"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-c", "-e", "production"},
			allowed: []string{"-c", "-e"},
			want:    []string{"-c", "-e", "production"},
		},
		{
			name:    "joined value is not followed by another value",
			args:    []string{"-e=production", "stray"},
			allowed: []string{"-e"},
			want:    []string{"-e=production"},
		},
		{
			name:    "terminator stops filtering",
			args:    []string{"-a", ":1", "--", "-a", ":2"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":1"},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/resorts.json", ConfigPath([]string{"-c", "/etc/resorts.json"}))
	assert.Equal(t, "/etc/long.json", ConfigPath([]string{"-config", "/etc/long.json", "-a", ":3001"}))
	assert.Equal(t, "/b.json", ConfigPath([]string{"-c", "/a.json", "--config=/b.json"}))
	assert.Empty(t, ConfigPath([]string{"-s", "secret"}))
	assert.Empty(t, ConfigPath([]string{"-c"}))
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"server", "-c", "/path/conf.json"}
	assert.Equal(t, "/path/conf.json", JsonConfigFlags())
}
