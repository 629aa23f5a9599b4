package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost:3000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-a", "http://localhost:3000"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-e"},
			allowedFlags: []string{"-e"},
			want:         []string{"-e"},
		},
		{
			name:         "flag followed by another flag",
			args:         []string{"-c", "-t", "10"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestStringFlag_ShortLongAndAbsent(t *testing.T) {
	assert.Equal(t, "a.json", stringFlagFrom([]string{"-c", "a.json", "-a", "x"}, "c", "config"))
	assert.Equal(t, "b.json", stringFlagFrom([]string{"-config=b.json"}, "c", "config"))
	assert.Equal(t, "", stringFlagFrom([]string{"-a", "x"}, "c", "config"))
}

func TestConfigAndEnvFlags_ReadOsArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"fittrack", "-e", ".env.test", "-config", "cfg.json", "-l", "debug"}

	assert.Equal(t, "cfg.json", JsonConfigFlags())
	assert.Equal(t, ".env.test", EnvFileFlags())
}
