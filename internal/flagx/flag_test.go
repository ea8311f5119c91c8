package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	// The CLI owns -f (vault path) and -v (verbose); -c/-config belong to
	// the JSON config loader. Each pass must only see its own flags.
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "vault path kept, config flag dropped",
			args:         []string{"-f", "/tmp/vault.plk", "-c", "conf.json"},
			allowedFlags: []string{"-f", "-v"},
			want:         []string{"-f", "/tmp/vault.plk"},
		},
		{
			name:         "config flag kept, cli flags dropped",
			args:         []string{"-f", "/tmp/vault.plk", "-v", "-config", "conf.json"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config", "conf.json"},
		},
		{
			name:         "equals form survives as one token",
			args:         []string{"-config=conf.json", "-f=/tmp/vault.plk"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=conf.json"},
		},
		{
			name:         "boolean flag does not swallow the next flag",
			args:         []string{"-v", "-f", "/tmp/vault.plk"},
			allowedFlags: []string{"-f", "-v"},
			want:         []string{"-v", "-f", "/tmp/vault.plk"},
		},
		{
			name:         "flag at end without value is kept",
			args:         []string{"-c", "conf.json", "-v"},
			allowedFlags: []string{"-v"},
			want:         []string{"-v"},
		},
		{
			name:         "repeated flag keeps both occurrences in order",
			args:         []string{"-f", "one.plk", "-f", "two.plk"},
			allowedFlags: []string{"-f"},
			want:         []string{"-f", "one.plk", "-f", "two.plk"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-f", "-v"},
			want:         []string{},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-f", "-v"},
			want:         []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FilterArgs(tc.args, tc.allowedFlags))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "short form",
			args: []string{"passlock", "-c", "/etc/passlock.json"},
			want: "/etc/passlock.json",
		},
		{
			name: "long form",
			args: []string{"passlock", "-config", "/etc/passlock.json"},
			want: "/etc/passlock.json",
		},
		{
			name: "cli flags around it are ignored",
			args: []string{"passlock", "-f", "/tmp/vault.plk", "-c", "/etc/passlock.json", "-v"},
			want: "/etc/passlock.json",
		},
		{
			name: "absent",
			args: []string{"passlock", "-f", "/tmp/vault.plk"},
			want: "",
		},
		{
			name: "last occurrence wins",
			args: []string{"passlock", "-c", "/etc/a.json", "-config", "/etc/b.json"},
			want: "/etc/b.json",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			os.Args = tc.args
			require.Equal(t, tc.want, JsonConfigFlags())
		})
	}
}
