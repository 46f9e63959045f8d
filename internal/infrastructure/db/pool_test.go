package db

import (
	"strings"
	"testing"
	"time"
)

func TestParsePoolConfigDefaults(t *testing.T) {
	if got := ParsePoolConfig(0, 0, "", "", ""); got != DefaultPoolConfig() {
		t.Errorf("ParsePoolConfig with zero values = %+v, want defaults", got)
	}
}

func TestParsePoolConfigValues(t *testing.T) {
	got := ParsePoolConfig(20, 4, "1h", "10m", "15s")

	if got.MaxConns != 20 || got.MinConns != 4 {
		t.Errorf("conns = %d/%d, want 20/4", got.MaxConns, got.MinConns)
	}
	if got.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v, want 1h", got.MaxConnLifetime)
	}
	if got.MaxConnIdleTime != 10*time.Minute {
		t.Errorf("MaxConnIdleTime = %v, want 10m", got.MaxConnIdleTime)
	}
	if got.HealthCheckPeriod != 15*time.Second {
		t.Errorf("HealthCheckPeriod = %v, want 15s", got.HealthCheckPeriod)
	}
}

func TestParsePoolConfigClampsMinConns(t *testing.T) {
	got := ParsePoolConfig(2, 8, "", "", "")
	if got.MinConns != got.MaxConns {
		t.Errorf("MinConns = %d, want clamped to MaxConns %d", got.MinConns, got.MaxConns)
	}
}

func TestParsePoolConfigBadDuration(t *testing.T) {
	got := ParsePoolConfig(0, 0, "soon", "-5m", "")
	want := DefaultPoolConfig()
	if got.MaxConnLifetime != want.MaxConnLifetime || got.MaxConnIdleTime != want.MaxConnIdleTime {
		t.Errorf("durations = %v/%v, unparsable values should keep defaults",
			got.MaxConnLifetime, got.MaxConnIdleTime)
	}
}

func TestWithDefaultSSLMode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds require when absent", "postgres://u:p@host:5432/app", "sslmode=require"},
		{"keeps explicit choice", "postgres://u:p@host:5432/app?sslmode=disable", "sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withDefaultSSLMode(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("withDefaultSSLMode(%q) = %q, want %q present", tt.in, got, tt.want)
			}
		})
	}

	if got := withDefaultSSLMode("postgres://u:p@host/app?sslmode=disable"); strings.Contains(got, "require") {
		t.Errorf("explicit sslmode was overridden: %q", got)
	}
}
