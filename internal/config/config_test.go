package config

import (
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid
// cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoadDefaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DataDir", cfg.DataDir, ".voyager"},
		{"ArchivePath", cfg.ArchivePath, "archive.db"},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Graphics", cfg.Graphics, false},
		{"Verbose", cfg.Verbose, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "data_dir",
			envKey: "VOYAGER_DATA_DIR",
			envVal: "/tmp/runs",
			field:  func(c Config) any { return c.DataDir },
			want:   "/tmp/runs",
		},
		{
			name:   "archive_path",
			envKey: "VOYAGER_ARCHIVE_PATH",
			envVal: "other.db",
			field:  func(c Config) any { return c.ArchivePath },
			want:   "other.db",
		},
		{
			name:   "graphics",
			envKey: "VOYAGER_GRAPHICS",
			envVal: "true",
			field:  func(c Config) any { return c.Graphics },
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoadViperSetValue(t *testing.T) {
	resetViper()
	viper.Set("telemetry_path", "events.jsonl")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelemetryPath != "events.jsonl" {
		t.Errorf("TelemetryPath = %q, want events.jsonl", cfg.TelemetryPath)
	}
}
