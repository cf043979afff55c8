package config

import (
	"runtime"
	"strings"
	"testing"
)

// TestDefaultValidator tests the defaultValidator.
func TestDefaultValidator(t *testing.T) {
	validator := &defaultValidator{}

	tests := []struct {
		name     string
		config   *Config
		wantErr  bool
		errField string
	}{
		{
			name: "valid config",
			config: &Config{
				Log: LogConfig{
					Level:  "info",
					Format: "text",
					Output: "stderr",
				},
				Generate: GenerateConfig{
					Preset:      "auto",
					MaxFileSize: "1MiB",
					Format:      "json",
					Workers:     runtime.NumCPU(),
				},
			},
			wantErr: false,
		},
		{
			name: "missing log level",
			config: &Config{
				Log: LogConfig{
					Format: "text",
					Output: "stderr",
				},
			},
			wantErr:  true,
			errField: "log level",
		},
		{
			name: "invalid log level",
			config: &Config{
				Log: LogConfig{
					Level:  "invalid",
					Format: "text",
					Output: "stderr",
				},
			},
			wantErr:  true,
			errField: "log level",
		},
		{
			name: "invalid log format",
			config: &Config{
				Log: LogConfig{
					Level:  "info",
					Format: "invalid",
					Output: "stderr",
				},
			},
			wantErr:  true,
			errField: "log format",
		},
		{
			name: "missing preset",
			config: &Config{
				Log: LogConfig{
					Level: "info",
				},
				Generate: GenerateConfig{
					Workers: runtime.NumCPU(),
				},
			},
			wantErr:  true,
			errField: "preset",
		},
		{
			name: "too few workers",
			config: &Config{
				Log: LogConfig{
					Level: "info",
				},
				Generate: GenerateConfig{
					Preset:  "auto",
					Workers: 0,
				},
			},
			wantErr:  true,
			errField: "too few workers",
		},
		{
			name: "too many workers",
			config: &Config{
				Log: LogConfig{
					Level: "info",
				},
				Generate: GenerateConfig{
					Preset:  "auto",
					Workers: max(maxWorkers, runtime.NumCPU()) + 1,
				},
			},
			wantErr:  true,
			errField: "too many workers",
		},
		{
			name: "invalid output format",
			config: &Config{
				Log: LogConfig{
					Level: "info",
				},
				Generate: GenerateConfig{
					Preset:  "auto",
					Workers: runtime.NumCPU(),
					Format:  "yaml",
				},
			},
			wantErr:  true,
			errField: "output format",
		},
		{
			name: "invalid max file size",
			config: &Config{
				Log: LogConfig{
					Level: "info",
				},
				Generate: GenerateConfig{
					Preset:      "auto",
					Workers:     runtime.NumCPU(),
					MaxFileSize: "lots",
				},
			},
			wantErr:  true,
			errField: "max file size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Errorf("%s: expected error but got none", tt.name)
				} else if tt.errField != "" && !strings.Contains(err.Error(), tt.errField) {
					t.Errorf("%s: expected error containing %q, got %q", tt.name, tt.errField, err.Error())
				}
			} else if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.name, err)
			}
		})
	}
}
