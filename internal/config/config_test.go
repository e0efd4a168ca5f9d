package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dip.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Move.DX != 80 || cfg.Rotate.Angle != 45 || cfg.Shear.SHX != 0.3 || cfg.Resize.SX != 2 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg != Default() {
		t.Error("Load(\"\") should return Default()")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
input: cassini.tif
workers: 4
rotate:
  angle: 30
shear:
  shx: 0.1
filter:
  max_window: 9
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input != "cassini.tif" || cfg.Workers != 4 {
		t.Errorf("input/workers = %q/%d", cfg.Input, cfg.Workers)
	}
	if cfg.Rotate.Angle != 30 || cfg.Shear.SHX != 0.1 || cfg.Filter.MaxWindow != 9 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.Move.DX != 80 || cfg.Resize.SY != 2 || cfg.Filter.Gamma != 0.5 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Filter.HoughMaxRadius != 35 || cfg.Register.Iterations != 2000 {
		t.Errorf("detection defaults lost: %+v %+v", cfg.Filter, cfg.Register)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad-yaml", "rotate: [1, 2", false},
		{"negative-workers", "workers: -1", true},
		{"zero-scale", "resize:\n  sx: 0\n", true},
		{"even-window", "filter:\n  max_window: 4\n", true},
		{"hough-range", "filter:\n  hough_min_radius: 40\n", true},
		{"wavelet-levels", "filter:\n  wavelet_levels: 0\n", true},
		{"ransac-threshold", "register:\n  ransac_threshold: 0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalid) = %v, want %v (%v)", got, tt.invalid, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = "out"
	if got, want := cfg.OutputPath("custom_move.png"), filepath.Join("out", "custom_move.png"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}
