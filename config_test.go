package main

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".slideshow.json")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfigDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "nonexistent.json"))

	if result.Status != "Default" || result.HasError {
		t.Errorf("status = %s (error %v), want Default", result.Status, result.HasError)
	}
	if !reflect.DeepEqual(result.Config, defaultConfig()) {
		t.Errorf("Default config mismatch.\nExpected: %+v\nGot: %+v", defaultConfig(), result.Config)
	}
	if result.Config.PerImageDelay() != 4*time.Second {
		t.Errorf("delay = %v, want 4s", result.Config.PerImageDelay())
	}
	if result.Config.SortMethod != SortSimple {
		t.Errorf("sort method = %d, want SortSimple", result.Config.SortMethod)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name           string
		configJSON     string
		expectedSleep  int
		expectedSort   int
		expectedCache  int
		expectedFont   float64
		expectedStatus string
	}{
		{
			name: "Valid config",
			configJSON: `{
				"source_directory": "/pics",
				"per_image_sleep_ms": 2500,
				"sort_method": 0,
				"cache_size": 16,
				"label_font_size": 32
			}`,
			expectedSleep:  2500,
			expectedSort:   SortNatural,
			expectedCache:  16,
			expectedFont:   32,
			expectedStatus: "OK",
		},
		{
			name:           "Delay too short",
			configJSON:     `{"per_image_sleep_ms": 1}`,
			expectedSleep:  defaultPerImageSleepMs,
			expectedSort:   SortSimple,
			expectedCache:  defaultCacheSize,
			expectedFont:   defaultLabelFontSize,
			expectedStatus: "Warning",
		},
		{
			name:           "Out of range values",
			configJSON:     `{"sort_method": 7, "cache_size": 1000, "label_font_size": 4}`,
			expectedSleep:  defaultPerImageSleepMs,
			expectedSort:   SortSimple,
			expectedCache:  64,
			expectedFont:   defaultLabelFontSize,
			expectedStatus: "OK",
		},
		{
			name:           "Invalid JSON",
			configJSON:     `{"per_image_sleep_ms": `,
			expectedSleep:  defaultPerImageSleepMs,
			expectedSort:   SortSimple,
			expectedCache:  defaultCacheSize,
			expectedFont:   defaultLabelFontSize,
			expectedStatus: "Error",
		},
		{
			name:           "Bad background colour",
			configJSON:     `{"background_color": "black"}`,
			expectedSleep:  defaultPerImageSleepMs,
			expectedSort:   SortSimple,
			expectedCache:  defaultCacheSize,
			expectedFont:   defaultLabelFontSize,
			expectedStatus: "Warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))
			config := result.Config

			if config.PerImageSleepMs != tt.expectedSleep {
				t.Errorf("Expected sleep %d, got %d", tt.expectedSleep, config.PerImageSleepMs)
			}
			if config.SortMethod != tt.expectedSort {
				t.Errorf("Expected sort %d, got %d", tt.expectedSort, config.SortMethod)
			}
			if config.CacheSize != tt.expectedCache {
				t.Errorf("Expected cache size %d, got %d", tt.expectedCache, config.CacheSize)
			}
			if config.LabelFontSize != tt.expectedFont {
				t.Errorf("Expected font size %.1f, got %.1f", tt.expectedFont, config.LabelFontSize)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s (warnings: %v)", tt.expectedStatus, result.Status, result.Warnings)
			}
			if config.BackgroundColor != defaultBackground {
				t.Errorf("Expected background %s, got %s", defaultBackground, config.BackgroundColor)
			}
		})
	}
}

func TestConfigKeybindings(t *testing.T) {
	tests := []struct {
		name           string
		configJSON     string
		expected       map[string][]string
		expectedStatus string
	}{
		{
			name:       "Partial override keeps other defaults",
			configJSON: `{"keybindings": {"next": ["ArrowRight", "KeyN"]}}`,
			expected: map[string][]string{
				"toggle_pause": {"Space"},
				"previous":     {"ArrowLeft"},
				"next":         {"ArrowRight", "KeyN"},
				"exit":         {"Escape"},
			},
			expectedStatus: "OK",
		},
		{
			name:           "Conflict falls back to defaults",
			configJSON:     `{"keybindings": {"next": ["Space"]}}`,
			expected:       GetDefaultKeybindings(),
			expectedStatus: "Warning",
		},
		{
			name:           "Unknown key falls back to defaults",
			configJSON:     `{"keybindings": {"exit": ["F13"]}}`,
			expected:       GetDefaultKeybindings(),
			expectedStatus: "Warning",
		},
		{
			name:           "Unknown action falls back to defaults",
			configJSON:     `{"keybindings": {"zoom_in": ["KeyZ"]}}`,
			expected:       GetDefaultKeybindings(),
			expectedStatus: "Warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))
			if !reflect.DeepEqual(result.Config.Keybindings, tt.expected) {
				t.Errorf("Expected keybindings %v, got %v", tt.expected, result.Config.Keybindings)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s", tt.expectedStatus, result.Status)
			}
		})
	}
}

func TestValidateKeyString(t *testing.T) {
	validKeys := getValidKeyNames()
	tests := []struct {
		key   string
		valid bool
	}{
		{"Space", true},
		{"Shift+ArrowRight", true},
		{"ctrl+alt+KeyQ", true},
		{"Key7", true},
		{"", false},
		{"Hyper+Space", false},
		{"Shift+", false},
		{"F13", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := validateKeyString(tt.key, validKeys)
			if (err == nil) != tt.valid {
				t.Errorf("validateKeyString(%q) error = %v, want valid=%v", tt.key, err, tt.valid)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in       string
		expected color.RGBA
		ok       bool
	}{
		{"#000000", color.RGBA{0, 0, 0, 255}, true},
		{"#ff8000", color.RGBA{255, 128, 0, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#12", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"white", color.RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("parseHexColor(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name      string
		delayMs   int
		debug     bool
		sortName  string
		wantSleep int
		wantSort  int
		wantDebug bool
		wantErr   bool
	}{
		{"No overrides", 0, false, "", defaultPerImageSleepMs, SortSimple, false, false},
		{"All overrides", 250, true, "natural", 250, SortNatural, true, false},
		{"Delay too short", 5, false, "", 0, 0, false, true},
		{"Unknown sort", 0, false, "shuffle", 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultConfig()
			err := applyFlags(&config, tt.delayMs, tt.debug, tt.sortName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyFlags error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if config.PerImageSleepMs != tt.wantSleep || config.SortMethod != tt.wantSort || config.Debug != tt.wantDebug {
				t.Errorf("config = %+v", config)
			}
		})
	}
}
