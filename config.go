package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Window size constants, only used when not fullscreen
const (
	defaultWidth  = 1280
	defaultHeight = 720
	minWidth      = 400
	minHeight     = 300
)

const (
	defaultPerImageSleepMs = 4000
	minPerImageSleepMs     = 10
	defaultLabelFontSize   = 20.0
	defaultCacheSize       = 8
	defaultBackground      = "#000000"
)

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()
	descriptions := GetActionDescriptions()

	for action, keys := range keybindings {
		if _, ok := descriptions[action]; !ok {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	if keyStr == "" {
		return fmt.Errorf("empty key string")
	}
	parts := strings.Split(keyStr, "+")

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns the set of key names accepted in keybindings
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	SourceDirectory string              `json:"source_directory"`
	PerImageSleepMs int                 `json:"per_image_sleep_ms"`
	SortMethod      int                 `json:"sort_method"`
	SupportedOnly   bool                `json:"supported_only"`
	Debug           bool                `json:"debug"`
	BackgroundColor string              `json:"background_color"`
	LabelFontSize   float64             `json:"label_font_size"`
	CacheSize       int                 `json:"cache_size"`
	PreloadEnabled  bool                `json:"preload_enabled"`
	WindowWidth     int                 `json:"window_width"`
	WindowHeight    int                 `json:"window_height"`
	Keybindings     map[string][]string `json:"keybindings"`
}

// PerImageDelay returns the configured delay between images
func (c Config) PerImageDelay() time.Duration {
	return time.Duration(c.PerImageSleepMs) * time.Millisecond
}

// Background returns the parsed background colour
func (c Config) Background() color.RGBA {
	col, err := parseHexColor(c.BackgroundColor)
	if err != nil {
		return color.RGBA{0, 0, 0, 255}
	}
	return col
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "slideshow.json"
	}
	return filepath.Join(homeDir, ".slideshow.json")
}

func defaultConfig() Config {
	return Config{
		PerImageSleepMs: defaultPerImageSleepMs,
		SortMethod:      SortSimple,
		SupportedOnly:   false,
		Debug:           false,
		BackgroundColor: defaultBackground,
		LabelFontSize:   defaultLabelFontSize,
		CacheSize:       defaultCacheSize,
		PreloadEnabled:  true,
		WindowWidth:     defaultWidth,
		WindowHeight:    defaultHeight,
		Keybindings:     GetDefaultKeybindings(),
	}
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	if config.PerImageSleepMs < minPerImageSleepMs {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("per_image_sleep_ms %d below %d, using default", config.PerImageSleepMs, minPerImageSleepMs))
		config.PerImageSleepMs = defaultPerImageSleepMs
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortSimple
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Minimum 12px for readability
	if config.LabelFontSize < 12.0 {
		config.LabelFontSize = defaultLabelFontSize
	}

	if _, err := parseHexColor(config.BackgroundColor); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("background_color: %v", err))
		config.BackgroundColor = defaultBackground
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = defaultCacheSize
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		// Fill in missing keybindings with defaults
		for action, defaultKeys := range GetDefaultKeybindings() {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	if len(result.Warnings) > 0 {
		result.Status = "Warning"
	}
	result.Config = config
	return result
}

// parseHexColor parses "#rrggbb" or "#rgb"
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid colour %q", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return c, nil
}
