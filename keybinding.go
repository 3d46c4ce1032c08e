package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeybindingManager resolves configured key strings to ebiten keys
type KeybindingManager struct {
	keybindings  map[string][]string
	combinations map[string][]KeyCombination
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// NewKeybindingManager creates a KeybindingManager. Invalid key strings are dropped.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// getKeyMapping returns a mapping from key names to ebiten keys
func getKeyMapping() map[string]ebiten.Key {
	m := map[string]ebiten.Key{
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,
		"Comma":      ebiten.KeyComma,
		"Period":     ebiten.KeyPeriod,

		"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
		"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
		"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
		"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
		"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
		"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
		"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,
	}
	// Digit keys are contiguous
	for i := 0; i < 10; i++ {
		m["Key"+string(rune('0'+i))] = ebiten.Key0 + ebiten.Key(i)
	}
	return m
}

// parseKeyString parses a key string like "Shift+ArrowRight" into a KeyCombination
func parseKeyString(keyStr string, keyMapping map[string]ebiten.Key) (KeyCombination, bool) {
	parts := strings.Split(keyStr, "+")

	key, exists := keyMapping[parts[len(parts)-1]]
	if !exists {
		return KeyCombination{}, false
	}
	combination := KeyCombination{Key: key}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return KeyCombination{}, false
		}
	}

	return combination, true
}

// isKeyPressed reports whether the combination was pressed this frame with exactly its modifiers
func isKeyPressed(combination KeyCombination) bool {
	if !inpututil.IsKeyJustPressed(combination.Key) {
		return false
	}

	return combination.Shift == ebiten.IsKeyPressed(ebiten.KeyShift) &&
		combination.Ctrl == ebiten.IsKeyPressed(ebiten.KeyControl) &&
		combination.Alt == ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, combination := range km.combinations[action] {
		if isKeyPressed(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction runs action if one of its keys was just pressed
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !km.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// UpdateKeybindings replaces the keybindings and re-parses them
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	keyMapping := getKeyMapping()
	km.keybindings = keybindings
	km.combinations = make(map[string][]KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, keyStr := range keys {
			combination, ok := parseKeyString(keyStr, keyMapping)
			if !ok {
				debugLog("Ignoring invalid key '%s' for action '%s'", keyStr, action)
				continue
			}
			km.combinations[action] = append(km.combinations[action], combination)
		}
	}
}
