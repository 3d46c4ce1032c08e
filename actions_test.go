package main

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type recordingActions struct {
	calls []string
}

func (r *recordingActions) TogglePause()  { r.calls = append(r.calls, "toggle_pause") }
func (r *recordingActions) StepForward()  { r.calls = append(r.calls, "next") }
func (r *recordingActions) StepBackward() { r.calls = append(r.calls, "previous") }
func (r *recordingActions) Exit()         { r.calls = append(r.calls, "exit") }

func TestActionExecutor(t *testing.T) {
	for _, def := range actionDefinitions {
		t.Run(def.Name, func(t *testing.T) {
			actions := &recordingActions{}
			if !NewActionExecutor().ExecuteAction(def.Name, actions) {
				t.Fatalf("action %s not handled", def.Name)
			}
			if !reflect.DeepEqual(actions.calls, []string{def.Name}) {
				t.Errorf("calls = %v, want [%s]", actions.calls, def.Name)
			}
		})
	}

	actions := &recordingActions{}
	if NewActionExecutor().ExecuteAction("fullscreen", actions) {
		t.Error("unknown action reported as handled")
	}
	if len(actions.calls) != 0 {
		t.Errorf("unknown action triggered %v", actions.calls)
	}
}

func TestDefaultKeybindingsAreValid(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("default keybindings invalid: %v", err)
	}

	// Callers may mutate the returned map without touching the definitions
	kb := GetDefaultKeybindings()
	kb["next"][0] = "KeyX"
	if GetDefaultKeybindings()["next"][0] != "ArrowRight" {
		t.Error("GetDefaultKeybindings shares slices with the definitions")
	}
}

func TestParseKeyString(t *testing.T) {
	keyMapping := getKeyMapping()
	tests := []struct {
		key      string
		expected KeyCombination
		ok       bool
	}{
		{"Space", KeyCombination{Key: ebiten.KeySpace}, true},
		{"ArrowLeft", KeyCombination{Key: ebiten.KeyArrowLeft}, true},
		{"KeyQ", KeyCombination{Key: ebiten.KeyQ}, true},
		{"Key3", KeyCombination{Key: ebiten.Key3}, true},
		{"Shift+ArrowRight", KeyCombination{Key: ebiten.KeyArrowRight, Shift: true}, true},
		{"Ctrl+Alt+Escape", KeyCombination{Key: ebiten.KeyEscape, Ctrl: true, Alt: true}, true},
		{"Meta+Space", KeyCombination{}, false},
		{"Nope", KeyCombination{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := parseKeyString(tt.key, keyMapping)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("parseKeyString(%q) = %+v, %v; want %+v, %v", tt.key, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestKeybindingManagerDropsInvalidKeys(t *testing.T) {
	km := NewKeybindingManager(map[string][]string{
		"next": {"ArrowRight", "Bogus"},
		"exit": {"Escape"},
	})

	if n := len(km.combinations["next"]); n != 1 {
		t.Errorf("next has %d combinations, want 1", n)
	}
	if n := len(km.combinations["exit"]); n != 1 {
		t.Errorf("exit has %d combinations, want 1", n)
	}
	if _, ok := km.combinations["toggle_pause"]; ok {
		t.Error("unbound action has combinations")
	}
}
