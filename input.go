package main

// InputHandler turns key presses into player commands
type InputHandler struct {
	inputActions      InputActions
	keybindingManager *KeybindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, keybindingManager *KeybindingManager) *InputHandler {
	return &InputHandler{
		inputActions:      inputActions,
		keybindingManager: keybindingManager,
	}
}

// HandleInput processes all input for the current frame.
// Returns true if any input was processed.
func (h *InputHandler) HandleInput() bool {
	// Exit wins over anything else pressed in the same frame
	if h.keybindingManager.ExecuteAction("exit", h.inputActions) {
		return true
	}

	inputProcessed := false
	for _, action := range []string{"toggle_pause", "previous", "next"} {
		if h.keybindingManager.ExecuteAction(action, h.inputActions) {
			inputProcessed = true
		}
	}
	return inputProcessed
}
