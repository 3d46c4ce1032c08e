package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions lists every action the viewer responds to. Keys not bound here are ignored.
var actionDefinitions = []ActionDefinition{
	{"toggle_pause", []string{"Space"}, "Pause/resume the slideshow"},
	{"previous", []string{"ArrowLeft"}, "Pause and show the previous image"},
	{"next", []string{"ArrowRight"}, "Pause and show the next image"},
	{"exit", []string{"Escape"}, "Quit slideshow"},
}

// ActionExecutor maps action names onto the player controls
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction runs action against inputActions. Unknown actions return false.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "toggle_pause":
		inputActions.TogglePause()
	case "previous":
		inputActions.StepBackward()
	case "next":
		inputActions.StepForward()
	case "exit":
		inputActions.Exit()
	default:
		return false
	}

	return true
}

var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keys := make([]string, len(action.Keys))
		copy(keys, action.Keys)
		keybindings[action.Name] = keys
	}
	return keybindings
}
