package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA = 65 // A key (ASCII)
	KeyB = 66 // B key (ASCII)
	KeyC = 67 // C key (ASCII)
	KeyD = 68 // D key (ASCII)
	KeyF = 70 // F key (ASCII)
	KeyL = 76 // L key (ASCII)
	KeyM = 77 // M key (ASCII)
	KeyR = 82 // R key (ASCII)
	KeyS = 83 // S key (ASCII)
	KeyT = 84 // T key (ASCII)
	KeyX = 88 // X key (ASCII)

	KeyLeftBracket  = 91  // [ key (ASCII)
	KeyRightBracket = 93  // ] key (ASCII)
	KeyMinus        = 45  // - key (ASCII)
	KeyEqual        = 61  // = key (ASCII)
	KeySpace        = 32  // Spacebar (ASCII)
	KeyEsc          = 256 // Escape key (GLFW)
)

// Additional non-printable keys
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)

	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)
