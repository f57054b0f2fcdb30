package headlessterm

// --- Title Provider ---

// TitleProvider handles window title and icon name changes (OSC 0, 1, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// SetIconName is called when the icon name changes.
	SetIconName(name string)
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string)   {}
func (NoopTitle) SetIconName(name string) {}

// --- Working Directory Provider ---

// WorkingDirectoryProvider handles OSC 7 current-directory reports.
type WorkingDirectoryProvider interface {
	// SetWorkingDirectory is called with the host and directory reported
	// by the shell.
	SetWorkingDirectory(host, dir string)
}

// NoopWorkingDirectory ignores OSC 7 reports.
type NoopWorkingDirectory struct{}

func (NoopWorkingDirectory) SetWorkingDirectory(host, dir string) {}

// Ensure implementations satisfy their interfaces.
var _ TitleProvider = (*NoopTitle)(nil)
var _ WorkingDirectoryProvider = (*NoopWorkingDirectory)(nil)
