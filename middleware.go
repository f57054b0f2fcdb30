package headlessterm

// Middleware intercepts selected dispatcher callbacks, allowing custom
// behavior before/after the default implementation runs. Each field wraps
// one handler: it receives the original parameters and a next function
// that invokes the default implementation.
type Middleware struct {
	// SetTitle wraps the OSC 0/2 title handler.
	SetTitle func(title string, next func(string))

	// SetIconName wraps the OSC 0/1 icon-name handler.
	SetIconName func(name string, next func(string))

	// SetWorkingDirectory wraps the OSC 7 handler.
	SetWorkingDirectory func(host, dir string, next func(string, string))
}

// Merge overlays non-nil fields from other onto m.
func (m *Middleware) Merge(other *Middleware) {
	if other == nil {
		return
	}
	if other.SetTitle != nil {
		m.SetTitle = other.SetTitle
	}
	if other.SetIconName != nil {
		m.SetIconName = other.SetIconName
	}
	if other.SetWorkingDirectory != nil {
		m.SetWorkingDirectory = other.SetWorkingDirectory
	}
}
