package editor

// Settings is a read-only snapshot of host preferences. The component never
// writes settings; hosts provide a snapshot function in Config and the view
// re-reads it on every render.
type Settings struct {
	General    GeneralSettings
	Appearance AppearanceSettings
}

type GeneralSettings struct {
	// IDECommand is the host's external-editor command. Carried for hosts
	// that surface an "open in IDE" action; the component does not run it.
	IDECommand           string
	HighlightCurrentLine bool
}

type AppearanceSettings struct {
	Theme          string
	EditorFontSize int
}

// DefaultSettings returns the settings used when Config.Settings is nil.
func DefaultSettings() Settings {
	return Settings{
		General:    GeneralSettings{HighlightCurrentLine: true},
		Appearance: AppearanceSettings{Theme: "dark", EditorFontSize: 14},
	}
}

func (m Model) settings() Settings {
	if m.cfg.Settings == nil {
		return DefaultSettings()
	}
	return m.cfg.Settings()
}
