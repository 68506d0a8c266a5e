package settings

// Settings is the persisted application settings document.
type Settings struct {
	StartWithSystem             bool `json:"startWithSystem"`
	MinimizeToTray              bool `json:"minimizeToTray"`
	DefaultNotificationDuration int  `json:"defaultNotificationDuration"` // seconds
	PlaySoundOnNotification     bool `json:"playSoundOnNotification"`
	GlassmorphismEffect         bool `json:"glassmorphismEffect"`
	CheckInterval               int  `json:"checkInterval"` // poll period, seconds
}

// Default returns the settings used before anything was ever saved.
func Default() Settings {
	return Settings{
		StartWithSystem:             false,
		MinimizeToTray:              true,
		DefaultNotificationDuration: 10,
		PlaySoundOnNotification:     true,
		GlassmorphismEffect:         true,
		CheckInterval:               5,
	}
}

// Patch is a partial settings update; nil fields are left untouched.
type Patch struct {
	StartWithSystem             *bool `json:"startWithSystem,omitempty"`
	MinimizeToTray              *bool `json:"minimizeToTray,omitempty"`
	DefaultNotificationDuration *int  `json:"defaultNotificationDuration,omitempty"`
	PlaySoundOnNotification     *bool `json:"playSoundOnNotification,omitempty"`
	GlassmorphismEffect         *bool `json:"glassmorphismEffect,omitempty"`
	CheckInterval               *int  `json:"checkInterval,omitempty"`
}

// Apply merges a patch into a copy of s and returns it.
func (s Settings) Apply(p Patch) Settings {
	if p.StartWithSystem != nil {
		s.StartWithSystem = *p.StartWithSystem
	}
	if p.MinimizeToTray != nil {
		s.MinimizeToTray = *p.MinimizeToTray
	}
	if p.DefaultNotificationDuration != nil {
		s.DefaultNotificationDuration = *p.DefaultNotificationDuration
	}
	if p.PlaySoundOnNotification != nil {
		s.PlaySoundOnNotification = *p.PlaySoundOnNotification
	}
	if p.GlassmorphismEffect != nil {
		s.GlassmorphismEffect = *p.GlassmorphismEffect
	}
	if p.CheckInterval != nil {
		s.CheckInterval = *p.CheckInterval
	}
	return s
}

// Store persists the settings document by whole-document replace.
type Store interface {
	LoadSettings() (Settings, error)
	SaveSettings(s Settings) error
}
