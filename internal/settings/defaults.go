package settings

// GetDefaults returns the default settings values
func GetDefaults() map[string]any {
	return map[string]any{
		"production":  false,
		"format":      "text",
		"engine":      "rfc9535",
		"log_level":   "warn",
		"color":       false,
		"presets":     []string{},
		"files":       []string{},
		"concurrency": 0,
	}
}
