package domain

// Config mirrors ~/.intentshell/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Preferences         Preferences      `yaml:"preferences"`
	Reasoner            ReasonerSettings `yaml:"reasoner"`
	Safety              SafetySettings   `yaml:"safety"`
	Recorder            RecorderSettings `yaml:"recorder"`
}

// Preferences captures user level toggles.
type Preferences struct {
	MaxRepairAttempts     int  `yaml:"max_repair_attempts"`
	HandlerTimeoutSeconds int  `yaml:"handler_timeout"`
	ConfirmEnabled        bool `yaml:"confirm_enabled"`
	Verbose               bool `yaml:"verbose"`
}

// ReasonerSettings configures the optional external reasoner. An empty
// endpoint disables the capability and degrades the pipeline to pure
// heuristic matching.
type ReasonerSettings struct {
	Endpoint       string `yaml:"endpoint"`
	AuthEnvVar     string `yaml:"auth_env_var"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Enabled reports whether a reasoner endpoint is configured.
func (r ReasonerSettings) Enabled() bool {
	return r.Endpoint != ""
}

// SafetySettings defines confirmation and denylist behavior.
type SafetySettings struct {
	DenylistFile string `yaml:"denylist_file"`
}

// RecorderSettings controls transaction/repair persistence.
type RecorderSettings struct {
	// Backend is "sqlite" or "jsonl". Empty means sqlite with a JSONL
	// fallback when the database cannot be opened.
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}
