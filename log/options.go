package log

type Options struct {
	// Log mode: SIMPLE, FULL.
	//
	// Default: "FULL".
	Mode string `yaml:"mode"`
	// Log level: DEBUG, INFO, WARN, ERROR.
	//
	// Default: "INFO".
	Level string `yaml:"level"`
	// Log filename: set this if you want to write log messages to files.
	//
	// Default: "".
	Filename string `yaml:"filename"`
	// Log sink: CONSOLE, FILE, and MULTI.
	//
	// Default: "CONSOLE".
	Sink string `yaml:"sink"`
}

func newDefault() *Options {
	return &Options{
		Mode:  ModeFull,
		Level: "INFO",
		Sink:  "CONSOLE",
	}
}

// merge fills opt's empty fields with defaults.
func (opt *Options) merge() *Options {
	merged := newDefault()
	if opt == nil {
		return merged
	}
	if opt.Mode != "" {
		merged.Mode = opt.Mode
	}
	if opt.Level != "" {
		merged.Level = opt.Level
	}
	if opt.Filename != "" {
		merged.Filename = opt.Filename
	}
	if opt.Sink != "" {
		merged.Sink = opt.Sink
	}
	return merged
}
