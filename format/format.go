package format

import "path/filepath"

type Format string

// Wire format
const (
	UnknownFormat Format = "unknown"
	JSON          Format = "json"
	YAML          Format = "yaml"
)

// Wire format extension
const (
	UnknownExt string = ".unknown"
	JSONExt    string = ".json"
	YAMLExt    string = ".yaml"
	YMLExt     string = ".yml"
)

// GetFormat returns the file's format by filename extension.
func GetFormat(filename string) Format {
	return Ext2Format(filepath.Ext(filename))
}

func Ext2Format(ext string) Format {
	switch ext {
	case JSONExt:
		return JSON
	case YAMLExt, YMLExt:
		return YAML
	default:
		return UnknownFormat
	}
}

func Format2Ext(fmt Format) string {
	switch fmt {
	case JSON:
		return JSONExt
	case YAML:
		return YAMLExt
	default:
		return UnknownExt
	}
}
