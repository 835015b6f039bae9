package config

import (
	"time"
	"unicode/utf8"
)

// Config is the fully resolved viur configuration
type Config struct {
	Server   Server   `koanf:"server"`
	Auth     Auth     `koanf:"auth"`
	Export   Export   `koanf:"export"`
	Import   Import   `koanf:"import"`
	Download Download `koanf:"download"`
	Blobs    Blobs    `koanf:"blobs"`
	Port     Port     `koanf:"port"`
	Random   Random   `koanf:"random"`
}

// Server describes the backend instance the tools talk to
type Server struct {
	Host       string        `koanf:"host"`
	Render     string        `koanf:"render"`
	Timeout    time.Duration `koanf:"timeout"`
	Retries    int           `koanf:"retries"`
	RetryDelay time.Duration `koanf:"retry_delay"`
}

// Auth holds the login credentials. Either a username and password or a
// login key is used.
type Auth struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	LoginKey string `koanf:"login_key"`
}

// Export configures the csv exporter
type Export struct {
	EmptyValue  string   `koanf:"empty_value"`
	OnlyVisible bool     `koanf:"only_visible"`
	Language    string   `koanf:"language"`
	Delimiter   string   `koanf:"delimiter"`
	Columns     []string `koanf:"columns"`
	OutputDir   string   `koanf:"output_dir"`
}

// Import configures the csv importer
type Import struct {
	Delimiter   string `koanf:"delimiter"`
	KeyColumn   string `koanf:"key_column"`
	AllowUpdate bool   `koanf:"allow_update"`
}

// Download configures the file tree download
type Download struct {
	Repo   string `koanf:"repo"`
	Module string `koanf:"module"`
	Target string `koanf:"target"`
}

// Blobs configures copying blobs between two instances
type Blobs struct {
	KnownDB          string   `koanf:"known_db"`
	SkipContentTypes []string `koanf:"skip_content_types"`
	SourceKey        string   `koanf:"source_key"`
	DestinationKey   string   `koanf:"destination_key"`
}

// Port configures the source code porting tool
type Port struct {
	IgnoreDirs []string `koanf:"ignore_dirs"`
	Extensions []string `koanf:"extensions"`
	NoBackup   bool     `koanf:"no_backup"`
}

// Random configures the random string generator
type Random struct {
	Length int `koanf:"length"`
}

// Delimiter returns the first rune of s, or fallback when s is empty.
// "tab" and a literal backslash-t both select a tab.
func Delimiter(s string, fallback rune) rune {
	if s == "tab" || s == `\t` {
		return '\t'
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return fallback
	}
	return r
}
