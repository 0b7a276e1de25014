package internal

import "time"

const (
	DefaultListenAddr    = ":8080"
	DefaultContentOrigin = "./content"
	DefaultJobTimeout    = 10 * time.Second
	DefaultScanInterval  = 30 * time.Minute
	DefaultSearchLimit   = 20
)

type Config struct {
	ListenAddr     string
	ContentOrigin  string
	SiteConfigPath string
	// DatabaseURL enables the search index when set.
	DatabaseURL   string
	SecureCookies bool

	Languages    []string
	Once         bool
	ScanInterval time.Duration
	JobTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:    DefaultListenAddr,
		ContentOrigin: DefaultContentOrigin,
		ScanInterval:  DefaultScanInterval,
		JobTimeout:    DefaultJobTimeout,
	}
}

func (c Config) SearchEnabled() bool {
	return c.DatabaseURL != ""
}
