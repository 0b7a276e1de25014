package internal

import (
	"errors"
	"github.com/morikuni/failure"
	"github.com/spf13/viper"
	"io/fs"
)

const InvalidSiteConfig failure.StringCode = "InvalidSiteConfig"

// Site holds presentation settings shared by every page.
type Site struct {
	Title       string `mapstructure:"title"`
	Author      string `mapstructure:"author"`
	Description string `mapstructure:"description"`
	// CodeStyle is a chroma style name.
	CodeStyle string `mapstructure:"code_style"`
}

func DefaultSite() Site {
	return Site{
		Title:       "folio",
		Author:      "folio",
		Description: "Writing and notes",
		CodeStyle:   "github",
	}
}

// LoadSite reads the site file at path, when given, and FOLIO_SITE_*
// environment variables. A missing file leaves the defaults in place.
func LoadSite(path string) (Site, error) {
	defaults := DefaultSite()
	v := viper.New()
	v.SetDefault("title", defaults.Title)
	v.SetDefault("author", defaults.Author)
	v.SetDefault("description", defaults.Description)
	v.SetDefault("code_style", defaults.CodeStyle)
	v.SetEnvPrefix("FOLIO_SITE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Site{}, failure.Translate(err, InvalidSiteConfig, failure.Context{"path": path})
		}
	}
	var site Site
	if err := v.Unmarshal(&site); err != nil {
		return Site{}, failure.Translate(err, InvalidSiteConfig, failure.Context{"path": path})
	}
	return site, nil
}
