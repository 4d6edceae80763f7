// Package config holds the process-wide configuration, populated from
// config.yaml, environment variables and CLI flags via viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// TMDBAPIKey is the API key for TheMovieDB
	TMDBAPIKey string
	// TMDBLanguage is the language parameter sent on TMDB requests
	TMDBLanguage string
	// JSONOutputDir is where build artifacts are written
	JSONOutputDir string
	// CoverOutputDir is where downloaded poster images are written
	CoverOutputDir string
	// CachePath is the SQLite cache database path
	CachePath string
	// CacheTTL is the time-to-live for cached API responses
	CacheTTL time.Duration
	// ListingURL is the wiki listing page to scrape
	ListingURL string
	// DownloadCovers controls whether poster images are fetched locally
	DownloadCovers bool
	// OverwriteFiles controls whether existing artifacts should be overwritten
	OverwriteFiles bool
	// DatastorePath is the SQLite mirror database path, empty disables it
	DatastorePath string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("CoverOutputDir", "./covers/")
	viper.SetDefault("CachePath", "cache.db")
	viper.SetDefault("CacheTTLHours", 720)
	viper.SetDefault("TMDBLanguage", "zh-CN")
	viper.SetDefault("DownloadCovers", false)
	viper.SetDefault("OverwriteFiles", false)

	// Get values from viper
	TMDBAPIKey = viper.GetString("TMDBAPIKey")
	TMDBLanguage = viper.GetString("TMDBLanguage")
	JSONOutputDir = viper.GetString("JSONOutputDir")
	CoverOutputDir = viper.GetString("CoverOutputDir")
	CachePath = viper.GetString("CachePath")
	CacheTTL = time.Duration(viper.GetInt("CacheTTLHours")) * time.Hour
	ListingURL = viper.GetString("ListingURL")
	DownloadCovers = viper.GetBool("DownloadCovers")
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	DatastorePath = viper.GetString("DatastorePath")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
