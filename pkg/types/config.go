package types

import "time"

// StoreConfig holds settings for the bioRxiv S3 TDM repository.
type StoreConfig struct {
	// Bucket is the S3 bucket holding monthly MECA deposits
	// (default "biorxiv-src-monthly").
	Bucket string `json:"bucket" yaml:"bucket"`

	// Region is the bucket's AWS region (default "us-east-1").
	Region string `json:"region" yaml:"region"`

	// Prefix is the top-level folder containing the month folders
	// (default "Current_Content/").
	Prefix string `json:"prefix" yaml:"prefix"`
}

// IndexConfig holds settings for month index building.
// Per prd008-fulltext-archive R2.1-R2.5.
type IndexConfig struct {
	// CacheDir is the directory for per-month DOI index files.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// MaxFiles caps the number of archives indexed per month (default 10000).
	MaxFiles int `json:"max_files" yaml:"max_files"`

	// Workers is the number of concurrent DOI extractions (default 10).
	Workers int `json:"workers" yaml:"workers"`

	// TTL is how long a cached month index stays fresh (default 168h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// FetchConfig holds settings for full-text retrieval.
type FetchConfig struct {
	// CacheDir is the base directory for cached full-text files
	// (contains biorxiv/, pmc/).
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`
}

// Config groups all subsystem configuration.
type Config struct {
	Store StoreConfig `json:"store" yaml:"store"`
	Index IndexConfig `json:"index" yaml:"index"`
	Fetch FetchConfig `json:"fetch" yaml:"fetch"`

	// LogLevel selects the logging verbosity: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Defaults for the bioRxiv TDM repository.
const (
	DefaultBucket   = "biorxiv-src-monthly"
	DefaultRegion   = "us-east-1"
	DefaultPrefix   = "Current_Content/"
	DefaultMaxFiles = 10000
	DefaultWorkers  = 10
	DefaultIndexTTL = 7 * 24 * time.Hour
)

// SetDefaults fills zero-valued fields with subsystem defaults.
func (c *Config) SetDefaults() {
	if c.Store.Bucket == "" {
		c.Store.Bucket = DefaultBucket
	}
	if c.Store.Region == "" {
		c.Store.Region = DefaultRegion
	}
	if c.Store.Prefix == "" {
		c.Store.Prefix = DefaultPrefix
	}
	if c.Index.MaxFiles <= 0 {
		c.Index.MaxFiles = DefaultMaxFiles
	}
	if c.Index.Workers <= 0 {
		c.Index.Workers = DefaultWorkers
	}
	if c.Index.TTL <= 0 {
		c.Index.TTL = DefaultIndexTTL
	}
	if c.Index.CacheDir == "" {
		c.Index.CacheDir = "cache"
	}
	if c.Fetch.CacheDir == "" {
		c.Fetch.CacheDir = "cache/fulltext"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
