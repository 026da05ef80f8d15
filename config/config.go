// Package config resolves server settings from the environment, optionally
// overlaid with a YAML config file.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

type Config struct {
	Addr        string `json:"addr"`
	MetricsAddr string `json:"metrics_addr"`

	// DataDir holds one <collection>.json file per collection.
	DataDir    string `json:"data_dir"`
	UploadsDir string `json:"uploads_dir"`

	// Backend selects the store implementation: "json" (default), "pebble"
	// or "memory".
	Backend string `json:"backend"`

	// AtomicWrites switches the json backend from a direct whole-file
	// overwrite to write-temp-then-rename. Off by default to match the
	// longstanding write behavior; note a crash mid-write can then corrupt
	// the file.
	AtomicWrites bool `json:"atomic_writes"`

	// BodyLimit is generous because admin clients submit base64 images
	// inline before they are persisted as files.
	BodyLimit string `json:"body_limit"`

	CRM CRM `json:"crm"`
}

// CRM configures the external inquiry sink. The fallback credentials are
// insecure placeholders; override them in any real deployment.
type CRM struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token"`
	BaseID  string `json:"base_id"`
	Table   string `json:"table"`
}

func Default() Config {
	return Config{
		Addr:         getenv("MOTOHUB_ADDR", ":4000"),
		MetricsAddr:  getenv("MOTOHUB_METRICS_ADDR", ":27667"),
		DataDir:      getenv("MOTOHUB_DATA_DIR", "./data"),
		UploadsDir:   getenv("MOTOHUB_UPLOADS_DIR", "./public/uploads"),
		Backend:      getenv("MOTOHUB_STORE_BACKEND", "json"),
		AtomicWrites: getenv("MOTOHUB_ATOMIC_WRITES", "") == "true",
		BodyLimit:    getenv("MOTOHUB_BODY_LIMIT", "50M"),
		CRM: CRM{
			BaseURL: getenv("CRM_BASE_URL", "https://api.airtable.com"),
			Token:   getenv("CRM_API_TOKEN", "patMotohubDevFallback"),
			BaseID:  getenv("CRM_BASE_ID", "appMotohubLeads"),
			Table:   getenv("CRM_TABLE", "Inquiries"),
		},
	}
}

// Load returns the environment config, overlaid with the YAML file at path
// when one is given.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file: %w", err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
