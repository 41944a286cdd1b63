package config

import (
	"os"
	"strings"
)

const (
	defaultSpecSource  = "./openapi.json"
	defaultProductName = "Sample"
	defaultWorkspaceID = "8e8ff5ab-e200-4eca-b030-c6e0b2a2da25"
	defaultBaseURL     = "https://api.getpostman.com"
	defaultListenAddr  = ":1338"
	defaultAPIVersion  = "1.0.0"
)

// Config carries every environment-derived setting. It is built once in
// main and handed to the components; nothing below main reads the
// environment directly.
type Config struct {
	SpecSource      string
	ProductName     string
	OutputFile      string
	WorkspaceID     string
	APIKey          string
	PostmanBaseURL  string
	LintSpec        bool
	ListenAddr      string
	APIVersion      string
	PublishSchedule string
}

// FromEnv reads the configuration with its literal defaults. An empty
// POSTMAN_API_KEY disables the upload; everything else has a usable default.
func FromEnv() Config {
	cfg := Config{
		SpecSource:      getenv("OPENAPI_SPEC", defaultSpecSource),
		ProductName:     getenv("PRODUCT_NAME", defaultProductName),
		WorkspaceID:     getenv("POSTMAN_WORKSPACE_ID", defaultWorkspaceID),
		APIKey:          strings.TrimSpace(os.Getenv("POSTMAN_API_KEY")),
		PostmanBaseURL:  getenv("POSTMAN_API_BASE_URL", defaultBaseURL),
		LintSpec:        getenv("LINT_SPEC", "true") != "false",
		ListenAddr:      getenv("LISTEN_ADDR", defaultListenAddr),
		APIVersion:      getenv("API_VERSION", defaultAPIVersion),
		PublishSchedule: strings.TrimSpace(os.Getenv("PUBLISH_SCHEDULE")),
	}
	cfg.OutputFile = getenv("OUTPUT_FILE", "./"+cfg.ProductName+".postman_collection.json")
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
