package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/canopy/pkg/formatting"
	"github.com/JaimeStill/canopy/pkg/middleware"
	"github.com/JaimeStill/canopy/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CANOPY_CORS_ENABLED",
	Origins:          "CANOPY_CORS_ORIGINS",
	AllowedMethods:   "CANOPY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CANOPY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CANOPY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CANOPY_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CANOPY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CANOPY_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds the HTTP surface of the explorer service: where it is
// mounted, how large document uploads and JSON command bodies may be, and
// the CORS and list pagination policies.
type APIConfig struct {
	BasePath string `toml:"base_path"`

	// MaxUploadSize caps multipart model uploads to /documents.
	MaxUploadSize string `toml:"max_upload_size"`
	// MaxRequestBody caps every other request body: session open commands,
	// explorer tree items, representation writes, search requests.
	MaxRequestBody string `toml:"max_request_body"`

	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes, or 0 if it does not parse.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	return sizeBytes(c.MaxUploadSize)
}

// MaxRequestBodyBytes returns MaxRequestBody in bytes, or 0 (no limit) if it
// is unset or does not parse.
func (c *APIConfig) MaxRequestBodyBytes() int64 {
	return sizeBytes(c.MaxRequestBody)
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.MaxRequestBody != "" {
		c.MaxRequestBody = overlay.MaxRequestBody
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) validate() error {
	upload := c.MaxUploadSizeBytes()
	if upload <= 0 {
		return fmt.Errorf("invalid max_upload_size %q", c.MaxUploadSize)
	}

	body := c.MaxRequestBodyBytes()
	if body <= 0 {
		return fmt.Errorf("invalid max_request_body %q", c.MaxRequestBody)
	}
	if body > upload {
		return fmt.Errorf("max_request_body %s exceeds max_upload_size %s", c.MaxRequestBody, c.MaxUploadSize)
	}
	return nil
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if c.MaxRequestBody == "" {
		c.MaxRequestBody = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	overrides := map[string]*string{
		"CANOPY_API_BASE_PATH":        &c.BasePath,
		"CANOPY_API_MAX_UPLOAD_SIZE":  &c.MaxUploadSize,
		"CANOPY_API_MAX_REQUEST_BODY": &c.MaxRequestBody,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

func sizeBytes(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := formatting.ParseBytes(s)
	if err != nil {
		return 0
	}
	return n
}
