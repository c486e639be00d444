package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/dealhub/config"
	ConfigFileName    = "dealhub.yml"
)

// Config holds all Dealhub configuration settings
type Config struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// ListLimitMax is the maximum number of results for listing requests
	ListLimitMax int `yaml:"list_limit_max" json:"list_limit_max"`

	// UsersPageSize is the default page size for the admin user list
	UsersPageSize int `yaml:"users_page_size" json:"users_page_size"`

	// SessionTokenTTL is the TTL for session tokens in seconds
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// UploadsBucket is the object storage bucket for uploaded images
	UploadsBucket string `yaml:"uploads_bucket" json:"uploads_bucket"`

	// UploadsEndpoint is the object storage endpoint (host:port)
	UploadsEndpoint string `yaml:"uploads_endpoint" json:"uploads_endpoint"`

	// UploadsUseSSL enables TLS for object storage connections
	UploadsUseSSL bool `yaml:"uploads_use_ssl" json:"uploads_use_ssl"`

	// UploadURLTTL is the validity of presigned upload URLs in seconds
	UploadURLTTL int `yaml:"upload_url_ttl" json:"upload_url_ttl"`

	// SignupEnabled controls whether the public signup endpoint is open
	SignupEnabled bool `yaml:"signup_enabled" json:"signup_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		TrustedProxies:  []string{},
		ListLimitMax:    1000,
		UsersPageSize:   5,
		SessionTokenTTL: 28800,
		UploadsBucket:   "dealhub-media",
		UploadsEndpoint: "localhost:9000",
		UploadsUseSSL:   false,
		UploadURLTTL:    600,
		SignupEnabled:   true,
		sources:         make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("DEALHUB_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "list_limit_max", "users_page_size",
		"session_token_ttl", "uploads_bucket", "uploads_endpoint",
		"uploads_use_ssl", "upload_url_ttl", "signup_enabled",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.ListLimitMax != 0 {
		c.ListLimitMax = file.ListLimitMax
		c.sources["list_limit_max"] = "file"
	}
	if file.UsersPageSize != 0 {
		c.UsersPageSize = file.UsersPageSize
		c.sources["users_page_size"] = "file"
	}
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.UploadsBucket != "" {
		c.UploadsBucket = file.UploadsBucket
		c.sources["uploads_bucket"] = "file"
	}
	if file.UploadsEndpoint != "" {
		c.UploadsEndpoint = file.UploadsEndpoint
		c.sources["uploads_endpoint"] = "file"
	}
	if file.UploadURLTTL != 0 {
		c.UploadURLTTL = file.UploadURLTTL
		c.sources["upload_url_ttl"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("DEALHUB_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("DEALHUB_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ListLimitMax = i
			c.sources["list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("DEALHUB_USERS_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.UsersPageSize = i
			c.sources["users_page_size"] = "environment"
		}
	}
	if val := os.Getenv("DEALHUB_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("DEALHUB_UPLOADS_BUCKET"); val != "" {
		c.UploadsBucket = val
		c.sources["uploads_bucket"] = "environment"
	}
	if val := os.Getenv("DEALHUB_UPLOADS_ENDPOINT"); val != "" {
		c.UploadsEndpoint = val
		c.sources["uploads_endpoint"] = "environment"
	}
	if val := os.Getenv("DEALHUB_UPLOADS_USE_SSL"); val != "" {
		c.UploadsUseSSL = val == "true" || val == "1"
		c.sources["uploads_use_ssl"] = "environment"
	}
	if val := os.Getenv("DEALHUB_UPLOAD_URL_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.UploadURLTTL = i
			c.sources["upload_url_ttl"] = "environment"
		}
	}
	if val := os.Getenv("DEALHUB_SIGNUP_ENABLED"); val != "" {
		c.SignupEnabled = val == "true" || val == "1"
		c.sources["signup_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session token TTL as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Second
}

// UploadTTL returns the presigned upload URL TTL as a duration
func (c *Config) UploadTTL() time.Duration {
	return time.Duration(c.UploadURLTTL) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("session_token_ttl must be positive, got %d", c.SessionTokenTTL)
	}
	if c.ListLimitMax <= 0 {
		return fmt.Errorf("list_limit_max must be positive, got %d", c.ListLimitMax)
	}
	if c.UsersPageSize <= 0 {
		return fmt.Errorf("users_page_size must be positive, got %d", c.UsersPageSize)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "list_limit_max", Value: strconv.Itoa(c.ListLimitMax), Source: c.Source("list_limit_max")},
		{Name: "users_page_size", Value: strconv.Itoa(c.UsersPageSize), Source: c.Source("users_page_size")},
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "uploads_bucket", Value: c.UploadsBucket, Source: c.Source("uploads_bucket")},
		{Name: "uploads_endpoint", Value: c.UploadsEndpoint, Source: c.Source("uploads_endpoint")},
		{Name: "uploads_use_ssl", Value: strconv.FormatBool(c.UploadsUseSSL), Source: c.Source("uploads_use_ssl")},
		{Name: "upload_url_ttl", Value: strconv.Itoa(c.UploadURLTTL), Source: c.Source("upload_url_ttl")},
		{Name: "signup_enabled", Value: strconv.FormatBool(c.SignupEnabled), Source: c.Source("signup_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-25s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
