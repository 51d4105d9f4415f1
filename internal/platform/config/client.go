package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Token store kinds.
const (
	TokenStoreFile   = "file"
	TokenStoreMemory = "memory"
)

// ClientConfig holds the configuration of the client core and the CLI.
type ClientConfig struct {
	APIURL               string
	AuthScheme           string // "Token" or "Bearer"
	RequireStrongAuth    bool
	TokenStore           string
	TokenStorePath       string
	TokenStorePassphrase string
	DevicePasscodeHash   string // bcrypt hash; empty means no device credential
	HTTPTimeout          time.Duration
	DeepLinkScheme       string
	DeepLinkHosts        []string
	LogLevel             string
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".komunity", "token")
	}
	return filepath.Join(home, ".komunity", "token")
}

// LoadClientConfig loads the client configuration from flags bound into viper,
// the environment and .env, in that order of precedence.
func LoadClientConfig() (*ClientConfig, error) {
	viper.SetDefault("KOMUNITY_API_URL", "http://localhost:8080/api/v1/")
	viper.SetDefault("AUTH_SCHEME", "Token")
	viper.SetDefault("REQUIRE_STRONG_AUTH", true)
	viper.SetDefault("TOKEN_STORE", TokenStoreFile)
	viper.SetDefault("TOKEN_STORE_PATH", defaultTokenPath())
	viper.SetDefault("TOKEN_STORE_PASSPHRASE", "")
	viper.SetDefault("DEVICE_PASSCODE_HASH", "")
	viper.SetDefault("HTTP_TIMEOUT", "0s")
	viper.SetDefault("DEEP_LINK_SCHEME", "komunity")
	viper.SetDefault("DEEP_LINK_HOSTS", "")
	viper.SetDefault("LOG_LEVEL", "info")
	loadEnv()

	cfg := &ClientConfig{
		APIURL:               viper.GetString("KOMUNITY_API_URL"),
		AuthScheme:           viper.GetString("AUTH_SCHEME"),
		RequireStrongAuth:    viper.GetBool("REQUIRE_STRONG_AUTH"),
		TokenStore:           strings.ToLower(viper.GetString("TOKEN_STORE")),
		TokenStorePath:       viper.GetString("TOKEN_STORE_PATH"),
		TokenStorePassphrase: viper.GetString("TOKEN_STORE_PASSPHRASE"),
		DevicePasscodeHash:   viper.GetString("DEVICE_PASSCODE_HASH"),
		HTTPTimeout:          durationOr("HTTP_TIMEOUT", 0),
		DeepLinkScheme:       viper.GetString("DEEP_LINK_SCHEME"),
		DeepLinkHosts:        splitList(viper.GetString("DEEP_LINK_HOSTS")),
		LogLevel:             viper.GetString("LOG_LEVEL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects a configuration the client cannot run with.
func (c *ClientConfig) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("KOMUNITY_API_URL %q must be an absolute http(s) URL", c.APIURL))
	}
	if c.AuthScheme != "Token" && c.AuthScheme != "Bearer" {
		errs = append(errs, fmt.Errorf("AUTH_SCHEME %q must be Token or Bearer", c.AuthScheme))
	}
	switch c.TokenStore {
	case TokenStoreFile:
		if c.TokenStorePath == "" {
			errs = append(errs, errors.New("TOKEN_STORE_PATH is required for the file token store"))
		}
		if c.TokenStorePassphrase == "" {
			errs = append(errs, errors.New("TOKEN_STORE_PASSPHRASE is required for the file token store"))
		}
	case TokenStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("TOKEN_STORE %q must be file or memory", c.TokenStore))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT cannot be negative"))
	}
	if c.DeepLinkScheme == "" {
		errs = append(errs, errors.New("DEEP_LINK_SCHEME cannot be empty"))
	}
	return errors.Join(errs...)
}
