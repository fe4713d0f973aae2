// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"

	"github.com/authrelay/authrelay/internal/token"
)

// EnvConfigJSON is the environment variable holding a JSON document that
// is merged over the TOML config. Used to inject client secrets without
// writing them to disk.
const EnvConfigJSON = "AUTH_RELAY_CONFIG_JSON"

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		jsonConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	jsonConfigEnv = os.Getenv(EnvConfigJSON)

	if jsonConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, jsonConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge json config from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings for the relay. Provider entries are
// checked structurally (URI fields must parse as URLs when set); whether
// a provider is complete enough for logins stays a runtime question
// answered by oauth.ProviderConfig.Configured.
func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if len(c.JWT.Secret) < token.MinSecretLen {
		return errors.Wrap(ErrJWTSecretTooShort, invalidErrMessage)
	}

	if c.OAuth.RedirectBaseURL == "" {
		return errors.Wrap(ErrEmptyRedirectBaseURL, invalidErrMessage)
	}

	v := validator.New()

	for name, provider := range c.OAuth.Providers {
		if err := v.Struct(provider); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s: provider %s", invalidErrMessage, name))
		}
	}

	return nil
}
