package marvel

import (
	"errors"

	"comics-etl/core/failure"
)

// Config holds the API endpoint and credentials.
type Config struct {
	// PublicKey is sent as the apikey query parameter.
	PublicKey string `mapstructure:"public_key" default:""`
	// PrivateKey is only used to compute the request hash. It is never sent.
	PrivateKey string `mapstructure:"private_key" default:""`
	// BaseURL is the API root the collection endpoints hang off.
	BaseURL string `mapstructure:"base_url" default:"https://gateway.marvel.com/v1/public"`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks that both keys are present.
func (c Config) Validate() error {
	if c.PublicKey == "" {
		return failure.New(failure.KindConfig, "validate marvel config", errors.New("public key is empty (MARVEL_PUBLIC_KEY)"))
	}
	if c.PrivateKey == "" {
		return failure.New(failure.KindConfig, "validate marvel config", errors.New("private key is empty (MARVEL_PRIVATE_KEY)"))
	}
	if c.BaseURL == "" {
		return failure.New(failure.KindConfig, "validate marvel config", errors.New("base url is empty"))
	}
	return nil
}
