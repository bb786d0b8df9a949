package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/hostbridge/hostbridge/legacy"
	"github.com/hostbridge/hostbridge/transport"
)

var validate = validator.New()

// Session configures one bridge session. The zero value is not usable;
// start from Default and override.
type Session struct {
	// Scheme is the custom scheme the embedder intercepts, without the
	// "://" suffix.
	Scheme string `validate:"required,alphanum"`

	// Endpoint is the handler path under the scheme.
	Endpoint string `validate:"required"`

	// BinaryHeader carries base64 binary frames on requests.
	BinaryHeader string `validate:"required"`

	// LegacyHeader carries base64 legacy JSON documents. Must differ
	// from BinaryHeader so one server can host both protocols.
	LegacyHeader string `validate:"required,nefield=BinaryHeader"`

	// MaxFrameSize bounds decoded inbound frames, in bytes. Zero
	// disables the bound.
	MaxFrameSize int `validate:"gte=0"`
}

// Default returns the stock session configuration.
func Default() Session {
	return Session{
		Scheme:       "bridge",
		Endpoint:     "handler",
		BinaryHeader: transport.DefaultHeader,
		LegacyHeader: legacy.DefaultHeader,
		MaxFrameSize: 16 << 20,
	}
}

// URL returns the scheme-qualified endpoint.
func (s Session) URL() string {
	return s.Scheme + "://" + s.Endpoint
}

// Validate checks the configuration.
func (s Session) Validate() error {
	return validate.Struct(s)
}
