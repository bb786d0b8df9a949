// Package config holds session configuration shared by the transports
// and the bootstrap wiring.
package config
