package bootstrap

import (
	"github.com/kbukum/voicefeedback/config"
)

// Config is satisfied by any struct embedding config.ServiceConfig by value
// and adding its own ApplyDefaults/Validate. Both binaries hand their root
// config to NewApp through this constraint.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
