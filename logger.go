package onioncrypto

import (
	"github.com/go-i2p/logger"
)

// Package-wide logger instance.
//
// Logging goes through github.com/go-i2p/logger, which is configured via
// the DEBUG_I2P environment variable (debug/warn/error). The envelope layer
// logs provider failures on its convenience paths (composite cipher
// construction, key file loading) and stays silent on the hot paths.
var log = logger.GetGoI2PLogger()
