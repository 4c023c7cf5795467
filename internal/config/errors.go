package config

import "errors"

// ErrBadPolarity indicates a device selector other than nmos/pmos.
var ErrBadPolarity = errors.New("config: unknown device polarity")
