package config

import "errors"

// Config errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config")
	ErrDBPathEmpty        = errors.New("db_path cannot be empty")
	ErrNoDataDir          = errors.New("cannot determine data directory: set db_path, XDG_DATA_HOME or HOME")
	ErrMailboxSize        = errors.New("mailbox_size must be greater than 0")
	ErrLogLevel           = errors.New("log_level must be one of debug, info, warn, error")
)
