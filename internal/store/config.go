package store

import "codeberg.org/mutker/hwprint/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/hwprint/reports.db"
)

type Config struct {
	DBPath  string
	Enabled bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:  defaultDBPath,
		Enabled: false,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate DBPath if the store is enabled
	if c.Enabled && c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	return nil
}
