package collector

import (
	"time"

	"codeberg.org/mutker/hwprint/internal/errors"
)

const defaultBatteryTimeout = 250 * time.Millisecond

type Config struct {
	// BatteryTimeout bounds the wait on an asynchronous battery source.
	BatteryTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BatteryTimeout: defaultBatteryTimeout,
	}
}

func (c Config) Validate() error {
	if c.BatteryTimeout <= 0 {
		return errors.New().WithData(errors.ErrInvalidTimeout, c.BatteryTimeout)
	}

	return nil
}
