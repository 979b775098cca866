package refreshpriorityscores

import "time"

type Config struct {
	Timeout time.Duration
	// LockTTL bounds how long a crashed refresh blocks the next one.
	LockTTL time.Duration
	TopN    int
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		LockTTL: 60 * time.Second,
		TopN:    5,
	}
}
