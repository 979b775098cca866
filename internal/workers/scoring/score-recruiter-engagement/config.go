package scorerecruiterengagement

import "time"

type Config struct {
	Timeout time.Duration
	// Persist writes the engagement and fit scores back to the recruiter row.
	Persist bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Persist: true,
	}
}
