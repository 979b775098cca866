package scoreresumeats

import "time"

type Config struct {
	Timeout time.Duration
	// IndexResults stores each result in the resume score index when one
	// is configured.
	IndexResults bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		IndexResults: true,
	}
}
