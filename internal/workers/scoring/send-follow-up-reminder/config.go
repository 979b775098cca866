package sendfollowupreminder

import "time"

type Config struct {
	Timeout time.Duration
	// AfterDays is how long a recruiter stays silent before a reminder.
	AfterDays int
	BatchSize int
	LockTTL   time.Duration

	EmailEnabled         bool
	SMSEnabled           bool
	SMSPriorityThreshold int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:              60 * time.Second,
		AfterDays:            5,
		BatchSize:            50,
		LockTTL:              5 * time.Minute,
		EmailEnabled:         true,
		SMSEnabled:           false,
		SMSPriorityThreshold: 70,
	}
}
