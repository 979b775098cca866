package store

import (
	"context"
	"time"
)

type SeekerSource interface {
	GetSeeker(ctx context.Context, userID string) (*Seeker, error)
}

type ActivitySource interface {
	GetActivityStats(ctx context.Context, userID string, now time.Time) (ActivityStats, error)
}

// Seeker reads the profile through the cache. Cache errors fall through to
// src; a nil cache always reads src.
func (c *ScoreCache) Seeker(ctx context.Context, userID string, src SeekerSource) (*Seeker, error) {
	var cached Seeker
	if c != nil {
		if found, err := c.GetJSON(ctx, SeekerKey(userID), &cached); err == nil && found {
			return &cached, nil
		}
	}

	s, err := src.GetSeeker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		_ = c.SetJSON(ctx, SeekerKey(userID), s)
	}
	return s, nil
}

// Activity reads the outreach aggregates through the cache.
func (c *ScoreCache) Activity(ctx context.Context, userID string, now time.Time, src ActivitySource) (ActivityStats, error) {
	var cached ActivityStats
	if c != nil {
		if found, err := c.GetJSON(ctx, ActivityKey(userID), &cached); err == nil && found {
			return cached, nil
		}
	}

	stats, err := src.GetActivityStats(ctx, userID, now)
	if err != nil {
		return ActivityStats{}, err
	}
	if c != nil {
		_ = c.SetJSON(ctx, ActivityKey(userID), stats)
	}
	return stats, nil
}
