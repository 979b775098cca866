package scoring

import (
	"fmt"
	"time"
)

// Engagement component names.
const (
	EngagementResponseRate = "response_rate"
	EngagementOpenRate     = "open_rate"
	EngagementRecency      = "recency"
)

// EngagementWeights is the recruiter relationship health weight table.
var EngagementWeights = Weights{
	{EngagementResponseRate, 40},
	{EngagementOpenRate, 30},
	{EngagementRecency, 30},
}

// EngagementMetrics are the interaction counters kept per recruiter.
type EngagementMetrics struct {
	MessagesSent      int        `json:"messagesSent"`
	MessagesOpened    int        `json:"messagesOpened"`
	ResponsesReceived int        `json:"responsesReceived"`
	LastContact       *time.Time `json:"lastContact,omitempty"`
}

type rateTier struct {
	percent int
	score   int
}

var responseTiers = []rateTier{{40, 100}, {25, 85}, {15, 70}, {8, 55}, {1, 40}}
var openTiers = []rateTier{{60, 100}, {44, 85}, {30, 70}, {20, 55}}

// ScoreEngagement scores a recruiter relationship. now is passed in so the
// result depends only on arguments.
func ScoreEngagement(m EngagementMetrics, now time.Time) ScoreResult {
	sent := max(0, m.MessagesSent)
	opened := max(0, m.MessagesOpened)
	responded := max(0, m.ResponsesReceived)

	var n notes
	components := map[string]int{
		EngagementResponseRate: rateScore(responded, sent, responseTiers, 25),
		EngagementOpenRate:     rateScore(opened, sent, openTiers, 40),
		EngagementRecency:      recencyScore(DaysSince(m.LastContact, now)),
	}

	switch {
	case sent == 0:
		n.fix("Send a first message to start building this relationship")
	case components[EngagementResponseRate] >= 85:
		n.good("Recruiter responds well to your outreach")
	case responded == 0:
		n.fix(fmt.Sprintf("No responses after %d messages; try a different angle or channel", sent))
	}
	if sent > 0 && components[EngagementOpenRate] <= 55 {
		n.fix("Low open rate; test a more specific subject line")
	}
	switch r := components[EngagementRecency]; {
	case r == 0:
		n.fix("You have not contacted this recruiter yet")
	case r >= 75:
		n.good("Contact is recent")
	default:
		n.fix("It has been a while; send a check-in")
	}

	return EngagementWeights.result(components, n)
}

// rateScore tiers part/whole with integer math so boundaries are exact.
// Zero sent is neutral.
func rateScore(part, whole int, tiers []rateTier, floor int) int {
	if whole == 0 {
		return 50
	}
	for _, t := range tiers {
		if part*100 >= t.percent*whole {
			return t.score
		}
	}
	return floor
}

// DaysSince returns whole days between last and now, -1 when last is nil.
func DaysSince(last *time.Time, now time.Time) int {
	if last == nil || last.IsZero() {
		return -1
	}
	d := now.Sub(*last)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

func recencyScore(days int) int {
	switch {
	case days < 0:
		return 0
	case days <= 7:
		return 100
	case days <= 14:
		return 75
	case days <= 30:
		return 50
	case days <= 60:
		return 25
	default:
		return 10
	}
}
