// Package scoring holds the deterministic evaluators behind resume, outreach,
// recruiter and readiness scores. Every scorer is a free function over value
// types: no I/O, no shared state, safe to call from any goroutine.
package scoring

import (
	"math"
	"strings"
)

const (
	positiveMarker = "✓ "
	maxNotes       = 5
)

// ScoreResult is the common shape returned by every composite scorer.
// Total is always round(Σ component×weight / 100).
type ScoreResult struct {
	Total       int            `json:"totalScore"`
	Components  map[string]int `json:"components"`
	Feedback    []string       `json:"feedback"`
	Suggestions []string       `json:"suggestions"`
}

// Weight ties a component name to its share of the composite.
type Weight struct {
	Name  string
	Value int
}

// Weights is an ordered weight table. Order drives feedback ordering.
type Weights []Weight

// Sum returns the total of all weight values; every table sums to 100.
func (w Weights) Sum() int {
	total := 0
	for _, wt := range w {
		total += wt.Value
	}
	return total
}

// Names returns component names in table order.
func (w Weights) Names() []string {
	names := make([]string, len(w))
	for i, wt := range w {
		names[i] = wt.Name
	}
	return names
}

// Composite applies the weight table to a component map.
func (w Weights) Composite(components map[string]int) int {
	var sum float64
	for _, wt := range w {
		sum += float64(components[wt.Name]) * float64(wt.Value)
	}
	return int(math.Round(sum / 100))
}

func (w Weights) result(components map[string]int, n notes) ScoreResult {
	for name, v := range components {
		components[name] = clamp(v, 0, 100)
	}
	feedback, suggestions := n.route()
	return ScoreResult{
		Total:       w.Composite(components),
		Components:  components,
		Feedback:    feedback,
		Suggestions: suggestions,
	}
}

// notes collects feedback strings in component order.
type notes []string

func (n *notes) good(msg string) { *n = append(*n, positiveMarker+msg) }
func (n *notes) fix(msg string)  { *n = append(*n, msg) }

// route splits notes on the positive marker, capping each list.
func (n notes) route() (feedback, suggestions []string) {
	feedback = []string{}
	suggestions = []string{}
	for _, msg := range n {
		if strings.HasPrefix(msg, positiveMarker) {
			if len(feedback) < maxNotes {
				feedback = append(feedback, msg)
			}
			continue
		}
		if len(suggestions) < maxNotes {
			suggestions = append(suggestions, msg)
		}
	}
	return feedback, suggestions
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

func capList(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
