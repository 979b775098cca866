package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFeatures_Resume(t *testing.T) {
	f := ExtractFeatures(English(), strongResume)

	assert.Equal(t, 4, f.HeaderCount)
	assert.Equal(t, 12, f.BulletCount)
	assert.Equal(t, 8, f.ResultBulletCount)
	assert.Equal(t, 3, f.DateRangeCount)
	assert.GreaterOrEqual(t, f.SeniorityTermCount, 2)
	assert.Less(t, f.SpecialCharRatio, 0.05)
	for _, s := range RequiredSections {
		assert.True(t, f.HasSection(s), string(s))
	}
}

func TestLanguagePack_HeaderSection(t *testing.T) {
	lang := English()
	tests := []struct {
		line     string
		section  Section
		expected bool
	}{
		{"EXPERIENCE", SectionExperience, true},
		{"Professional Summary:", SectionSummary, true},
		{"  Technical Skills  ", SectionSkills, true},
		{"Licenses & Certifications", SectionCertifications, true},
		{"Experience building distributed systems at scale", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			section, ok := lang.HeaderSection(tt.line)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.section, section)
		})
	}
}

func TestLanguagePack_CTAsCountDistinctPatterns(t *testing.T) {
	lang := English()
	assert.Equal(t, 1, lang.CountCTAs("Would you be open to chat? Would you be available Friday?"))
	assert.Equal(t, 0, lang.CountCTAs("Thanks again."))
}

// Metric patterns overlap on purpose: a comma-grouped dollar figure reads as
// both a currency amount and a large number.
func TestLanguagePack_MetricPatternsOverlap(t *testing.T) {
	lang := English()
	tests := []struct {
		text     string
		expected int
	}{
		{"$1,000,000", 2},
		{"$500", 1},
		{"1,500", 1},
		{"cut costs 40%", 1},
		{"3x faster", 1},
		{"Raised $1,000,000 and cut churn 40%", 3},
		{"no numbers here", 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, lang.CountMetrics(tt.text))
		})
	}

	result := ScoreMessage(MessageInput{Text: "Last year I raised $1,000,000 in seed funding."})
	assert.Equal(t, 80, result.Components[MessageMetrics])
	assert.True(t, result.HasMetrics)
}

func TestNewLanguagePack_Custom(t *testing.T) {
	spec := PackSpec{
		Name:        "tiny",
		ActionVerbs: []string{"Shipped"},
		CTAPatterns: []string{`\bping me\b`},
	}
	pack, err := NewLanguagePack(spec)
	require.NoError(t, err)

	assert.Equal(t, "tiny", pack.Name())
	assert.True(t, pack.IsActionVerb("shipped"))
	assert.False(t, pack.IsActionVerb("led"))
	assert.Equal(t, 1, pack.CountCTAs("Ping me anytime"))
	assert.Equal(t, 0, pack.CountMetrics("40% growth"))

	_, ok := pack.HeaderSection("Experience")
	assert.False(t, ok)

	result := ScoreMessageWith(pack, MessageInput{Text: "Ping me anytime"})
	assert.Equal(t, 100, result.Components[MessageCTA])
}

func TestNewLanguagePack_InvalidPattern(t *testing.T) {
	_, err := NewLanguagePack(PackSpec{MetricPatterns: []string{`(unclosed`}})
	assert.Error(t, err)

	assert.Panics(t, func() { MustLanguagePack(PackSpec{BulletPattern: `[`}) })
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, containsTerm("Skilled in C++ and Go.", "c++"))
	assert.True(t, containsTerm("Node.js services", "node.js"))
	assert.False(t, containsTerm("golang", "go"))
	assert.True(t, containsTerm("ago, go", "go"))
	assert.False(t, containsTerm("anything", ""))
}
