package scoring

import (
	"fmt"
	"strings"
)

// MessageType is the closed set of outreach message kinds.
type MessageType string

const (
	MessageInitialOutreach MessageType = "initial_outreach"
	MessageFollowUp        MessageType = "follow_up"
	MessageThankYou        MessageType = "thank_you"
	MessageCheckIn         MessageType = "check_in"
)

type wordBand struct {
	min, max int
}

// messageTypes is the single source of truth for every message kind.
var messageTypes = map[MessageType]struct {
	band  wordBand
	label string
}{
	MessageInitialOutreach: {wordBand{100, 150}, "initial outreach"},
	MessageFollowUp:        {wordBand{50, 75}, "follow-up"},
	MessageThankYou:        {wordBand{100, 125}, "thank-you note"},
	MessageCheckIn:         {wordBand{50, 100}, "check-in"},
}

// MessageTypes lists every message kind.
func MessageTypes() []MessageType {
	return []MessageType{MessageInitialOutreach, MessageFollowUp, MessageThankYou, MessageCheckIn}
}

// ParseMessageType maps free-form input onto a MessageType, defaulting to
// initial outreach.
func ParseMessageType(s string) MessageType {
	t := MessageType(strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", "_"))))
	if _, ok := messageTypes[t]; ok {
		return t
	}
	return MessageInitialOutreach
}

// WordBand returns the optimal word range for the message kind.
func (t MessageType) WordBand() (min, max int) {
	info, ok := messageTypes[t]
	if !ok {
		info = messageTypes[MessageInitialOutreach]
	}
	return info.band.min, info.band.max
}

func (t MessageType) label() string {
	if info, ok := messageTypes[t]; ok {
		return info.label
	}
	return messageTypes[MessageInitialOutreach].label
}

// Message component names.
const (
	MessageWords           = "words"
	MessagePersonalization = "personalization"
	MessageMetrics         = "metrics"
	MessageCTA             = "cta"
	MessageTone            = "tone"
)

// MessageWeights is the outreach message weight table.
var MessageWeights = Weights{
	{MessageWords, 25},
	{MessagePersonalization, 25},
	{MessageMetrics, 25},
	{MessageCTA, 20},
	{MessageTone, 5},
}

// MessageInput is an outreach message draft and who it is addressed to.
type MessageInput struct {
	Text          string
	Type          MessageType
	RecruiterName string
	CompanyName   string
}

// MessageResult extends ScoreResult with message signals.
type MessageResult struct {
	ScoreResult
	WordCount               int      `json:"wordCount"`
	HasPersonalization      bool     `json:"hasPersonalization"`
	HasMetrics              bool     `json:"hasMetrics"`
	HasCTA                  bool     `json:"hasCta"`
	PersonalizationElements []string `json:"personalizationElements"`
}

// ScoreMessage scores a message with the English language pack.
func ScoreMessage(in MessageInput) MessageResult {
	return ScoreMessageWith(English(), in)
}

// ScoreMessageWith scores a message with a specific language pack.
func ScoreMessageWith(lang LanguagePack, in MessageInput) MessageResult {
	f := ExtractFeatures(lang, in.Text)
	msgType := in.Type
	if _, ok := messageTypes[msgType]; !ok {
		msgType = MessageInitialOutreach
	}

	var n notes
	components := make(map[string]int, len(MessageWeights))
	components[MessageWords] = messageWords(f.WordCount, msgType, &n)
	personalization, elements := messagePersonalization(in, f, &n)
	components[MessagePersonalization] = personalization
	components[MessageMetrics] = messageMetrics(f.MetricMatchCount, &n)
	components[MessageCTA] = messageCTA(f.CTAMatchCount, &n)
	components[MessageTone] = messageTone(lang.Tone(in.Text), &n)

	return MessageResult{
		ScoreResult:             MessageWeights.result(components, n),
		WordCount:               f.WordCount,
		HasPersonalization:      len(elements) > 0,
		HasMetrics:              f.MetricMatchCount > 0,
		HasCTA:                  f.CTAMatchCount > 0,
		PersonalizationElements: elements,
	}
}

func messageWords(count int, t MessageType, n *notes) int {
	min, max := t.WordBand()
	switch {
	case count < min:
		n.fix(fmt.Sprintf("Expand to %d-%d words for a %s (currently %d)", min, max, t.label(), count))
		return clamp(100-3*(min-count), 0, 100)
	case count > max:
		n.fix(fmt.Sprintf("Trim to %d-%d words for a %s (currently %d)", min, max, t.label(), count))
		return clamp(100-2*(count-max), 0, 100)
	default:
		n.good(fmt.Sprintf("Length is right for a %s", t.label()))
		return 100
	}
}

func messagePersonalization(in MessageInput, f TextFeatureSet, n *notes) (int, []string) {
	score := 0
	elements := []string{}
	add := func(tag PersonalizationTag, points int) {
		score += points
		elements = append(elements, string(tag))
	}

	switch {
	case mentionsName(in.Text, in.RecruiterName):
		add(TagRecruiterName, 30)
	case f.HasTag(TagGreeting):
		add(TagGreeting, 20)
	}
	switch {
	case strings.TrimSpace(in.CompanyName) != "" && containsTerm(in.Text, in.CompanyName):
		add(TagCompanyName, 30)
	case f.HasTag(TagCompanyMention):
		add(TagCompanyMention, 20)
	}
	if f.HasTag(TagRecentWork) {
		add(TagRecentWork, 20)
	}
	if f.HasTag(TagSpecificDetail) {
		add(TagSpecificDetail, 20)
	}
	if f.HasTag(TagMutualConnection) {
		add(TagMutualConnection, 15)
	}

	switch {
	case score == 0:
		n.fix("Personalize the message with the recruiter's name and their company")
	case score >= 60:
		n.good("Message is well personalized")
	default:
		n.fix("Reference the recruiter's recent work or a specific detail about their practice")
	}
	return clamp(score, 0, 100), elements
}

// mentionsName matches the full name or the first name on its own.
func mentionsName(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if containsTerm(text, name) {
		return true
	}
	first := strings.Fields(name)[0]
	return first != name && containsTerm(text, first)
}

func messageMetrics(hits int, n *notes) int {
	switch {
	case hits >= 3:
		n.good("Concrete numbers make your value clear")
		return 100
	case hits == 2:
		return 80
	case hits == 1:
		n.fix("Add another quantified achievement")
		return 50
	default:
		n.fix("Include a number that shows your impact, such as a percentage or revenue figure")
		return 20
	}
}

func messageCTA(ctas int, n *notes) int {
	switch {
	case ctas == 1:
		n.good("Single clear call to action")
		return 100
	case ctas == 0:
		n.fix("End with one clear ask, such as a short call")
		return 20
	default:
		n.fix("Multiple asks reduce conversion; keep one call to action")
		return 60
	}
}

func messageTone(t ToneSignals, n *notes) int {
	score := 70
	switch {
	case t.Professional >= 3:
		score += 15
	case t.Professional >= 1:
		score += 10
	}
	if t.Casual {
		score -= 20
		n.fix("Drop casual slang and exclamation marks")
	}
	if t.Formal {
		score -= 10
		n.fix("Relax overly formal phrasing")
	}
	if t.Desperate {
		score -= 30
		n.fix("Avoid language that sounds desperate; focus on the value you bring")
	}
	if score >= 80 {
		n.good("Tone is professional")
	}
	return clamp(score, 0, 100)
}
