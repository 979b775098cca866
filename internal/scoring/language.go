package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Section is a resume section recognized by header or content.
type Section string

const (
	SectionContact        Section = "contact"
	SectionSummary        Section = "summary"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionAwards         Section = "awards"
	SectionVolunteer      Section = "volunteer"
	SectionPublications   Section = "publications"
)

// RequiredSections are the sections every resume is expected to carry, in
// the order they are reported as weak.
var RequiredSections = []Section{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
}

// PersonalizationTag names a personalization signal found in a message.
type PersonalizationTag string

const (
	TagRecruiterName    PersonalizationTag = "recruiter_name"
	TagGreeting         PersonalizationTag = "greeting"
	TagCompanyName      PersonalizationTag = "company_name"
	TagCompanyMention   PersonalizationTag = "company_mention"
	TagRecentWork       PersonalizationTag = "recent_work"
	TagSpecificDetail   PersonalizationTag = "specific_detail"
	TagMutualConnection PersonalizationTag = "mutual_connection"
)

// ToneSignals counts tone markers in a message.
type ToneSignals struct {
	Professional int
	Casual       bool
	Formal       bool
	Desperate    bool
}

// LanguagePack isolates every language-specific heuristic the scorers use.
// Implementations must be safe for concurrent use.
type LanguagePack interface {
	Name() string
	IsActionVerb(word string) bool
	CountMetrics(text string) int
	CountCTAs(text string) int
	HasResultLanguage(line string) bool
	CountSeniorityTerms(text string) int
	CountDateRanges(text string) int
	IsBullet(line string) bool
	HeaderSection(line string) (Section, bool)
	HasContactInfo(text string) bool
	PersonalizationMarkers(text string) []PersonalizationTag
	Tone(text string) ToneSignals
}

// PackSpec is the declarative form of a regex language pack. Patterns are
// compiled case-insensitively, except personalization patterns which rely on
// capitalization to spot names.
type PackSpec struct {
	Name                string                          `yaml:"name" json:"name"`
	ActionVerbs         []string                        `yaml:"action_verbs" json:"actionVerbs"`
	MetricPatterns      []string                        `yaml:"metric_patterns" json:"metricPatterns"`
	CTAPatterns         []string                        `yaml:"cta_patterns" json:"ctaPatterns"`
	ResultPatterns      []string                        `yaml:"result_patterns" json:"resultPatterns"`
	SeniorityTerms      []string                        `yaml:"seniority_terms" json:"seniorityTerms"`
	DateRangePattern    string                          `yaml:"date_range_pattern" json:"dateRangePattern"`
	BulletPattern       string                          `yaml:"bullet_pattern" json:"bulletPattern"`
	ContactPatterns     []string                        `yaml:"contact_patterns" json:"contactPatterns"`
	SectionHeaders      map[Section][]string            `yaml:"section_headers" json:"sectionHeaders"`
	Personalization     map[PersonalizationTag][]string `yaml:"personalization" json:"personalization"`
	ProfessionalPhrases []string                        `yaml:"professional_phrases" json:"professionalPhrases"`
	CasualMarkers       []string                        `yaml:"casual_markers" json:"casualMarkers"`
	FormalMarkers       []string                        `yaml:"formal_markers" json:"formalMarkers"`
	DesperationMarkers  []string                        `yaml:"desperation_markers" json:"desperationMarkers"`
}

type regexPack struct {
	name            string
	verbs           map[string]struct{}
	metrics         []*regexp.Regexp
	ctas            []*regexp.Regexp
	results         *regexp.Regexp
	seniority       *regexp.Regexp
	dateRange       *regexp.Regexp
	bullet          *regexp.Regexp
	contact         *regexp.Regexp
	headers         []headerRule
	personalization []tagRule
	professional    []*regexp.Regexp
	casual          *regexp.Regexp
	formal          *regexp.Regexp
	desperate       *regexp.Regexp
}

type headerRule struct {
	section Section
	pattern *regexp.Regexp
}

type tagRule struct {
	tag     PersonalizationTag
	pattern *regexp.Regexp
}

// NewLanguagePack compiles a PackSpec.
func NewLanguagePack(spec PackSpec) (LanguagePack, error) {
	p := &regexPack{name: spec.Name, verbs: make(map[string]struct{}, len(spec.ActionVerbs))}
	for _, v := range spec.ActionVerbs {
		p.verbs[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}

	var err error
	if p.metrics, err = compileEach(spec.MetricPatterns); err != nil {
		return nil, fmt.Errorf("metric patterns: %w", err)
	}
	if p.ctas, err = compileEach(spec.CTAPatterns); err != nil {
		return nil, fmt.Errorf("cta patterns: %w", err)
	}
	if p.professional, err = compileEach(spec.ProfessionalPhrases); err != nil {
		return nil, fmt.Errorf("professional phrases: %w", err)
	}

	alternations := []struct {
		dst   **regexp.Regexp
		terms []string
		name  string
	}{
		{&p.results, spec.ResultPatterns, "result patterns"},
		{&p.seniority, wordTerms(spec.SeniorityTerms), "seniority terms"},
		{&p.contact, spec.ContactPatterns, "contact patterns"},
		{&p.casual, spec.CasualMarkers, "casual markers"},
		{&p.formal, spec.FormalMarkers, "formal markers"},
		{&p.desperate, spec.DesperationMarkers, "desperation markers"},
	}
	for _, a := range alternations {
		if *a.dst, err = compileAlternation(a.terms); err != nil {
			return nil, fmt.Errorf("%s: %w", a.name, err)
		}
	}

	if p.dateRange, err = compileOptional(spec.DateRangePattern); err != nil {
		return nil, fmt.Errorf("date range pattern: %w", err)
	}
	if p.bullet, err = compileOptional(spec.BulletPattern); err != nil {
		return nil, fmt.Errorf("bullet pattern: %w", err)
	}

	for _, section := range sortedSections(spec.SectionHeaders) {
		re, err := compileAlternation(spec.SectionHeaders[section])
		if err != nil {
			return nil, fmt.Errorf("headers for %s: %w", section, err)
		}
		if re == nil {
			continue
		}
		anchored := regexp.MustCompile(`^(?:` + re.String() + `)$`)
		p.headers = append(p.headers, headerRule{section: section, pattern: anchored})
	}

	for _, tag := range sortedTags(spec.Personalization) {
		src := spec.Personalization[tag]
		re, err := compileRaw(src)
		if err != nil {
			return nil, fmt.Errorf("personalization %s: %w", tag, err)
		}
		if re != nil {
			p.personalization = append(p.personalization, tagRule{tag: tag, pattern: re})
		}
	}

	return p, nil
}

// MustLanguagePack is NewLanguagePack for specs known to be valid.
func MustLanguagePack(spec PackSpec) LanguagePack {
	p, err := NewLanguagePack(spec)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *regexPack) Name() string { return p.name }

func (p *regexPack) IsActionVerb(word string) bool {
	_, ok := p.verbs[strings.ToLower(word)]
	return ok
}

func (p *regexPack) CountMetrics(text string) int {
	count := 0
	for _, re := range p.metrics {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}

// CountCTAs counts distinct patterns that match, not occurrences.
func (p *regexPack) CountCTAs(text string) int {
	count := 0
	for _, re := range p.ctas {
		if re.MatchString(text) {
			count++
		}
	}
	return count
}

func (p *regexPack) HasResultLanguage(line string) bool {
	return p.results != nil && p.results.MatchString(line)
}

func (p *regexPack) CountSeniorityTerms(text string) int {
	if p.seniority == nil {
		return 0
	}
	return len(p.seniority.FindAllStringIndex(text, -1))
}

func (p *regexPack) CountDateRanges(text string) int {
	if p.dateRange == nil {
		return 0
	}
	return len(p.dateRange.FindAllStringIndex(text, -1))
}

func (p *regexPack) IsBullet(line string) bool {
	return p.bullet != nil && p.bullet.MatchString(line)
}

// HeaderSection reports which section a short standalone line introduces.
func (p *regexPack) HeaderSection(line string) (Section, bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimRight(line, ":")
	line = strings.TrimSpace(line)
	if line == "" || len(strings.Fields(line)) > 4 {
		return "", false
	}
	for _, h := range p.headers {
		if h.pattern.MatchString(line) {
			return h.section, true
		}
	}
	return "", false
}

func (p *regexPack) HasContactInfo(text string) bool {
	return p.contact != nil && p.contact.MatchString(text)
}

func (p *regexPack) PersonalizationMarkers(text string) []PersonalizationTag {
	var tags []PersonalizationTag
	for _, rule := range p.personalization {
		if rule.pattern.MatchString(text) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

func (p *regexPack) Tone(text string) ToneSignals {
	var s ToneSignals
	for _, re := range p.professional {
		s.Professional += len(re.FindAllStringIndex(text, -1))
	}
	s.Casual = p.casual != nil && p.casual.MatchString(text)
	s.Formal = p.formal != nil && p.formal.MatchString(text)
	s.Desperate = p.desperate != nil && p.desperate.MatchString(text)
	return s
}

func compileEach(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, src := range patterns {
		re, err := regexp.Compile(`(?i)` + src)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", src, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func compileAlternation(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(patterns, `|`) + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile alternation: %w", err)
	}
	return re, nil
}

func compileRaw(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	re, err := regexp.Compile(`(?:` + strings.Join(patterns, `|`) + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile alternation: %w", err)
	}
	return re, nil
}

func compileOptional(src string) (*regexp.Regexp, error) {
	if src == "" {
		return nil, nil
	}
	return regexp.Compile(`(?im)` + src)
}

// wordTerms turns plain terms into whole-word patterns.
func wordTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, `\b`+t+`\b`)
	}
	return out
}

func sortedSections(m map[Section][]string) []Section {
	keys := make([]Section, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedTags(m map[PersonalizationTag][]string) []PersonalizationTag {
	keys := make([]PersonalizationTag, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
