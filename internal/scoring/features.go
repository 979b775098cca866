package scoring

import (
	"sort"
	"strings"
	"unicode"
)

// TextFeatureSet is computed fresh for every scoring call.
type TextFeatureSet struct {
	WordCount               int
	ActionVerbCount         int
	MetricMatchCount        int
	CTAMatchCount           int
	PersonalizationElements []PersonalizationTag
	SectionPresence         []Section
	HeaderCount             int
	BulletCount             int
	ResultBulletCount       int
	DateRangeCount          int
	SeniorityTermCount      int
	SpecialCharRatio        float64
}

// HasSection reports whether a section was detected.
func (f TextFeatureSet) HasSection(s Section) bool {
	for _, present := range f.SectionPresence {
		if present == s {
			return true
		}
	}
	return false
}

// HasTag reports whether a personalization tag was detected.
func (f TextFeatureSet) HasTag(tag PersonalizationTag) bool {
	for _, t := range f.PersonalizationElements {
		if t == tag {
			return true
		}
	}
	return false
}

// ExtractFeatures scans text with the given language pack.
func ExtractFeatures(lang LanguagePack, text string) TextFeatureSet {
	words := strings.Fields(text)
	f := TextFeatureSet{
		WordCount:               len(words),
		MetricMatchCount:        lang.CountMetrics(text),
		CTAMatchCount:           lang.CountCTAs(text),
		PersonalizationElements: lang.PersonalizationMarkers(text),
		DateRangeCount:          lang.CountDateRanges(text),
		SeniorityTermCount:      lang.CountSeniorityTerms(text),
		SpecialCharRatio:        specialCharRatio(text),
	}

	for _, w := range words {
		if lang.IsActionVerb(strings.TrimFunc(w, isWordEdge)) {
			f.ActionVerbCount++
		}
	}

	sections := make(map[Section]bool)
	for _, line := range strings.Split(text, "\n") {
		if section, ok := lang.HeaderSection(line); ok {
			if !sections[section] {
				f.HeaderCount++
			}
			sections[section] = true
			continue
		}
		if lang.IsBullet(line) {
			f.BulletCount++
			if lang.HasResultLanguage(line) {
				f.ResultBulletCount++
			}
		}
	}
	if lang.HasContactInfo(text) {
		sections[SectionContact] = true
	}
	f.SectionPresence = sortedSectionSet(sections)
	sort.Slice(f.PersonalizationElements, func(i, j int) bool {
		return f.PersonalizationElements[i] < f.PersonalizationElements[j]
	})

	return f
}

func isWordEdge(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// specialCharRatio is the share of runes an ATS parser is likely to mangle:
// anything outside letters, digits, whitespace, ordinary punctuation and
// common bullet glyphs.
func specialCharRatio(text string) float64 {
	total, special := 0, 0
	for _, r := range text {
		total++
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
		case strings.ContainsRune(`.,;:'"()-/&%$@+#!?*•–—’“”`, r):
		default:
			special++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(special) / float64(total)
}

func sortedSectionSet(m map[Section]bool) []Section {
	out := make([]Section, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// containsTerm does a case-insensitive whole-term search. Terms may contain
// punctuation (c++, node.js) so word boundaries are checked by hand.
func containsTerm(haystack, term string) bool {
	haystack = strings.ToLower(haystack)
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for offset := 0; offset < len(haystack); {
		idx := strings.Index(haystack[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(s[i-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
