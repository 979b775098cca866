package scoring

import (
	"fmt"
	"math"
	"strings"
)

// FileType is the original upload format of a resume.
type FileType string

const (
	FileTypeDOCX  FileType = "docx"
	FileTypePDF   FileType = "pdf"
	FileTypeTXT   FileType = "txt"
	FileTypeOther FileType = "other"
)

// ParseFileType normalizes an extension or MIME-ish tag. An empty tag is
// treated as PDF, the format most uploads arrive in.
func ParseFileType(s string) FileType {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, ".")
	switch s {
	case "":
		return FileTypePDF
	case "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FileTypeDOCX
	case "pdf", "application/pdf":
		return FileTypePDF
	case "txt", "text", "text/plain":
		return FileTypeTXT
	default:
		return FileTypeOther
	}
}

func (t FileType) baseCompatibility() int {
	switch t {
	case FileTypeDOCX:
		return 100
	case FileTypePDF:
		return 90
	case FileTypeTXT:
		return 85
	default:
		return 60
	}
}

// ATS component names.
const (
	ATSCompatibility = "compatibility"
	ATSKeywords      = "keywords"
	ATSAchievements  = "achievements"
	ATSFormatting    = "formatting"
	ATSProgression   = "progression"
	ATSCompleteness  = "completeness"
	ATSFit           = "fit"
)

// ATSWeights is the resume weight table, in recommendation order.
var ATSWeights = Weights{
	{ATSCompatibility, 15},
	{ATSKeywords, 15},
	{ATSAchievements, 25},
	{ATSFormatting, 15},
	{ATSProgression, 15},
	{ATSCompleteness, 10},
	{ATSFit, 5},
}

const maxRecommendations = 5

// ATSInput is already-extracted resume text plus optional targeting data.
type ATSInput struct {
	Text           string
	ParsedSections map[string]string
	JobKeywords    []string
	TargetRole     string
	FileType       FileType
}

// ATSResult extends ScoreResult with resume-specific findings.
type ATSResult struct {
	ScoreResult
	MissingKeywords []string `json:"missingKeywords"`
	WeakSections    []string `json:"weakSections"`
	Recommendations []string `json:"recommendations"`
}

// ScoreATS scores a resume with the English language pack.
func ScoreATS(in ATSInput) ATSResult {
	return ScoreATSWith(English(), in)
}

// ScoreATSWith scores a resume with a specific language pack.
func ScoreATSWith(lang LanguagePack, in ATSInput) ATSResult {
	if strings.TrimSpace(in.Text) == "" {
		return emptyATSResult()
	}

	f := ExtractFeatures(lang, in.Text)
	var n notes
	components := make(map[string]int, len(ATSWeights))

	components[ATSCompatibility] = atsCompatibility(f, in.FileType, &n)
	keywords, missing := atsKeywords(in.Text, in.JobKeywords, &n)
	components[ATSKeywords] = keywords
	components[ATSAchievements] = atsAchievements(f, &n)
	components[ATSFormatting] = atsFormatting(f, &n)
	components[ATSProgression] = atsProgression(f, &n)
	completeness, weak := atsCompleteness(f, in.ParsedSections, &n)
	components[ATSCompleteness] = completeness
	components[ATSFit] = atsFit(in.Text, in.TargetRole, &n)

	return ATSResult{
		ScoreResult:     ATSWeights.result(components, n),
		MissingKeywords: missing,
		WeakSections:    weak,
		Recommendations: atsRecommendations(components, missing, weak),
	}
}

func emptyATSResult() ATSResult {
	components := make(map[string]int, len(ATSWeights))
	for _, name := range ATSWeights.Names() {
		components[name] = 0
	}
	var n notes
	n.fix("Resume text is empty; upload a file with selectable text")
	return ATSResult{
		ScoreResult:     ATSWeights.result(components, n),
		MissingKeywords: []string{},
		WeakSections:    []string{"all"},
		Recommendations: []string{"Upload a resume with extractable text so it can be scored"},
	}
}

func atsCompatibility(f TextFeatureSet, fileType FileType, n *notes) int {
	if fileType == "" {
		fileType = FileTypePDF
	}
	score := fileType.baseCompatibility()
	if score < 85 {
		n.fix("Save your resume as .docx or PDF for the most reliable ATS parsing")
	}
	if f.SpecialCharRatio > 0.05 {
		score -= 15
		n.fix("Remove decorative symbols and special characters that ATS parsers misread")
	}
	if f.WordCount < 200 {
		score -= 20
		n.fix(fmt.Sprintf("Resume has only %d words; expand it to at least 200", f.WordCount))
	}
	if score >= 85 {
		n.good("Format is ATS friendly")
	}
	return clamp(score, 0, 100)
}

func atsKeywords(text string, keywords []string, n *notes) (int, []string) {
	cleaned := dedupeTerms(keywords)
	if len(cleaned) == 0 {
		n.fix("Add a job description to check keyword alignment")
		return 70, []string{}
	}

	missing := []string{}
	for _, kw := range cleaned {
		if !containsTerm(text, kw) {
			missing = append(missing, kw)
		}
	}
	matched := len(cleaned) - len(missing)
	score := int(math.Round(float64(matched) / float64(len(cleaned)) * 100))

	switch {
	case len(missing) == 0:
		n.good("Resume covers every job keyword")
	case len(missing) > 3:
		n.fix(fmt.Sprintf("Add missing keywords: %s (and %d more)",
			strings.Join(missing[:3], ", "), len(missing)-3))
	default:
		n.fix("Add missing keywords: " + strings.Join(missing, ", "))
	}
	return score, missing
}

func atsAchievements(f TextFeatureSet, n *notes) int {
	score := 50

	if f.ActionVerbCount >= 10 {
		score += 20
		n.good("Strong use of action verbs")
	} else if f.ActionVerbCount >= 5 {
		score += 10
		n.fix("Start more bullets with action verbs such as led, built or delivered")
	} else {
		n.fix("Start bullets with action verbs such as led, built or delivered")
	}

	if f.MetricMatchCount >= 8 {
		score += 30
		n.good("Achievements are well quantified")
	} else if f.MetricMatchCount >= 4 {
		score += 15
		n.fix("Quantify more achievements with numbers, percentages or dollar amounts")
	} else {
		n.fix("Quantify achievements with numbers, percentages or dollar amounts")
	}

	if f.BulletCount > 0 && f.ResultBulletCount*2 >= f.BulletCount {
		score += 10
	} else if f.BulletCount > 0 {
		n.fix("Describe the outcome of your work in more bullets")
	}

	return clamp(score, 0, 100)
}

func atsFormatting(f TextFeatureSet, n *notes) int {
	score := 70

	switch {
	case f.WordCount >= 400 && f.WordCount <= 800:
		score += 15
	case f.WordCount < 300:
		score -= 20
		n.fix("Resume is short; aim for 400 to 800 words")
	case f.WordCount > 1000:
		score -= 10
		n.fix("Resume is long; trim it toward 800 words")
	}

	if f.HeaderCount >= 4 {
		score += 15
		n.good("Clear section headers")
	} else if f.HeaderCount < 2 {
		score -= 20
		n.fix("Add standard section headers such as Experience, Education and Skills")
	}

	if f.BulletCount >= 10 {
		score += 10
	} else {
		n.fix("Use bullet points to break up experience descriptions")
	}

	return clamp(score, 0, 100)
}

func atsProgression(f TextFeatureSet, n *notes) int {
	score := 70

	if f.DateRangeCount >= 3 {
		score += 15
	} else if f.DateRangeCount == 0 {
		score -= 20
		n.fix("Add start and end dates to each role")
	}

	if f.SeniorityTermCount >= 2 {
		score += 15
		n.good("Career progression is visible")
	} else {
		n.fix("Highlight promotions and growing responsibility")
	}

	return clamp(score, 0, 100)
}

func atsCompleteness(f TextFeatureSet, parsed map[string]string, n *notes) (int, []string) {
	parsedPresent := make(map[Section]bool, len(parsed))
	for key, value := range parsed {
		if strings.TrimSpace(value) != "" {
			parsedPresent[Section(strings.ToLower(strings.TrimSpace(key)))] = true
		}
	}

	weak := []string{}
	present := 0
	for _, section := range RequiredSections {
		if f.HasSection(section) || parsedPresent[section] {
			present++
			continue
		}
		weak = append(weak, string(section))
	}

	if len(weak) == 0 {
		n.good("All key sections are present")
	} else {
		n.fix("Add missing sections: " + strings.Join(weak, ", "))
	}
	return present * 100 / len(RequiredSections), weak
}

func atsFit(text, targetRole string, n *notes) int {
	role := strings.TrimSpace(targetRole)
	if role == "" {
		return 70
	}
	if containsTerm(text, role) {
		n.good("Resume mentions the target role")
		return 100
	}
	for _, term := range significantTokens(role) {
		if containsTerm(text, term) {
			n.fix(fmt.Sprintf("Use the exact title %q somewhere in your resume", role))
			return 80
		}
	}
	n.fix(fmt.Sprintf("Tailor your resume toward %q", role))
	return 50
}

var atsActions = map[string]string{
	ATSCompatibility: "Use a simple single-column .docx or PDF without tables or graphics",
	ATSAchievements:  "Rewrite bullets as action verb + task + measurable result",
	ATSFormatting:    "Reorganize the resume around standard headers and bullet points",
	ATSProgression:   "Show dates and titles for each role to make growth clear",
	ATSFit:           "Tailor your summary and titles to the role you are targeting",
}

// atsRecommendations emits one action per component scoring under 70, in
// weight-table order.
func atsRecommendations(components map[string]int, missing, weak []string) []string {
	recs := []string{}
	for _, name := range ATSWeights.Names() {
		if components[name] >= 70 {
			continue
		}
		switch name {
		case ATSKeywords:
			if len(missing) > 0 {
				top := missing
				if len(top) > 3 {
					top = top[:3]
				}
				recs = append(recs, "Work these job keywords into your experience: "+strings.Join(top, ", "))
			}
		case ATSCompleteness:
			recs = append(recs, "Add the missing sections: "+strings.Join(weak, ", "))
		default:
			recs = append(recs, atsActions[name])
		}
	}
	return capList(recs, maxRecommendations)
}

func dedupeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
