package scoring

import (
	"math"
	"sort"
	"strings"
)

// CareerStage drives the response-rate benchmark.
type CareerStage string

const (
	CareerEntry     CareerStage = "entry"
	CareerEarly     CareerStage = "early"
	CareerMid       CareerStage = "mid"
	CareerSenior    CareerStage = "senior"
	CareerExecutive CareerStage = "executive"
)

var responseBenchmarks = map[CareerStage]float64{
	CareerEntry:     0.10,
	CareerEarly:     0.18,
	CareerMid:       0.25,
	CareerSenior:    0.20,
	CareerExecutive: 0.15,
}

// ParseCareerStage maps free-form input onto a CareerStage, defaulting to mid.
func ParseCareerStage(s string) CareerStage {
	stage := CareerStage(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := responseBenchmarks[stage]; ok {
		return stage
	}
	return CareerMid
}

// Benchmark is the expected response rate for the stage.
func (c CareerStage) Benchmark() float64 {
	if b, ok := responseBenchmarks[c]; ok {
		return b
	}
	return responseBenchmarks[CareerMid]
}

// Readiness component names.
const (
	ReadinessProfile  = "profile"
	ReadinessResume   = "resume"
	ReadinessNetwork  = "network"
	ReadinessActivity = "activity"
	ReadinessResponse = "response"
)

// ReadinessWeights is the career readiness weight table.
var ReadinessWeights = Weights{
	{ReadinessProfile, 20},
	{ReadinessResume, 25},
	{ReadinessNetwork, 20},
	{ReadinessActivity, 15},
	{ReadinessResponse, 20},
}

const (
	optimalRecruiterCount = 10
	weeklyMessageTarget   = 5
	maxNextActions        = 4
)

// ReadinessInputs are the aggregates the readiness score is built from.
type ReadinessInputs struct {
	ProfileCompleteness float64     `json:"profileCompleteness"`
	ResumeATSScore      *int        `json:"resumeAtsScore,omitempty"`
	HasResume           bool        `json:"hasResume"`
	ActiveRecruiters    int         `json:"activeRecruiters"`
	MessagesThisWeek    int         `json:"messagesThisWeek"`
	ResponseRate        float64     `json:"responseRate"`
	CareerStage         CareerStage `json:"careerStage"`
}

// ReadinessResult extends ScoreResult with prioritized guidance.
type ReadinessResult struct {
	ScoreResult
	Level           string   `json:"level"`
	Recommendations []string `json:"recommendations"`
	NextActions     []string `json:"nextActions"`
}

// ScoreReadiness scores how prepared a job seeker is.
func ScoreReadiness(in ReadinessInputs) ReadinessResult {
	components := map[string]int{
		ReadinessProfile:  int(math.Round(clampFloat(in.ProfileCompleteness, 0, 1) * 100)),
		ReadinessResume:   resumeReadiness(in),
		ReadinessNetwork:  networkReadiness(in.ActiveRecruiters),
		ReadinessActivity: min(100, max(0, in.MessagesThisWeek)*100/weeklyMessageTarget),
		ReadinessResponse: responseReadiness(in.ResponseRate, in.CareerStage),
	}

	var n notes
	for _, name := range ReadinessWeights.Names() {
		if components[name] >= 80 {
			n.good(readinessStrengths[name])
		}
	}

	guidance := readinessGuidance(in, components)
	recs := make([]string, 0, len(guidance))
	actions := make([]string, 0, len(guidance))
	for _, g := range guidance {
		recs = append(recs, g.recommendation)
		actions = append(actions, g.action)
		n.fix(g.recommendation)
	}

	result := ReadinessWeights.result(components, n)
	return ReadinessResult{
		ScoreResult:     result,
		Level:           readinessLevel(result.Total),
		Recommendations: capList(recs, maxRecommendations),
		NextActions:     capList(actions, maxNextActions),
	}
}

func resumeReadiness(in ReadinessInputs) int {
	if !in.HasResume {
		return 0
	}
	if in.ResumeATSScore == nil {
		return 40
	}
	return clamp(*in.ResumeATSScore, 0, 100)
}

func networkReadiness(active int) int {
	switch {
	case active <= 0:
		return 0
	case active >= optimalRecruiterCount:
		return 100
	case active >= 3:
		return int(math.Round(50 + float64(active-3)*50/float64(optimalRecruiterCount-3)))
	default:
		return int(math.Round(float64(active) * 50 / 3))
	}
}

// responseReadiness maps rate/benchmark linearly so 150% of benchmark is 100.
func responseReadiness(rate float64, stage CareerStage) int {
	if rate <= 0 {
		return 20
	}
	ratio := math.Min(rate/stage.Benchmark(), 1.5)
	return clamp(int(math.Round(ratio/1.5*100)), 0, 100)
}

func readinessLevel(total int) string {
	switch {
	case total >= 70:
		return "ready"
	case total >= 40:
		return "developing"
	default:
		return "getting_started"
	}
}

var readinessStrengths = map[string]string{
	ReadinessProfile:  "Profile is complete",
	ReadinessResume:   "Resume is strong",
	ReadinessNetwork:  "Healthy recruiter network",
	ReadinessActivity: "Consistent weekly outreach",
	ReadinessResponse: "Response rate is above benchmark",
}

type guidanceItem struct {
	component      string
	score          int
	high           bool
	recommendation string
	action         string
}

// readinessGuidance returns high-priority items first, then the weakest
// components in ascending score order.
func readinessGuidance(in ReadinessInputs, components map[string]int) []guidanceItem {
	var items []guidanceItem
	for _, name := range ReadinessWeights.Names() {
		score := components[name]
		item := guidanceItem{component: name, score: score}
		switch name {
		case ReadinessProfile:
			if score >= 70 {
				continue
			}
			item.high = in.ProfileCompleteness < 0.5
			item.recommendation = "Complete your profile so recruiters can match you"
			item.action = "Fill in target roles, industries and location"
		case ReadinessResume:
			switch {
			case !in.HasResume:
				item.high = true
				item.recommendation = "Upload a resume to unlock recruiter matching"
				item.action = "Upload your resume"
			case in.ResumeATSScore == nil:
				item.recommendation = "Run an ATS check on your resume"
				item.action = "Score your resume against a target job"
			case score < 70:
				item.recommendation = "Improve your resume's ATS score"
				item.action = "Apply the top resume recommendations"
			default:
				continue
			}
		case ReadinessNetwork:
			if score >= 70 {
				continue
			}
			item.recommendation = "Grow your network toward 10 active recruiters"
			item.action = "Add three recruiters who cover your industry"
		case ReadinessActivity:
			if score >= 70 {
				continue
			}
			item.recommendation = "Send at least 5 outreach messages per week"
			item.action = "Send a follow-up to your highest priority recruiter"
		case ReadinessResponse:
			if score >= 70 {
				continue
			}
			item.recommendation = "Raise your response rate with more personalized messages"
			item.action = "Rewrite your outreach template using message feedback"
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].high != items[j].high {
			return items[i].high
		}
		return items[i].score < items[j].score
	})
	return items
}

// ProfileFieldWeight is how much a profile field counts toward completeness.
type ProfileFieldWeight int

const (
	FieldRecommended ProfileFieldWeight = 1
	FieldImportant   ProfileFieldWeight = 2
	FieldRequired    ProfileFieldWeight = 3
)

// ProfileField is one weighted profile attribute.
type ProfileField struct {
	Name    string
	Weight  ProfileFieldWeight
	Present bool
}

// ProfileCompleteness is the weighted share of present fields, in [0,1].
func ProfileCompleteness(fields []ProfileField) float64 {
	total, present := 0, 0
	for _, f := range fields {
		total += int(f.Weight)
		if f.Present {
			present += int(f.Weight)
		}
	}
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total)
}

// SeekerProfile is the subset of a job seeker's profile that completeness
// looks at.
type SeekerProfile struct {
	FullName          string   `json:"fullName"`
	Email             string   `json:"email"`
	CurrentTitle      string   `json:"currentTitle"`
	TargetRoles       []string `json:"targetRoles"`
	Location          string   `json:"location"`
	Industries        []string `json:"industries"`
	YearsExperience   int      `json:"yearsExperience"`
	LinkedInURL       string   `json:"linkedinUrl"`
	SalaryExpectation int      `json:"salaryExpectation"`
	Bio               string   `json:"bio"`
	Skills            []string `json:"skills"`
	Phone             string   `json:"phone"`
	PortfolioURL      string   `json:"portfolioUrl"`
}

// Fields expands the profile into weighted completeness fields.
func (p SeekerProfile) Fields() []ProfileField {
	set := func(s string) bool { return strings.TrimSpace(s) != "" }
	return []ProfileField{
		{"full_name", FieldRequired, set(p.FullName)},
		{"email", FieldRequired, set(p.Email)},
		{"current_title", FieldRequired, set(p.CurrentTitle)},
		{"target_roles", FieldRequired, len(p.TargetRoles) > 0},
		{"location", FieldImportant, set(p.Location)},
		{"industries", FieldImportant, len(p.Industries) > 0},
		{"years_experience", FieldImportant, p.YearsExperience > 0},
		{"linkedin_url", FieldImportant, set(p.LinkedInURL)},
		{"salary_expectation", FieldImportant, p.SalaryExpectation > 0},
		{"bio", FieldRecommended, set(p.Bio)},
		{"skills", FieldRecommended, len(p.Skills) > 0},
		{"phone", FieldRecommended, set(p.Phone)},
		{"portfolio_url", FieldRecommended, set(p.PortfolioURL)},
	}
}
