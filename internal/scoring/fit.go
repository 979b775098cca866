package scoring

import (
	"strings"
)

// Fit component names.
const (
	FitIndustry  = "industry"
	FitLocation  = "location"
	FitSpecialty = "specialty"
	FitTier      = "tier"
	FitDepth     = "depth"
)

// FitWeights is the recruiter fit weight table.
var FitWeights = Weights{
	{FitIndustry, 30},
	{FitLocation, 20},
	{FitSpecialty, 25},
	{FitTier, 15},
	{FitDepth, 10},
}

const (
	highSalary = 150000
	lowSalary  = 75000
)

// UserFitProfile is what a job seeker is looking for.
type UserFitProfile struct {
	Industries        []string `json:"industries"`
	Location          string   `json:"location"`
	TargetRoles       []string `json:"targetRoles"`
	SalaryExpectation int      `json:"salaryExpectation"`
}

// RecruiterFitProfile is what a recruiter covers.
type RecruiterFitProfile struct {
	Industries  []string `json:"industries"`
	Locations   []string `json:"locations"`
	Specialty   string   `json:"specialty"`
	CompanyType string   `json:"companyType"`
	SalaryMin   int      `json:"salaryMin"`
	SalaryMax   int      `json:"salaryMax"`
}

// ScoreFit scores how well a recruiter matches a job seeker's targets.
func ScoreFit(user UserFitProfile, recruiter RecruiterFitProfile) ScoreResult {
	var n notes
	components := map[string]int{
		FitIndustry:  industryFit(user.Industries, recruiter.Industries),
		FitLocation:  locationFit(user.Location, recruiter.Locations),
		FitSpecialty: specialtyFit(user.TargetRoles, recruiter.Specialty),
		FitTier:      tierFit(user.SalaryExpectation, recruiter),
		FitDepth:     profileDepth(recruiter),
	}

	if components[FitIndustry] >= 75 {
		n.good("Recruiter works in your industries")
	} else if len(recruiter.Industries) > 0 {
		n.fix("Recruiter's industries only partly overlap yours")
	}
	if components[FitLocation] == 40 {
		n.fix("Recruiter does not cover your location")
	}
	if components[FitSpecialty] == 100 {
		n.good("Recruiter specializes in your target roles")
	} else if components[FitSpecialty] == 40 {
		n.fix("Recruiter's specialty is outside your target roles")
	}
	if components[FitTier] < 70 {
		n.fix("Your salary target sits outside this recruiter's usual range")
	}
	if components[FitDepth] < 70 {
		n.fix("Research this recruiter further; their profile is incomplete")
	}

	return FitWeights.result(components, n)
}

func industryFit(user, recruiter []string) int {
	u, r := termSet(user), termSet(recruiter)
	if len(u) == 0 || len(r) == 0 {
		return 50
	}
	shared := 0
	for term := range u {
		if r[term] {
			shared++
		}
	}
	jaccard := float64(shared) / float64(len(u)+len(r)-shared)
	switch {
	case jaccard >= 0.5:
		return 100
	case jaccard >= 0.3:
		return 75
	case jaccard > 0:
		return 50
	default:
		return 20
	}
}

var nationwideTerms = []string{"remote", "nationwide", "national", "anywhere"}

func locationFit(user string, recruiter []string) int {
	user = strings.ToLower(strings.TrimSpace(user))
	locations := dedupeTerms(recruiter)
	if user == "" || len(locations) == 0 {
		return 70
	}

	best := 40
	userTokens := locationTokens(user)
	for _, loc := range locations {
		if loc == user {
			return 100
		}
		for _, term := range nationwideTerms {
			if strings.Contains(loc, term) {
				best = max(best, 80)
			}
		}
		for tok := range locationTokens(loc) {
			if userTokens[tok] {
				best = max(best, 75)
			}
		}
	}
	return best
}

func locationTokens(loc string) map[string]bool {
	tokens := make(map[string]bool)
	for _, part := range strings.FieldsFunc(loc, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '-'
	}) {
		if len(part) >= 2 {
			tokens[part] = true
		}
	}
	for _, term := range nationwideTerms {
		delete(tokens, term)
	}
	return tokens
}

func specialtyFit(roles []string, specialty string) int {
	specTokens := significantTokens(specialty)
	var roleTokens []string
	for _, role := range roles {
		roleTokens = append(roleTokens, significantTokens(role)...)
	}
	if len(specTokens) == 0 || len(roleTokens) == 0 {
		return 50
	}

	spec := make(map[string]bool, len(specTokens))
	for _, t := range specTokens {
		spec[t] = true
	}
	shared := make(map[string]bool)
	for _, t := range roleTokens {
		if spec[t] {
			shared[t] = true
		}
	}
	if len(shared) >= 2 || (len(shared) == 1 && 2*len(shared) >= len(spec)) {
		return 100
	}
	if len(shared) == 1 {
		return 70
	}
	for _, r := range roleTokens {
		for s := range spec {
			if strings.HasPrefix(s, r) || strings.HasPrefix(r, s) {
				return 70
			}
		}
	}
	return 40
}

func tierFit(salary int, r RecruiterFitProfile) int {
	if salary <= 0 {
		return 70
	}
	score := 70
	lo, hi := r.SalaryMin, r.SalaryMax
	if lo > hi && hi > 0 {
		lo, hi = hi, lo
	}
	if lo > 0 || hi > 0 {
		score = salaryRangeScore(salary, lo, hi)
	}

	kind := strings.ToLower(r.CompanyType)
	switch {
	case salary >= highSalary && (strings.Contains(kind, "executive") || strings.Contains(kind, "retained")):
		score += 20
	case salary <= lowSalary && (strings.Contains(kind, "staffing") || strings.Contains(kind, "temp")):
		score += 10
	}
	return clamp(score, 0, 100)
}

// salaryRangeScore is 100 inside the range, 60 within 20% of the nearest
// bound and 40 beyond that. An open bound is treated as unbounded.
func salaryRangeScore(salary, lo, hi int) int {
	var distance float64
	switch {
	case lo > 0 && salary < lo:
		distance = float64(lo-salary) / float64(lo)
	case hi > 0 && salary > hi:
		distance = float64(salary-hi) / float64(hi)
	default:
		return 100
	}
	if distance <= 0.2 {
		return 60
	}
	return 40
}

func profileDepth(r RecruiterFitProfile) int {
	score := 0
	if n := len(dedupeTerms(r.Industries)); n > 0 {
		score += min(35, 20+5*(n-1))
	}
	if n := len(dedupeTerms(r.Locations)); n > 0 {
		score += min(30, 20+5*(n-1))
	}
	if words := len(strings.Fields(r.Specialty)); words >= 2 {
		score += 35
	} else if words == 1 {
		score += 25
	}
	return clamp(score, 0, 100)
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "of": true, "for": true,
	"in": true, "on": true, "at": true, "to": true, "with": true, "or": true,
	"role": true, "roles": true, "position": true, "positions": true,
}

// significantTokens lowercases text and drops stop words and short tokens.
func significantTokens(text string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isTokenSeparator) {
		if len(tok) < 3 && tok != "qa" && tok != "ux" && tok != "ui" {
			continue
		}
		if stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isTokenSeparator(r rune) bool {
	switch r {
	case ' ', ',', '/', '-', '&', '(', ')', '.', ';', '|':
		return true
	}
	return false
}

func termSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range dedupeTerms(terms) {
		set[t] = true
	}
	return set
}
