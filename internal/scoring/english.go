package scoring

const monthPattern = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`

// EnglishSpec is the built-in English heuristics. Custom packs start from a
// copy of it.
func EnglishSpec() PackSpec {
	return PackSpec{
		Name: "en",
		ActionVerbs: []string{
			"accelerated", "achieved", "analyzed", "architected", "automated",
			"boosted", "built", "consolidated", "coordinated", "created",
			"cut", "delivered", "deployed", "designed", "developed",
			"directed", "doubled", "drove", "engineered", "established",
			"exceeded", "executed", "expanded", "facilitated", "founded",
			"generated", "grew", "headed", "implemented", "improved",
			"increased", "initiated", "launched", "led", "managed",
			"mentored", "migrated", "modernized", "negotiated", "optimized",
			"orchestrated", "organized", "overhauled", "pioneered", "produced",
			"redesigned", "reduced", "resolved", "restructured", "saved",
			"scaled", "secured", "simplified", "spearheaded", "streamlined",
			"strengthened", "supervised", "trained", "transformed", "tripled",
			"won",
		},
		MetricPatterns: []string{
			`\$\s?\d[\d,]*(?:\.\d+)?\s?(?:k|m|mm|b|million|billion|thousand)?\b`,
			`\b\d+(?:\.\d+)?\s?(?:%|percent\b)`,
			`\b\d+(?:\.\d+)?x\b`,
			`\b\d{1,3}(?:,\d{3})+\b`,
			`\b\d+\+?\s(?:hours?|days?|weeks?|months?|years?)\b`,
			`\b(?:team|staff|group|org) of \d+\b`,
			`\b\d+\+?\s(?:engineers|developers|people|employees|direct reports|reports|members|clients|customers|users|hires)\b`,
		},
		CTAPatterns: []string{
			`\bwould you be (?:open|available|interested|free)\b`,
			`\b(?:could|can|shall) we (?:schedule|set up|find|arrange|chat|talk|connect|meet)\b`,
			`\blet me know (?:if|when|whether)\b`,
			`\b(?:do|would) you have (?:time|a few minutes|\d+ minutes)\b`,
			`\blooking forward to (?:hearing|connecting|speaking|your reply)\b`,
			`\bplease (?:reply|respond|get back|reach out)\b`,
			`\b(?:are you available|is there a good time)\b`,
		},
		ResultPatterns: []string{
			`\bresult(?:ed|ing)? in\b`,
			`\b(?:leading|led) to\b`,
			`\b(?:increas|reduc|improv|sav|generat|boost|achiev|decreas|exceed|grow)(?:e|ed|es|ing|s)?\b`,
			`\bgrew\b`,
			`\bcut(?:ting)?\b`,
			`\d+(?:\.\d+)?\s?%`,
		},
		SeniorityTerms: []string{
			"intern", "junior", "associate", "senior", "sr", "lead", "principal",
			"staff", "manager", "director", "head of", "vice president", "vp",
			"chief", "promoted",
		},
		DateRangePattern: `\b(?:` + monthPattern + `\s+|\d{1,2}/)?(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:` + monthPattern + `\s+|\d{1,2}/)?(?:19|20)\d{2}|present|current|now)\b`,
		BulletPattern:    `^\s*(?:[-*•▪◦‣●]|\d{1,2}[.)])\s+`,
		ContactPatterns: []string{
			`[\w.+-]+@[\w-]+\.[\w.-]+`,
			`\(?\b\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`,
			`linkedin\.com/in/`,
		},
		SectionHeaders: map[Section][]string{
			SectionContact:        {`contact(?: information| info| details)?`},
			SectionSummary:        {`(?:professional |career |executive )?(?:summary|profile|objective)`, `about me`},
			SectionExperience:     {`(?:professional |work |relevant )?experience`, `employment(?: history)?`, `(?:work|career) history`},
			SectionEducation:      {`education(?: (?:and|&) training)?`, `academic background`},
			SectionSkills:         {`(?:technical |core |key )?(?:skills|competencies)`, `technologies`, `areas of expertise`},
			SectionProjects:       {`(?:key |selected )?projects`},
			SectionCertifications: {`certifications?`, `licenses(?: (?:and|&) certifications)?`},
			SectionAwards:         {`awards?(?: (?:and|&) honors)?`, `honors`},
			SectionVolunteer:      {`volunteer(?:ing| experience| work)?`},
			SectionPublications:   {`publications`},
		},
		Personalization: map[PersonalizationTag][]string{
			TagGreeting:         {`\b(?:Hi|Hello|Dear|Hey|Greetings)[ ,]+[A-Z][a-z]+`},
			TagCompanyMention:   {`\b(?:[Yy]our (?:company|team|firm|agency|organization|practice)|at [A-Z][A-Za-z&]+)`},
			TagRecentWork:       {`\b(?:[Rr]ecent(?:ly)?|[Yy]our (?:post|article|talk|placement|announcement|work on)|I (?:saw|read|noticed) (?:your|that))\b`},
			TagSpecificDetail:   {`\b(?:[Ss]pecifically|[Ii]n particular|[Ee]specially|[Yy]our (?:focus|specialty|specialization|experience) (?:on|in|with))\b`},
			TagMutualConnection: {`\b(?:[Mm]utual (?:connection|contact|friend)|(?:[Rr]eferred|[Ii]ntroduced) (?:me|by)|suggested (?:I|that I) (?:reach out|contact)|we both know)\b`},
		},
		ProfessionalPhrases: []string{
			`\bi(?: would|'d) appreciate\b`,
			`\bthank you for\b`,
			`\bi appreciate\b`,
			`\bi(?: am|'m) (?:interested|excited)\b`,
			`\bi(?: would|'d) welcome\b`,
			`\b(?:best|kind|warm) regards\b`,
			`\bopportunity to\b`,
			`\bat your convenience\b`,
		},
		CasualMarkers: []string{
			`\b(?:yo|gonna|wanna|gotta|lol|btw|omg|haha|thx|ur)\b`,
			`!!+`,
			`:\)`,
		},
		FormalMarkers: []string{
			`\bto whom it may concern\b`,
			`\bdear sir or madam\b`,
			`\b(?:herewith|hereby|pursuant|aforementioned|heretofore)\b`,
			`\bi remain\b`,
		},
		DesperationMarkers: []string{
			`\bdesperate(?:ly)?\b`,
			`\bplease help\b`,
			`\bany (?:job|position|role) at all\b`,
			`\banything at all\b`,
			`\bbegging\b`,
			`\bi really need (?:a|this) (?:job|role|position)\b`,
		},
	}
}

var english = MustLanguagePack(EnglishSpec())

// English returns the built-in English language pack.
func English() LanguagePack { return english }
