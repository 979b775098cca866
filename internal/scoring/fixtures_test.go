package scoring

import "strings"

// ==========================
// Shared Fixtures
// ==========================

const strongResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Summary
Senior software engineer with 8 years of experience building payment platforms for high growth fintech companies. Known for turning unreliable legacy systems into fast, well tested services and for growing engineers into technical leaders.

Experience
Lead Engineer, Acme Corp, Jan 2020 - Present
- Led a team of 6 engineers across billing and payouts, resulting in 40% faster releases
- Built a billing service processing $2M in monthly revenue with zero downtime
- Reduced infrastructure cost by 25% by consolidating clusters and rightsizing databases
- Automated deployments, cutting release time from 3 days to 2 hours
- Mentored four junior engineers, two of whom were promoted within a year

Senior Engineer, Beta Inc, Mar 2017 - Dec 2019
- Designed a public payments API used by 1,200,000 users in twelve countries
- Improved checkout conversion by 12% through latency work on the critical path
- Launched a fraud scoring model that saved $350K annually in chargebacks
- Delivered a streaming data pipeline that increased throughput 3x
- Migrated forty services to Kubernetes, leading to simpler on-call rotations

Software Engineer, Gamma LLC, Jun 2014 - Feb 2017
- Developed internal reporting tools adopted by fifteen teams across the company
- Streamlined onboarding documentation, reducing ramp-up time by 30%

Education
B.S. Computer Science, State University, 2014

Skills
Go, PostgreSQL, Kubernetes, AWS, Kafka, observability
`

const strongMessage = `Hi Sarah,

I noticed your recent placement of a platform lead at a payments startup and wanted to introduce myself. I am a senior backend engineer with 8 years of experience, and at my current company I reduced infrastructure costs by 35% and led a team of 6 engineers through a migration that cut deploy times from 2 hours to ten minutes. Talent Partners specifically focuses on fintech engineering searches, which is exactly where I want to go next.

I am interested in senior or staff backend roles in the Bay Area, ideally at growth stage companies. I would appreciate any perspective you have on the current market.

Would you be open to a short call next week?

Best regards,
Alex
`

func filler(words int) string {
	return strings.TrimSpace(strings.Repeat("alpha ", words))
}
