package sendfollowupreminder

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"jobezie-workers/internal/store"
)

var (
	subjectTemplate = template.Must(template.New("subject").Parse(
		`Time to follow up with {{.RecruiterName}}`))

	emailTemplate = template.Must(template.New("email").Parse(`Hi {{.SeekerName}},

It has been {{.Days}} days since you last contacted {{.RecruiterName}}{{if .CompanyName}} at {{.CompanyName}}{{end}}.
They are in your {{.Stage}} column with a follow-up priority of {{.Priority}}/100.

A short, specific check-in now keeps the conversation moving. Mention something new since
your last message and end with one clear ask.

Good luck,
Jobezie
`))

	smsTemplate = template.Must(template.New("sms").Parse(
		`Jobezie: follow up with {{.RecruiterName}} today ({{.Days}} days since last contact, priority {{.Priority}}).`))
)

type reminderData struct {
	SeekerName    string
	RecruiterName string
	CompanyName   string
	Stage         string
	Priority      int
	Days          int
}

type reminder struct {
	Subject string
	Email   string
	SMS     string
}

func buildReminder(c store.ReminderCandidate, now time.Time) (reminder, error) {
	name := c.SeekerName
	if name == "" {
		name = "there"
	}
	data := reminderData{
		SeekerName:    name,
		RecruiterName: c.RecruiterName,
		CompanyName:   c.CompanyName,
		Stage:         string(c.Stage),
		Priority:      c.PriorityScore,
		Days:          int(now.Sub(c.LastContactAt).Hours() / 24),
	}

	var r reminder
	for _, part := range []struct {
		tmpl *template.Template
		dst  *string
	}{
		{subjectTemplate, &r.Subject},
		{emailTemplate, &r.Email},
		{smsTemplate, &r.SMS},
	} {
		var buf bytes.Buffer
		if err := part.tmpl.Execute(&buf, data); err != nil {
			return reminder{}, fmt.Errorf("render %s: %w", part.tmpl.Name(), err)
		}
		*part.dst = buf.String()
	}
	return r, nil
}
