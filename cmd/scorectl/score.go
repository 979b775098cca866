package main

import (
	"fmt"

	"jobezie-workers/internal/scoring"

	"github.com/spf13/cobra"
)

func newATSCmd(opts *rootOptions) *cobra.Command {
	var (
		keywords []string
		role     string
		fileType string
	)
	cmd := &cobra.Command{
		Use:   "ats <resume-file|->",
		Short: "Score a plain-text resume for ATS compatibility",
		Example: `  scorectl ats resume.txt --keywords go,kubernetes,grpc --role "Backend Engineer"
  pdftotext cv.pdf - | scorectl ats - --file-type pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, "")
			if err != nil {
				return err
			}
			lang, err := opts.language()
			if err != nil {
				return err
			}
			result := scoring.ScoreATSWith(lang, scoring.ATSInput{
				Text:        text,
				JobKeywords: keywords,
				TargetRole:  role,
				FileType:    scoring.ParseFileType(fileType),
			})
			return opts.print(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "job description keywords")
	cmd.Flags().StringVar(&role, "role", "", "target role title")
	cmd.Flags().StringVar(&fileType, "file-type", "pdf", "source file type (pdf, docx, doc, txt)")
	return cmd
}

func newMessageCmd(opts *rootOptions) *cobra.Command {
	var (
		text        string
		messageType string
		recruiter   string
		company     string
	)
	cmd := &cobra.Command{
		Use:   "message [message-file|-]",
		Short: "Score an outreach message",
		Example: `  scorectl message draft.txt --type follow_up --recruiter "Dana Cole" --company Acme
  scorectl message --text "Hi Dana, ..." --type initial_outreach`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readText(cmd, args, text)
			if err != nil {
				return err
			}
			lang, err := opts.language()
			if err != nil {
				return err
			}
			result := scoring.ScoreMessageWith(lang, scoring.MessageInput{
				Text:          body,
				Type:          scoring.ParseMessageType(messageType),
				RecruiterName: recruiter,
				CompanyName:   company,
			})
			return opts.print(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "message text when no file is given")
	cmd.Flags().StringVar(&messageType, "type", string(scoring.MessageInitialOutreach), "message type")
	cmd.Flags().StringVar(&recruiter, "recruiter", "", "recruiter full name")
	cmd.Flags().StringVar(&company, "company", "", "recruiter company")
	return cmd
}

type priorityOutput struct {
	PriorityScore int                   `json:"priorityScore"`
	PriorityLevel string                `json:"priorityLevel"`
	Stage         scoring.PipelineStage `json:"stage"`
	StageColor    string                `json:"stageColor"`
}

func newPriorityCmd(opts *rootOptions) *cobra.Command {
	var (
		in    scoring.PriorityInput
		stage string
	)
	cmd := &cobra.Command{
		Use:     "priority",
		Short:   "Compute the follow-up priority for one recruiter",
		Example: `  scorectl priority --days 9 --engagement 70 --fit 60 --stage contacted`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, ok := scoring.ParsePipelineStage(stage)
			if !ok {
				return fmt.Errorf("unknown stage %q (want one of %v)", stage, scoring.Stages())
			}
			in.Stage = s
			score := scoring.ScorePriority(in)
			return opts.print(cmd.OutOrStdout(), priorityOutput{
				PriorityScore: score,
				PriorityLevel: scoring.PriorityLevel(score),
				Stage:         s,
				StageColor:    s.Color(),
			})
		},
	}
	cmd.Flags().IntVar(&in.DaysSinceContact, "days", -1, "days since last contact (-1 for never)")
	cmd.Flags().IntVar(&in.PendingActions, "pending", 0, "pending actions")
	cmd.Flags().IntVar(&in.EngagementScore, "engagement", 0, "engagement score 0-100")
	cmd.Flags().IntVar(&in.FitScore, "fit", 0, "fit score 0-100")
	cmd.Flags().BoolVar(&in.HasResponded, "responded", false, "recruiter has responded")
	cmd.Flags().StringVar(&stage, "stage", string(scoring.StageNew), "pipeline stage")
	return cmd
}

func newReadinessCmd(opts *rootOptions) *cobra.Command {
	var (
		in          scoring.ReadinessInputs
		resumeScore int
		careerStage string
	)
	cmd := &cobra.Command{
		Use:     "readiness",
		Short:   "Score job search readiness from profile and activity signals",
		Example: `  scorectl readiness --completeness 0.8 --resume-score 72 --recruiters 6 --messages 4 --response-rate 0.2 --career-stage mid`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("resume-score") {
				in.ResumeATSScore = &resumeScore
				in.HasResume = true
			}
			in.CareerStage = scoring.ParseCareerStage(careerStage)
			return opts.print(cmd.OutOrStdout(), scoring.ScoreReadiness(in))
		},
	}
	cmd.Flags().Float64Var(&in.ProfileCompleteness, "completeness", 0, "profile completeness 0-1")
	cmd.Flags().IntVar(&resumeScore, "resume-score", 0, "latest resume ATS score")
	cmd.Flags().BoolVar(&in.HasResume, "has-resume", false, "a resume is on file")
	cmd.Flags().IntVar(&in.ActiveRecruiters, "recruiters", 0, "active recruiters in the pipeline")
	cmd.Flags().IntVar(&in.MessagesThisWeek, "messages", 0, "messages sent in the last 7 days")
	cmd.Flags().Float64Var(&in.ResponseRate, "response-rate", 0, "response rate 0-1")
	cmd.Flags().StringVar(&careerStage, "career-stage", "mid", "career stage")
	return cmd
}
