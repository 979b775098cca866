package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"sort"
	"time"

	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/scoring"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// RecruiterColumns is the column order scanRecruiter expects.
var RecruiterColumns = []string{
	"id", "user_id", "full_name", "company_name", "industries", "locations",
	"specialty", "company_type", "salary_min", "salary_max", "stage",
	"stage_changed_at", "messages_sent", "messages_opened", "responses_received",
	"last_contact_at", "pending_actions", "engagement_score", "fit_score", "priority_score",
}

var SeekerColumns = []string{
	"user_id", "full_name", "email", "current_title", "target_roles", "location",
	"industries", "years_experience", "linkedin_url", "salary_expectation", "bio",
	"skills", "phone", "portfolio_url", "career_stage", "has_resume", "resume_ats_score",
}

// reminderStages are the open stages where a silent recruiter needs a nudge.
var reminderStages = []string{
	string(scoring.StageContacted),
	string(scoring.StageResponded),
	string(scoring.StageInterviewing),
	string(scoring.StageOffer),
}

// RecruiterRepository reads pipeline data and persists computed scores.
// Score writes are last-writer-wins.
type RecruiterRepository struct {
	db *sql.DB
}

func NewRecruiterRepository(db *sql.DB) *RecruiterRepository {
	return &RecruiterRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecruiter(row rowScanner) (Recruiter, error) {
	var (
		r           Recruiter
		stage       string
		lastContact sql.NullTime
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.FullName, &r.CompanyName,
		pq.Array(&r.Industries), pq.Array(&r.Locations),
		&r.Specialty, &r.CompanyType, &r.SalaryMin, &r.SalaryMax, &stage,
		&r.StageChangedAt, &r.MessagesSent, &r.MessagesOpened, &r.ResponsesReceived,
		&lastContact, &r.PendingActions, &r.EngagementScore, &r.FitScore, &r.PriorityScore,
	)
	if err != nil {
		return Recruiter{}, err
	}
	r.Stage = scoring.PipelineStage(stage)
	if lastContact.Valid {
		t := lastContact.Time
		r.LastContactAt = &t
	}
	return r, nil
}

func (r *RecruiterRepository) GetRecruiter(ctx context.Context, recruiterID string) (*Recruiter, error) {
	query, args, err := psql.Select(RecruiterColumns...).
		From("recruiters").
		Where(sq.Eq{"id": recruiterID}).
		ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	rec, err := scanRecruiter(r.db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRecruiterNotFoundError(recruiterID)
	}
	if err != nil {
		return nil, queryError(err)
	}
	return &rec, nil
}

// ListPipeline returns all of a user's recruiters, highest priority first.
func (r *RecruiterRepository) ListPipeline(ctx context.Context, userID string) ([]Recruiter, error) {
	query, args, err := psql.Select(RecruiterColumns...).
		From("recruiters").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("priority_score DESC", "id").
		ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return r.queryRecruiters(ctx, r.db, query, args)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *RecruiterRepository) queryRecruiters(ctx context.Context, q queryer, query string, args []interface{}) ([]Recruiter, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(err)
	}
	defer rows.Close()

	var out []Recruiter
	for rows.Next() {
		rec, err := scanRecruiter(rows)
		if err != nil {
			return nil, queryError(err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

// UpdatePriorityScore overwrites one recruiter's stored priority.
func (r *RecruiterRepository) UpdatePriorityScore(ctx context.Context, recruiterID string, score int, at time.Time) error {
	query, args, err := psql.Update("recruiters").
		Set("priority_score", score).
		Set("scores_updated_at", at).
		Where(sq.Eq{"id": recruiterID}).
		ToSql()
	if err != nil {
		return errors.NewInternalError(err)
	}
	return r.execOne(ctx, recruiterID, query, args)
}

// UpdateRelationshipScores stores the engagement and fit composites.
func (r *RecruiterRepository) UpdateRelationshipScores(ctx context.Context, recruiterID string, engagement, fit int, at time.Time) error {
	query, args, err := psql.Update("recruiters").
		Set("engagement_score", engagement).
		Set("fit_score", fit).
		Set("scores_updated_at", at).
		Where(sq.Eq{"id": recruiterID}).
		ToSql()
	if err != nil {
		return errors.NewInternalError(err)
	}
	return r.execOne(ctx, recruiterID, query, args)
}

func (r *RecruiterRepository) execOne(ctx context.Context, recruiterID, query string, args []interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewDatabaseUpdateFailedError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewDatabaseUpdateFailedError(err)
	}
	if n == 0 {
		return errors.NewRecruiterNotFoundError(recruiterID)
	}
	return nil
}

// RefreshPriorities recomputes every recruiter priority for one user inside
// a single transaction, so readers never see a half-refreshed pipeline.
// score is called once per recruiter with the row as read inside the
// transaction. It returns the number of rows rewritten.
func (r *RecruiterRepository) RefreshPriorities(ctx context.Context, userID string, at time.Time, score func(Recruiter) int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewDatabaseConnectionFailedError(err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := psql.Select(RecruiterColumns...).
		From("recruiters").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	recs, err := r.queryRecruiters(ctx, tx, query, args)
	if err != nil {
		return 0, err
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	for _, rec := range recs {
		update, uargs, err := psql.Update("recruiters").
			Set("priority_score", score(rec)).
			Set("scores_updated_at", at).
			Where(sq.Eq{"id": rec.ID, "user_id": userID}).
			ToSql()
		if err != nil {
			return 0, errors.NewInternalError(err)
		}
		if _, err := tx.ExecContext(ctx, update, uargs...); err != nil {
			return 0, errors.NewDatabaseUpdateFailedError(err).WithMetadata("recruiterId", rec.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewDatabaseUpdateFailedError(err)
	}
	return len(recs), nil
}

func (r *RecruiterRepository) GetSeeker(ctx context.Context, userID string) (*Seeker, error) {
	query, args, err := psql.Select(SeekerColumns...).
		From("seeker_profiles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	var (
		s           Seeker
		p           = &s.Profile
		stage       string
		resumeScore sql.NullInt64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.UserID, &p.FullName, &p.Email, &p.CurrentTitle, pq.Array(&p.TargetRoles),
		&p.Location, pq.Array(&p.Industries), &p.YearsExperience, &p.LinkedInURL,
		&p.SalaryExpectation, &p.Bio, pq.Array(&p.Skills), &p.Phone, &p.PortfolioURL,
		&stage, &s.HasResume, &resumeScore,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewProfileNotFoundError(userID)
	}
	if err != nil {
		return nil, queryError(err)
	}

	s.CareerStage = scoring.ParseCareerStage(stage)
	if resumeScore.Valid {
		v := int(resumeScore.Int64)
		s.ResumeScore = &v
	}
	return &s, nil
}

// GetActivityStats aggregates a user's pipeline and the messages sent in
// the seven days before now.
func (r *RecruiterRepository) GetActivityStats(ctx context.Context, userID string, now time.Time) (ActivityStats, error) {
	var stats ActivityStats

	pipelineQuery, args, err := psql.Select(
		"COUNT(*) FILTER (WHERE stage NOT IN ('accepted', 'declined'))",
		"COALESCE(SUM(messages_sent), 0)",
		"COALESCE(SUM(responses_received), 0)",
	).From("recruiters").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return stats, errors.NewInternalError(err)
	}
	if err := r.db.QueryRowContext(ctx, pipelineQuery, args...).
		Scan(&stats.ActiveRecruiters, &stats.MessagesSent, &stats.ResponsesReceived); err != nil {
		return stats, queryError(err)
	}

	weekQuery, args, err := psql.Select("COUNT(*)").
		From("outreach_messages").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"sent_at": now.Add(-7 * 24 * time.Hour)}).
		ToSql()
	if err != nil {
		return stats, errors.NewInternalError(err)
	}
	if err := r.db.QueryRowContext(ctx, weekQuery, args...).Scan(&stats.MessagesThisWeek); err != nil {
		return stats, queryError(err)
	}

	if stats.MessagesSent > 0 {
		stats.ResponseRate = float64(stats.ResponsesReceived) / float64(stats.MessagesSent)
	}
	return stats, nil
}

// ListReminderCandidates returns open-stage recruiters not contacted since
// cutoff and not yet reminded about that contact.
func (r *RecruiterRepository) ListReminderCandidates(ctx context.Context, cutoff time.Time, limit int) ([]ReminderCandidate, error) {
	query, args, err := psql.Select(
		"r.id", "r.full_name", "r.company_name", "r.user_id",
		"s.full_name", "s.email", "s.phone",
		"r.stage", "r.priority_score", "r.last_contact_at",
	).
		From("recruiters r").
		Join("seeker_profiles s ON s.user_id = r.user_id").
		Where(sq.LtOrEq{"r.last_contact_at": cutoff}).
		Where(sq.Eq{"r.stage": reminderStages}).
		Where(sq.Or{sq.Eq{"r.reminded_at": nil}, sq.Expr("r.reminded_at < r.last_contact_at")}).
		OrderBy("r.priority_score DESC", "r.last_contact_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(err)
	}
	defer rows.Close()

	var out []ReminderCandidate
	for rows.Next() {
		var (
			c     ReminderCandidate
			stage string
		)
		if err := rows.Scan(&c.RecruiterID, &c.RecruiterName, &c.CompanyName, &c.UserID,
			&c.SeekerName, &c.SeekerEmail, &c.SeekerPhone,
			&stage, &c.PriorityScore, &c.LastContactAt); err != nil {
			return nil, queryError(err)
		}
		c.Stage = scoring.PipelineStage(stage)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

func (r *RecruiterRepository) MarkReminded(ctx context.Context, recruiterID string, at time.Time) error {
	query, args, err := psql.Update("recruiters").
		Set("reminded_at", at).
		Where(sq.Eq{"id": recruiterID}).
		ToSql()
	if err != nil {
		return errors.NewInternalError(err)
	}
	return r.execOne(ctx, recruiterID, query, args)
}

func queryError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(err)
	}
	return errors.NewQueryExecutionFailedError(err)
}
