package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobezie-workers/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
)

// ResumeScoreDocument is one ATS result as stored for coach analytics.
type ResumeScoreDocument struct {
	ID              string         `json:"-"`
	UserID          string         `json:"userId"`
	ResumeID        string         `json:"resumeId,omitempty"`
	TargetRole      string         `json:"targetRole,omitempty"`
	FileType        string         `json:"fileType"`
	TotalScore      int            `json:"totalScore"`
	Components      map[string]int `json:"components"`
	MissingKeywords []string       `json:"missingKeywords,omitempty"`
	WeakSections    []string       `json:"weakSections,omitempty"`
	ScoredAt        time.Time      `json:"scoredAt"`
}

// ScoreIndex writes and reads ATS results in Elasticsearch.
type ScoreIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewScoreIndex(client *elasticsearch.Client, index string) *ScoreIndex {
	return &ScoreIndex{client: client, index: index}
}

func (s *ScoreIndex) Index(ctx context.Context, doc ResumeScoreDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewInternalError(err)
	}

	res, err := s.client.Index(s.index, bytes.NewReader(body),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(doc.ID),
		// readiness checks often follow a resume upload directly
		s.client.Index.WithRefresh("wait_for"),
	)
	if err != nil {
		return errors.NewScoreIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewScoreIndexFailedError(fmt.Errorf("index %s: %s", s.index, res.Status()))
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string              `json:"_id"`
			Source ResumeScoreDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Latest returns the most recent ATS result for a user, or nil if none.
func (s *ScoreIndex) Latest(ctx context.Context, userID string) (*ResumeScoreDocument, error) {
	query := map[string]interface{}{
		"size":  1,
		"query": map[string]interface{}{"term": map[string]interface{}{"userId": userID}},
		"sort":  []interface{}{map[string]interface{}{"scoredAt": map[string]string{"order": "desc"}}},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, errors.NewScoreIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, errors.NewScoreIndexFailedError(fmt.Errorf("search %s: %s", s.index, res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewScoreIndexFailedError(err)
	}
	if len(parsed.Hits.Hits) == 0 {
		return nil, nil
	}
	doc := parsed.Hits.Hits[0].Source
	doc.ID = parsed.Hits.Hits[0].ID
	return &doc, nil
}
