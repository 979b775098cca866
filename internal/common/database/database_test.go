package database

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"jobezie-workers/internal/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Redis
// ==========================

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(context.Background(), config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))

	mr.Close()
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewRedis(context.Background(), config.RedisConfig{Address: addr})
	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestRedisClient_CloseNil(t *testing.T) {
	assert.NoError(t, (&RedisClient{}).Close())
}

// ==========================
// Postgres
// ==========================

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	client := &PostgresClient{DB: db}

	mock.ExpectPing()
	assert.NoError(t, client.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(io.ErrUnexpectedEOF)
	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres ping failed")

	mock.ExpectClose()
	assert.NoError(t, client.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgres_Unreachable(t *testing.T) {
	client, err := NewPostgres(context.Background(), config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Database: "jobezie",
		User:     "jobezie",
		Password: "jobezie",
		SSLMode:  "disable",
	})
	assert.Nil(t, client)
	assert.Error(t, err)
}

// ==========================
// Elasticsearch
// ==========================

type esServer struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
	exists   bool
	create   int
}

func (s *esServer) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, _ := io.ReadAll(r.Body)
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.bodies = append(s.bodies, string(body))

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		if s.exists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut:
		w.WriteHeader(s.create)
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newESTest(t *testing.T, s *esServer) *ElasticsearchClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(s.handler))
	t.Cleanup(srv.Close)

	client, err := NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestElasticsearch_Ping(t *testing.T) {
	s := &esServer{}
	client := newESTest(t, s)
	assert.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, []string{"HEAD /"}, s.requests)
}

func TestElasticsearch_EnsureIndex(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		create   int
		wantErr  bool
		wantReqs []string
	}{
		{
			name:     "already exists",
			exists:   true,
			wantReqs: []string{"HEAD /resume-scores"},
		},
		{
			name:     "created",
			create:   http.StatusOK,
			wantReqs: []string{"HEAD /resume-scores", "PUT /resume-scores"},
		},
		{
			name:     "lost creation race",
			create:   http.StatusBadRequest,
			wantReqs: []string{"HEAD /resume-scores", "PUT /resume-scores"},
		},
		{
			name:     "cluster error",
			create:   http.StatusInternalServerError,
			wantErr:  true,
			wantReqs: []string{"HEAD /resume-scores", "PUT /resume-scores"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &esServer{exists: tt.exists, create: tt.create}
			client := newESTest(t, s)

			err := client.EnsureIndex(context.Background(), "resume-scores")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantReqs, s.requests)
			if len(s.bodies) > 1 {
				assert.True(t, strings.Contains(s.bodies[1], `"totalScore":  {"type": "integer"}`))
			}
		})
	}
}

func TestNewElasticsearch_AddressPrecedence(t *testing.T) {
	client, err := NewElasticsearch(config.ElasticsearchConfig{
		Addresses: []string{"http://es-1:9200"},
		URL:       "http://ignored:9200",
		Username:  "elastic",
		Password:  "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, client.Client)
}
