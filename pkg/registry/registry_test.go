package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRegistry = `{
  "version": "1.0.0",
  "lastUpdated": "2026-01-10",
  "activities": [
    {
      "id": "score-outreach-message",
      "taskType": "score-outreach-message",
      "timeout": "5s",
      "retries": 0,
      "inputSchema": {"type": "object", "required": ["messageText"]}
    },
    {
      "id": "score-resume-ats",
      "taskType": "score-resume-ats",
      "timeout": "soon"
    }
  ]
}`

func TestParse(t *testing.T) {
	reg, err := Parse([]byte(sampleRegistry))
	require.NoError(t, err)

	assert.Equal(t, []string{"score-outreach-message", "score-resume-ats"}, reg.TaskTypes())

	msg, ok := reg.Find("score-outreach-message")
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, msg.TimeoutDuration(time.Minute))

	ats, ok := reg.Find("score-resume-ats")
	require.True(t, ok)
	assert.Equal(t, time.Minute, ats.TimeoutDuration(time.Minute))

	_, ok = reg.Find("unknown")
	assert.False(t, ok)

	schemas := reg.InputSchemas()
	assert.Len(t, schemas, 1)
	assert.Contains(t, schemas, "score-outreach-message")
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"activities": [`},
		{"missing task type", `{"activities": [{"id": "a"}]}`},
		{"duplicate task type", `{"activities": [{"taskType": "x"}, {"taskType": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistry_ShippedFile(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "activity-registry.json")
	if _, err := os.Stat(path); err != nil {
		t.Skip("activity registry not present")
	}

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.Activities, 7)
	for _, a := range reg.Activities {
		assert.NotEmpty(t, a.InputSchema, a.TaskType)
	}
}
