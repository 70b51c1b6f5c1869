package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devsync-backend/internal/models"
)

type stubActivityService struct {
	pruned    []time.Duration
	pruneErr  error
	pruneRows int64
}

func (s *stubActivityService) Record(string, string, *string) {}

func (s *stubActivityService) GetRecent(int) ([]models.Activity, error) { return nil, nil }

func (s *stubActivityService) Prune(olderThan time.Duration) (int64, error) {
	s.pruned = append(s.pruned, olderThan)
	return s.pruneRows, s.pruneErr
}

func TestNewPruner_InvalidCron(t *testing.T) {
	_, err := NewPruner(&stubActivityService{}, "not a cron spec", 30)
	assert.Error(t, err)
}

func TestNewPruner_SchedulesNextRun(t *testing.T) {
	p, err := NewPruner(&stubActivityService{}, "0 3 * * *", 30)
	require.NoError(t, err)
	assert.True(t, p.nextRun.After(time.Now()))
	assert.Equal(t, 30*24*time.Hour, p.retention)
}

func TestPruner_SweepUsesRetention(t *testing.T) {
	stub := &stubActivityService{pruneRows: 3}
	p, err := NewPruner(stub, "* * * * *", 7)
	require.NoError(t, err)

	p.sweep()
	require.Len(t, stub.pruned, 1)
	assert.Equal(t, 7*24*time.Hour, stub.pruned[0])
}
