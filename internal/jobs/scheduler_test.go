package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	helpdeskService "anoa.com/livestockhub/internal/modules/helpdesk/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHelpdesk struct {
	helpdeskService.HelpdeskService
	swept atomic.Int32
	err   error
}

func (f *fakeHelpdesk) SweepSLA(context.Context) (int64, error) {
	f.swept.Add(1)
	return 2, f.err
}

func TestScheduler_RunsScheduledJob(t *testing.T) {
	helpdesk := &fakeHelpdesk{}
	s := NewScheduler(nil)
	require.NoError(t, s.Register(NewSLASweep(helpdesk, "@every 1s", nil)))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return helpdesk.swept.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	s := NewScheduler(nil)
	err := s.Register(NewSLASweep(&fakeHelpdesk{}, "not a cron line", nil))
	assert.Error(t, err)
}

func TestScheduler_RunByName(t *testing.T) {
	helpdesk := &fakeHelpdesk{}
	s := NewScheduler(nil)
	require.NoError(t, s.Register(NewSLASweep(helpdesk, "", nil)))

	require.NoError(t, s.RunByName(context.Background(), "helpdesk-sla-sweep"))
	assert.Equal(t, int32(1), helpdesk.swept.Load())
	assert.Error(t, s.RunByName(context.Background(), "missing"))

	helpdesk.err = errors.New("db down")
	assert.EqualError(t, s.RunByName(context.Background(), "helpdesk-sla-sweep"), "db down")
}
