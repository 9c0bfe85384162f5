package jobs

import (
	"context"

	helpdeskService "anoa.com/livestockhub/internal/modules/helpdesk/service"
	"go.uber.org/zap"
)

// SLASweep flags open helpdesk tickets that outlived their priority's SLA.
type SLASweep struct {
	helpdesk helpdeskService.HelpdeskService
	schedule string
	log      *zap.Logger
}

func NewSLASweep(helpdesk helpdeskService.HelpdeskService, schedule string, log *zap.Logger) *SLASweep {
	if log == nil {
		log = zap.NewNop()
	}
	return &SLASweep{helpdesk: helpdesk, schedule: schedule, log: log}
}

func (j *SLASweep) Name() string     { return "helpdesk-sla-sweep" }
func (j *SLASweep) Schedule() string { return j.schedule }

func (j *SLASweep) Run(ctx context.Context) error {
	n, err := j.helpdesk.SweepSLA(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		j.log.Warn("tickets breached SLA", zap.Int64("count", n))
	}
	return nil
}
