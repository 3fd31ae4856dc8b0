// ABOUTME: Cron-driven refresh schedule feeding the generation worker
// ABOUTME: Scheduled runs queue behind manual ones instead of racing them

package workers

import (
	"github.com/robfig/cron/v3"

	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Scheduler triggers full generation runs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	worker *GenerationWorker
	logger interfaces.Logger
	spec   string
}

// NewScheduler creates a scheduler that submits refresh jobs to the
// worker on the given cron spec. Standard five-field expressions and
// descriptors like "@every 30m" are both accepted.
func NewScheduler(worker *GenerationWorker, spec string, logger interfaces.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		worker: worker,
		logger: logger,
		spec:   spec,
	}

	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return nil, errors.WrapError(err, "parsing refresh schedule")
	}
	return s, nil
}

// Start begins firing scheduled refreshes.
func (s *Scheduler) Start() {
	s.cron.Start()
	if s.logger != nil {
		s.logger.Info("Refresh schedule started", map[string]interface{}{
			"schedule": s.spec,
		})
	}
}

// Stop halts the schedule and waits for an in-flight trigger to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunNow queues an immediate refresh outside the schedule.
func (s *Scheduler) RunNow() error {
	return s.worker.SubmitRefresh()
}

func (s *Scheduler) refresh() {
	if err := s.worker.SubmitRefresh(); err != nil {
		if s.logger != nil {
			s.logger.Warn("Scheduled refresh not queued", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
