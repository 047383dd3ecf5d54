// Package reminder runs the scheduled bill-reminder job. Each run scans
// bills whose due day falls within the configured window and sends one
// summary email per user.
package reminder

import (
	"time"

	"financial-hub/internal/config"
	"financial-hub/internal/models"
	"financial-hub/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// BillSource lists bills joined with their owners. Implemented by
// repository.Repository.
type BillSource interface {
	ListBillsWithOwners() ([]repository.BillWithOwner, error)
}

// Mailer sends the reminder email. Implemented by email.Sender.
type Mailer interface {
	SendBillReminder(to, username string, bills []models.Bill) error
}

// Scheduler wires the reminder job into a cron runner
type Scheduler struct {
	cfg    *config.Config
	source BillSource
	mailer Mailer
	cron   *cron.Cron
	log    *logrus.Logger
}

// NewScheduler initializes a new reminder scheduler
func NewScheduler(cfg *config.Config, source BillSource, mailer Mailer, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		source: source,
		mailer: mailer,
		cron:   cron.New(),
		log:    log,
	}
}

// Start registers the job and starts the cron runner
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ReminderCron, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Bill reminder scheduled: %q, %d day window", s.cfg.ReminderCron, s.cfg.ReminderDays)
	return nil
}

// Stop halts the cron runner
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Run executes one reminder pass. Send failures are logged per user and
// do not stop the pass.
func (s *Scheduler) Run() {
	bills, err := s.source.ListBillsWithOwners()
	if err != nil {
		s.log.Errorf("Bill reminder: failed to list bills: %v", err)
		return
	}

	type owner struct {
		name  string
		email string
		bills []models.Bill
	}
	byUser := make(map[int64]*owner)

	now := time.Now()
	for _, b := range bills {
		if !dueWithin(b.Bill.DueDate, now, s.cfg.ReminderDays) {
			continue
		}
		o, ok := byUser[b.Bill.UserID]
		if !ok {
			o = &owner{name: b.UserName, email: b.UserEmail}
			byUser[b.Bill.UserID] = o
		}
		o.bills = append(o.bills, b.Bill)
	}

	sent := 0
	for userID, o := range byUser {
		if o.email == "" {
			continue
		}
		if err := s.mailer.SendBillReminder(o.email, o.name, o.bills); err != nil {
			s.log.Errorf("Bill reminder: failed to notify user %d: %v", userID, err)
			continue
		}
		sent++
	}

	s.log.Infof("Bill reminder pass complete: %d user(s) notified", sent)
}

// dueWithin reports whether a monthly due day falls inside the window
// starting at now. The window may wrap into the next month.
func dueWithin(dueDay int, now time.Time, windowDays int) bool {
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	today := now.Day()

	for offset := 0; offset <= windowDays; offset++ {
		day := today + offset
		if day > daysInMonth {
			day -= daysInMonth
		}
		if day == dueDay {
			return true
		}
	}
	return false
}
