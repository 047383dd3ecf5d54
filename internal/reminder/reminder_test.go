package reminder

import (
	"errors"
	"testing"
	"time"

	"financial-hub/internal/config"
	"financial-hub/internal/models"
	"financial-hub/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	bills []repository.BillWithOwner
	err   error
}

func (f *fakeSource) ListBillsWithOwners() ([]repository.BillWithOwner, error) {
	return f.bills, f.err
}

type fakeMailer struct {
	sent map[string][]models.Bill
	err  error
}

func (f *fakeMailer) SendBillReminder(to, _ string, bills []models.Bill) error {
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = make(map[string][]models.Bill)
	}
	f.sent[to] = bills
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestScheduler(source BillSource, mailer Mailer, days int) *Scheduler {
	cfg := &config.Config{ReminderCron: "0 8 * * *", ReminderDays: days}
	return NewScheduler(cfg, source, mailer, testLogger())
}

func TestDueWithin(t *testing.T) {
	// Fixed mid-month date: 2026-09-10.
	now := time.Date(2026, time.September, 10, 8, 0, 0, 0, time.UTC)

	assert.True(t, dueWithin(10, now, 3))  // due today
	assert.True(t, dueWithin(13, now, 3))  // edge of window
	assert.False(t, dueWithin(14, now, 3)) // past window
	assert.False(t, dueWithin(9, now, 3))  // already passed
}

func TestDueWithinWrapsMonth(t *testing.T) {
	// 2026-09-29; September has 30 days, so a 3 day window covers
	// the 29th, 30th, 1st, and 2nd.
	now := time.Date(2026, time.September, 29, 8, 0, 0, 0, time.UTC)

	assert.True(t, dueWithin(30, now, 3))
	assert.True(t, dueWithin(1, now, 3))
	assert.True(t, dueWithin(2, now, 3))
	assert.False(t, dueWithin(3, now, 3))
}

func TestRunGroupsBillsPerUser(t *testing.T) {
	today := time.Now().Day()
	source := &fakeSource{bills: []repository.BillWithOwner{
		{Bill: models.Bill{UserID: 1, Name: "Electric", Amount: 120, DueDate: today}, UserName: "Ada", UserEmail: "ada@example.com"},
		{Bill: models.Bill{UserID: 1, Name: "Internet", Amount: 60, DueDate: today}, UserName: "Ada", UserEmail: "ada@example.com"},
		{Bill: models.Bill{UserID: 2, Name: "Rent", Amount: 1500, DueDate: today}, UserName: "Grace", UserEmail: "grace@example.com"},
	}}
	mailer := &fakeMailer{}

	s := newTestScheduler(source, mailer, 3)
	s.Run()

	require.Len(t, mailer.sent, 2)
	assert.Len(t, mailer.sent["ada@example.com"], 2)
	assert.Len(t, mailer.sent["grace@example.com"], 1)
}

func TestRunSkipsBillsOutsideWindow(t *testing.T) {
	now := time.Now()
	farDay := now.AddDate(0, 0, 15).Day()
	source := &fakeSource{bills: []repository.BillWithOwner{
		{Bill: models.Bill{UserID: 1, Name: "Rent", DueDate: farDay}, UserName: "Ada", UserEmail: "ada@example.com"},
	}}
	mailer := &fakeMailer{}

	s := newTestScheduler(source, mailer, 3)
	s.Run()

	assert.Empty(t, mailer.sent)
}

func TestRunSkipsUsersWithoutEmail(t *testing.T) {
	today := time.Now().Day()
	source := &fakeSource{bills: []repository.BillWithOwner{
		{Bill: models.Bill{UserID: 1, Name: "Electric", DueDate: today}, UserName: "Ada", UserEmail: ""},
	}}
	mailer := &fakeMailer{}

	s := newTestScheduler(source, mailer, 3)
	s.Run()

	assert.Empty(t, mailer.sent)
}

func TestRunToleratesListFailure(t *testing.T) {
	s := newTestScheduler(&fakeSource{err: errors.New("db down")}, &fakeMailer{}, 3)
	// Must not panic.
	s.Run()
}

func TestRunContinuesAfterSendFailure(t *testing.T) {
	today := time.Now().Day()
	source := &fakeSource{bills: []repository.BillWithOwner{
		{Bill: models.Bill{UserID: 1, Name: "Electric", DueDate: today}, UserName: "Ada", UserEmail: "ada@example.com"},
	}}
	s := newTestScheduler(source, &fakeMailer{err: errors.New("smtp down")}, 3)
	// Failures are logged, not raised.
	s.Run()
}
