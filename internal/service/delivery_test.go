package service

import (
	"context"
	"errors"
	"testing"

	"github.com/windoze95/lookforrecipes/internal/models"
	"github.com/windoze95/lookforrecipes/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type deliveryRecorder struct {
	attempts  []string
	fallbacks int
	failing   map[string]bool
}

func (r *deliveryRecorder) send(ctx context.Context, recipient models.Recipient, c models.Candidate) error {
	r.attempts = append(r.attempts, c.Title)
	if r.failing[c.Title] {
		return errors.New("wrong file identifier/HTTP URL specified")
	}
	return nil
}

func (r *deliveryRecorder) fallback(ctx context.Context, recipient models.Recipient) {
	r.fallbacks++
}

func candidates(titles ...string) []models.Candidate {
	out := make([]models.Candidate, len(titles))
	for i, title := range titles {
		out[i] = testutil.TestCandidate(title, "https://x/"+title+".gif")
	}
	return out
}

func newTestDeliveryService() (*DeliveryService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewDeliveryService(zap.New(core)), logs
}

func TestDeliver_StopsAtFirstSuccess(t *testing.T) {
	svc, _ := newTestDeliveryService()
	rec := &deliveryRecorder{failing: map[string]bool{"A": true}}

	outcome := svc.Deliver(context.Background(), candidates("A", "B", "C"), 42, rec.send, rec.fallback)

	if outcome != models.Success {
		t.Errorf("outcome = %v, want success", outcome)
	}
	if len(rec.attempts) != 2 || rec.attempts[0] != "A" || rec.attempts[1] != "B" {
		t.Errorf("attempts = %v, want [A B]", rec.attempts)
	}
	if rec.fallbacks != 0 {
		t.Errorf("fallback called %d times, want 0", rec.fallbacks)
	}
}

func TestDeliver_AllFailRunsFallbackOnce(t *testing.T) {
	svc, logs := newTestDeliveryService()
	rec := &deliveryRecorder{failing: map[string]bool{"A": true, "B": true}}

	outcome := svc.Deliver(context.Background(), candidates("A", "B"), 42, rec.send, rec.fallback)

	if outcome != models.Exhausted {
		t.Errorf("outcome = %v, want exhausted", outcome)
	}
	if len(rec.attempts) != 2 {
		t.Errorf("attempts = %v, want 2", rec.attempts)
	}
	if rec.fallbacks != 1 {
		t.Errorf("fallback called %d times, want 1", rec.fallbacks)
	}
	if n := logs.FilterMessage("failed to send candidate").Len(); n != 2 {
		t.Errorf("logged %d send failures, want 2", n)
	}
}

func TestDeliver_EmptyCandidates(t *testing.T) {
	svc, _ := newTestDeliveryService()
	rec := &deliveryRecorder{}

	outcome := svc.Deliver(context.Background(), nil, 42, rec.send, rec.fallback)

	if outcome != models.Exhausted {
		t.Errorf("outcome = %v, want exhausted", outcome)
	}
	if len(rec.attempts) != 0 {
		t.Errorf("attempts = %v, want none", rec.attempts)
	}
	if rec.fallbacks != 1 {
		t.Errorf("fallback called %d times, want 1", rec.fallbacks)
	}
}

func TestDeliver_FirstCandidateSucceeds(t *testing.T) {
	svc, _ := newTestDeliveryService()
	rec := &deliveryRecorder{}

	outcome := svc.Deliver(context.Background(), candidates("A", "B", "C"), 42, rec.send, rec.fallback)

	if outcome != models.Success {
		t.Errorf("outcome = %v, want success", outcome)
	}
	if len(rec.attempts) != 1 {
		t.Errorf("attempts = %v, want [A]", rec.attempts)
	}
}

func TestDeliver_KeepsSuppliedOrder(t *testing.T) {
	svc, _ := newTestDeliveryService()
	rec := &deliveryRecorder{failing: map[string]bool{"zeta": true, "alpha": true, "mu": true}}

	svc.Deliver(context.Background(), candidates("zeta", "alpha", "mu"), 42, rec.send, rec.fallback)

	want := []string{"zeta", "alpha", "mu"}
	for i := range want {
		if rec.attempts[i] != want[i] {
			t.Fatalf("attempts = %v, want %v", rec.attempts, want)
		}
	}
}

func TestDeliver_PassesRecipient(t *testing.T) {
	svc, _ := newTestDeliveryService()
	var got models.Recipient
	send := func(ctx context.Context, recipient models.Recipient, c models.Candidate) error {
		got = recipient
		return nil
	}

	svc.Deliver(context.Background(), candidates("A"), 99, send, func(context.Context, models.Recipient) {})
	if got != 99 {
		t.Errorf("recipient = %d, want 99", got)
	}
}
