package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
)

// submitRecorder registra cada chamada de submissão.
type submitRecorder struct {
	mu      sync.Mutex
	calls   []string // nonces
	err     error
	block   chan struct{} // se setado, segura a submissão até fechar
	receipt booking.Receipt
}

func (r *submitRecorder) submit(_ context.Context, nonce string, _ booking.Selection) (booking.Receipt, error) {
	r.mu.Lock()
	r.calls = append(r.calls, nonce)
	block := r.block
	r.mu.Unlock()

	if block != nil {
		<-block
	}
	if r.err != nil {
		return booking.Receipt{}, r.err
	}
	return r.receipt, nil
}

func (r *submitRecorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func testConfig() Config {
	return Config{
		Hours: booking.BusinessHours{
			WorkStart:   "09:00",
			WorkEnd:     "20:00",
			SlotStepMin: 30,
			Timezone:    "America/Sao_Paulo",
		},
		RequirePayment: true,
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
}

func newTestWizard(rec *submitRecorder) *Wizard {
	return New(testConfig(), time.UTC, fixedNow, rec.submit)
}

func fullInput() Input {
	return Input{
		ServiceID:      1,
		ProfessionalID: 2,
		Date:           "2026-03-10",
		Slot:           "14:00",
		ClientName:     "Ana",
		ClientPhone:    "11999999999",
		PaymentMethod:  booking.PaymentAtShop,
	}
}

// Percorre o fluxo inteiro até Submitted.
func driveToSubmitted(t *testing.T, w *Wizard, in Input) {
	t.Helper()
	ctx := context.Background()
	for w.Step() != StepSubmitted {
		require.NoError(t, w.Advance(ctx, in))
	}
}

func TestAdvance_MissingServiceIsNoOp(t *testing.T) {
	rec := &submitRecorder{}
	w := newTestWizard(rec)

	err := w.Advance(context.Background(), Input{})
	assert.Equal(t, "missing_service", httperr.ValidationCode(err))
	assert.Equal(t, StepSelectService, w.Step())
	assert.Zero(t, rec.callCount())
}

func TestAdvance_HappyPath(t *testing.T) {
	rec := &submitRecorder{receipt: booking.Receipt{ID: "10", Via: booking.ViaRemote}}
	w := newTestWizard(rec)
	ctx := context.Background()
	in := fullInput()

	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepSelectProfessional, w.Step())

	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepSelectDate, w.Step())

	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepEnterDetails, w.Step())

	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepChoosePayment, w.Step())

	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepSubmitted, w.Step())

	require.NotNil(t, w.Receipt())
	assert.Equal(t, "10", w.Receipt().ID)
	assert.Equal(t, 1, rec.callCount())
}

func TestAdvance_SlotMustBelongToGrid(t *testing.T) {
	rec := &submitRecorder{}
	w := newTestWizard(rec)
	ctx := context.Background()

	in := fullInput()
	in.Slot = "14:10" // fora da grade de 30 em 30

	require.NoError(t, w.Advance(ctx, in))
	require.NoError(t, w.Advance(ctx, in))

	err := w.Advance(ctx, in)
	assert.Equal(t, "slot_unavailable", httperr.ValidationCode(err))
	assert.Equal(t, StepSelectDate, w.Step())
}

func TestRetreat_PreservesCapturedData(t *testing.T) {
	rec := &submitRecorder{}
	w := newTestWizard(rec)
	ctx := context.Background()
	in := fullInput()

	require.NoError(t, w.Advance(ctx, in))
	require.NoError(t, w.Advance(ctx, in))
	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepEnterDetails, w.Step())

	before := w.Selection()

	require.NoError(t, w.Retreat())
	assert.Equal(t, StepSelectDate, w.Step())
	assert.Equal(t, before, w.Selection())

	// Avança de novo sem re-entrar dados: round-trip exato.
	require.NoError(t, w.Advance(ctx, Input{}))
	assert.Equal(t, StepEnterDetails, w.Step())
	assert.Equal(t, before, w.Selection())
}

func TestRetreat_AtFirstStep(t *testing.T) {
	w := newTestWizard(&submitRecorder{})
	err := w.Retreat()
	assert.True(t, httperr.IsBusiness(err, "at_first_step"))
}

func TestReset_ClearsEverythingAndRotatesNonce(t *testing.T) {
	rec := &submitRecorder{}
	w := newTestWizard(rec)
	ctx := context.Background()

	require.NoError(t, w.Advance(ctx, fullInput()))
	oldNonce := w.Nonce()

	require.NoError(t, w.Reset())
	assert.Equal(t, StepSelectService, w.Step())
	assert.Equal(t, booking.Selection{}, w.Selection())
	assert.NotEqual(t, oldNonce, w.Nonce())
}

func TestSubmit_FatalFailureStaysOnPayment(t *testing.T) {
	rec := &submitRecorder{err: httperr.FatalPersistenceError{Remote: errors.New("down")}}
	w := newTestWizard(rec)
	ctx := context.Background()
	in := fullInput()

	for w.Step() != StepChoosePayment {
		require.NoError(t, w.Advance(ctx, in))
	}

	err := w.Advance(ctx, in)
	assert.True(t, httperr.IsFatalPersistence(err))
	assert.Equal(t, StepChoosePayment, w.Step())
	assert.Nil(t, w.Receipt())

	// Dados intactos para o retry.
	assert.Equal(t, "Ana", w.Selection().ClientName)

	// Retry com o mesmo nonce.
	rec.mu.Lock()
	rec.err = nil
	firstNonce := rec.calls[0]
	rec.mu.Unlock()

	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, StepSubmitted, w.Step())

	rec.mu.Lock()
	assert.Equal(t, []string{firstNonce, firstNonce}, rec.calls)
	rec.mu.Unlock()
}

func TestSubmit_ReentrantAdvanceIgnoredWhileInFlight(t *testing.T) {
	rec := &submitRecorder{
		block:   make(chan struct{}),
		receipt: booking.Receipt{ID: "7", Via: booking.ViaRemote},
	}
	w := newTestWizard(rec)
	ctx := context.Background()
	in := fullInput()

	for w.Step() != StepChoosePayment {
		require.NoError(t, w.Advance(ctx, in))
	}

	done := make(chan error, 1)
	go func() { done <- w.Advance(ctx, in) }()

	// Espera a submissão entrar em voo.
	require.Eventually(t, w.inFlight, time.Second, time.Millisecond)

	// Duplo clique: ignorado, sem segunda submissão.
	require.NoError(t, w.Advance(ctx, in))
	assert.Equal(t, 1, rec.callCount())

	close(rec.block)
	require.NoError(t, <-done)
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Equal(t, 1, rec.callCount())
}

func TestAdvance_AfterSubmittedIsNoOp(t *testing.T) {
	rec := &submitRecorder{receipt: booking.Receipt{ID: "3", Via: booking.ViaFallback}}
	w := newTestWizard(rec)

	driveToSubmitted(t, w, fullInput())

	require.NoError(t, w.Advance(context.Background(), fullInput()))
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Equal(t, 1, rec.callCount())
}

func TestAdvance_PaymentOptionalSkipsStep(t *testing.T) {
	cfg := testConfig()
	cfg.RequirePayment = false

	rec := &submitRecorder{receipt: booking.Receipt{ID: "5", Via: booking.ViaRemote}}
	w := New(cfg, time.UTC, fixedNow, rec.submit)

	in := fullInput()
	in.PaymentMethod = ""

	driveToSubmitted(t, w, in)
	assert.Equal(t, 1, rec.callCount())
}

func TestAdvance_DetailsValidationBlocks(t *testing.T) {
	rec := &submitRecorder{}
	w := newTestWizard(rec)
	ctx := context.Background()

	in := fullInput()
	in.ClientPhone = "abc"

	require.NoError(t, w.Advance(ctx, in))
	require.NoError(t, w.Advance(ctx, in))
	require.NoError(t, w.Advance(ctx, in))

	err := w.Advance(ctx, in)
	assert.Equal(t, "invalid_phone", httperr.ValidationCode(err))
	assert.Equal(t, StepEnterDetails, w.Step())
	assert.Zero(t, rec.callCount())
}
