package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
)

// ======================================================
// STEPS
// ======================================================

type Step string

const (
	StepSelectService      Step = "service"
	StepSelectProfessional Step = "professional"
	StepSelectDate         Step = "date"
	StepEnterDetails       Step = "details"
	StepChoosePayment      Step = "payment"
	StepSubmitted          Step = "submitted"
)

// Ordem obrigatória dos passos (Submitted é terminal).
var stepOrder = []Step{
	StepSelectService,
	StepSelectProfessional,
	StepSelectDate,
	StepEnterDetails,
	StepChoosePayment,
	StepSubmitted,
}

func previousStep(s Step) Step {
	for i := 1; i < len(stepOrder); i++ {
		if stepOrder[i] == s {
			return stepOrder[i-1]
		}
	}
	return stepOrder[0]
}

// ======================================================
// WIZARD
// ======================================================

type Config struct {
	Hours booking.BusinessHours

	// RequireEmail: as variantes históricas do fluxo divergiam;
	// decidido por configuração, não por palpite.
	RequireEmail bool

	// RequirePayment desligado permite pular o passo de pagamento.
	RequirePayment bool

	// PixCopyPaste é opaco: congelado na criação da sessão e devolvido
	// ao cliente junto do comprovante quando o método é pix.
	PixCopyPaste string
}

// SubmitFunc entrega a seleção completa à fábrica + persistência resiliente.
// Chamado no máximo uma vez por nonce.
type SubmitFunc func(ctx context.Context, nonce string, sel booking.Selection) (booking.Receipt, error)

// Input carrega os dados capturados no passo atual. Campos zero são
// ignorados: avançar de novo após um Retreat não exige re-entrada.
type Input struct {
	ServiceID      uint                  `json:"service_id"`
	ProfessionalID uint                  `json:"professional_id"`
	Date           string                `json:"date"` // YYYY-MM-DD
	Slot           string                `json:"slot"` // HH:MM
	ClientName     string                `json:"client_name"`
	ClientEmail    string                `json:"client_email"`
	ClientPhone    string                `json:"client_phone"`
	PaymentMethod  booking.PaymentMethod `json:"payment_method"`
}

// Wizard conduz uma sessão de agendamento pelos passos ordenados.
// Seguro para uso concorrente; uma submissão em voo bloqueia novas
// tentativas de Advance sem bloquear a goroutine chamadora.
type Wizard struct {
	mu sync.Mutex

	cfg   Config
	loc   *time.Location
	now   func() time.Time
	step  Step
	sel   booking.Selection
	nonce string

	submitting bool
	receipt    *booking.Receipt
	submit     SubmitFunc
}

func New(cfg Config, loc *time.Location, now func() time.Time, submit SubmitFunc) *Wizard {
	if now == nil {
		now = time.Now
	}
	return &Wizard{
		cfg:    cfg,
		loc:    loc,
		now:    now,
		step:   StepSelectService,
		nonce:  uuid.NewString(),
		submit: submit,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Selection() booking.Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sel
}

func (w *Wizard) Nonce() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nonce
}

// PixCopyPaste devolve o código PIX da sessão (imutável após a criação).
func (w *Wizard) PixCopyPaste() string {
	return w.cfg.PixCopyPaste
}

// Receipt retorna o comprovante da submissão, se houve.
func (w *Wizard) Receipt() *booking.Receipt {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.receipt == nil {
		return nil
	}
	r := *w.receipt
	return &r
}

// ======================================================
// TRANSITIONS
// ======================================================

// Advance valida a captura do passo atual e avança. Falha de validação
// não muda o estado e não toca a persistência. No passo de pagamento,
// avançar dispara a submissão; chamadas reentrantes durante uma
// submissão em voo são ignoradas.
func (w *Wizard) Advance(ctx context.Context, in Input) error {
	w.mu.Lock()

	if w.step == StepSubmitted {
		w.mu.Unlock()
		return nil
	}

	if w.submitting {
		w.mu.Unlock()
		return nil
	}

	w.absorb(in)

	switch w.step {

	case StepSelectService:
		if w.sel.ServiceID == 0 {
			w.mu.Unlock()
			return httperr.ErrValidation("missing_service")
		}
		w.step = StepSelectProfessional

	case StepSelectProfessional:
		if w.sel.ProfessionalID == 0 {
			w.mu.Unlock()
			return httperr.ErrValidation("missing_professional")
		}
		w.step = StepSelectDate

	case StepSelectDate:
		if err := w.validateSlot(); err != nil {
			w.mu.Unlock()
			return err
		}
		w.step = StepEnterDetails

	case StepEnterDetails:
		if err := w.sel.ValidateDetails(w.cfg.RequireEmail); err != nil {
			w.mu.Unlock()
			return err
		}
		w.step = StepChoosePayment

	case StepChoosePayment:
		if w.cfg.RequirePayment && !booking.IsValidPaymentMethod(w.sel.PaymentMethod) {
			w.mu.Unlock()
			return httperr.ErrValidation("missing_payment_method")
		}
		return w.beginSubmit(ctx)
	}

	w.mu.Unlock()
	return nil
}

// Retreat volta ao passo anterior preservando tudo que já foi capturado.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepSubmitted || w.submitting {
		return httperr.ErrBusiness("already_submitted")
	}

	if w.step == StepSelectService {
		return httperr.ErrBusiness("at_first_step")
	}

	w.step = previousStep(w.step)
	return nil
}

// Reset volta ao início e descarta a captura. Um novo nonce é gerado:
// a próxima submissão é uma tentativa distinta.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return httperr.ErrBusiness("submission_in_flight")
	}

	w.step = StepSelectService
	w.sel = booking.Selection{}
	w.nonce = uuid.NewString()
	w.receipt = nil
	return nil
}

// ======================================================
// INTERNALS
// ======================================================

func (w *Wizard) inFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// absorb aplica ao estado apenas os campos preenchidos do input.
func (w *Wizard) absorb(in Input) {
	if in.ServiceID != 0 {
		w.sel.ServiceID = in.ServiceID
	}
	if in.ProfessionalID != 0 {
		w.sel.ProfessionalID = in.ProfessionalID
	}
	if in.Date != "" {
		w.sel.Date = in.Date
	}
	if in.Slot != "" {
		w.sel.Slot = in.Slot
	}
	if in.ClientName != "" {
		w.sel.ClientName = in.ClientName
	}
	if in.ClientEmail != "" {
		w.sel.ClientEmail = in.ClientEmail
	}
	if in.ClientPhone != "" {
		w.sel.ClientPhone = in.ClientPhone
	}
	if in.PaymentMethod != "" {
		w.sel.PaymentMethod = in.PaymentMethod
	}
}

// validateSlot confere data e pertencimento do horário à grade do dia.
func (w *Wizard) validateSlot() error {
	if w.sel.Date == "" {
		return httperr.ErrValidation("missing_date")
	}
	if w.sel.Slot == "" {
		return httperr.ErrValidation("missing_slot")
	}

	date, err := time.ParseInLocation("2006-01-02", w.sel.Date, w.loc)
	if err != nil {
		return httperr.ErrValidation("invalid_date")
	}

	slots, err := booking.GenerateSlots(date, w.cfg.Hours, w.now())
	if err != nil {
		return httperr.ErrValidation("invalid_date")
	}

	for _, s := range slots {
		if s == w.sel.Slot {
			return nil
		}
	}
	return httperr.ErrValidation("slot_unavailable")
}

// beginSubmit roda a submissão fora do lock. Exatamente uma chamada à
// fábrica por entrada em Submitted; falha fatal devolve o wizard ao
// passo de pagamento com os dados intactos.
func (w *Wizard) beginSubmit(ctx context.Context) error {
	w.submitting = true
	nonce := w.nonce
	sel := w.sel
	w.mu.Unlock()

	receipt, err := w.submit(ctx, nonce, sel)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.submitting = false

	if err != nil {
		// Permanece em ChoosePayment; o chamador oferece retry.
		return err
	}

	w.receipt = &receipt
	w.step = StepSubmitted
	return nil
}
