package persistence

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
)

// ======================================================
// RESILIENT WRAPPER
// ======================================================

// RemoteAppointments é o recorte do store remoto que o wrapper usa.
type RemoteAppointments interface {
	InsertAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointmentByNonce(ctx context.Context, nonce string) (*models.Appointment, error)
	ListAppointmentsByTenant(ctx context.Context, tenantID uint) ([]models.Appointment, error)
}

// Resilient tenta o store remoto primeiro, sob prazo; qualquer falha
// remota desvia para o log durável local. Uma submissão nunca é
// perdida em silêncio: ou persiste (remoto ou fallback) ou devolve
// FatalPersistenceError para o chamador oferecer retry.
type Resilient struct {
	remote   RemoteAppointments
	fallback *FallbackLog
	nonces   NonceRegistry
	timeout  time.Duration
	logger   *zap.Logger
}

func NewResilient(
	remote RemoteAppointments,
	fallback *FallbackLog,
	nonces NonceRegistry,
	timeout time.Duration,
	logger *zap.Logger,
) *Resilient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resilient{
		remote:   remote,
		fallback: fallback,
		nonces:   nonces,
		timeout:  timeout,
		logger:   logger,
	}
}

// Persist grava o agendamento. Idempotente por nonce: a segunda chamada
// devolve o comprovante da primeira.
func (r *Resilient) Persist(
	ctx context.Context,
	nonce string,
	ap *models.Appointment,
) (domain.Receipt, error) {

	if receipt, ok, err := r.nonces.Get(ctx, nonce); err == nil && ok {
		return receipt, nil
	}

	ap.Nonce = nonce

	rctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	remoteErr := r.remote.InsertAppointment(rctx, ap)
	if remoteErr == nil {
		receipt := domain.Receipt{
			ID:  strconv.FormatUint(uint64(ap.ID), 10),
			Via: domain.ViaRemote,
		}
		r.remember(ctx, nonce, receipt)
		return receipt, nil
	}

	// O insert pode ter falhado porque o nonce já existe (retry
	// correndo contra uma resposta lenta). Nesse caso o primeiro
	// resultado vale.
	if existing, err := r.remote.GetAppointmentByNonce(rctx, nonce); err == nil && existing != nil {
		receipt := domain.Receipt{
			ID:  strconv.FormatUint(uint64(existing.ID), 10),
			Via: domain.ViaRemote,
		}
		r.remember(ctx, nonce, receipt)
		return receipt, nil
	}

	r.logger.Warn("remote persist failed, using fallback log",
		zap.String("nonce", nonce),
		zap.Error(remoteErr),
	)

	localID, fallbackErr := r.fallback.Append(ctx, nonce, ap)
	if fallbackErr != nil {
		r.logger.Error("fallback append failed",
			zap.String("nonce", nonce),
			zap.Error(fallbackErr),
		)
		return domain.Receipt{}, httperr.FatalPersistenceError{
			Remote:   remoteErr,
			Fallback: fallbackErr,
		}
	}

	receipt := domain.Receipt{ID: localID, Via: domain.ViaFallback}
	r.remember(ctx, nonce, receipt)
	return receipt, nil
}

// ListByTenant lê do remoto; se ele estiver fora, reconstrói a lista a
// partir do log local (mais recente primeiro).
func (r *Resilient) ListByTenant(
	ctx context.Context,
	tenantID uint,
) ([]models.Appointment, error) {

	rctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	apps, err := r.remote.ListAppointmentsByTenant(rctx, tenantID)
	if err == nil {
		return apps, nil
	}

	r.logger.Warn("remote list failed, serving fallback log",
		zap.Uint("tenant_id", tenantID),
		zap.Error(err),
	)
	return r.fallback.List(ctx)
}

func (r *Resilient) remember(ctx context.Context, nonce string, receipt domain.Receipt) {
	if err := r.nonces.Put(ctx, nonce, receipt); err != nil {
		r.logger.Warn("nonce registry put failed",
			zap.String("nonce", nonce),
			zap.Error(err),
		)
	}
}
