package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/scheduly/booking-core/internal/models"
)

// ======================================================
// FALLBACK LOG
// ======================================================

// FallbackRecord é uma entrada do log local append-only. O payload é o
// Appointment serializado; LocalID identifica o registro até o job de
// reconciliação levá-lo ao store remoto.
type FallbackRecord struct {
	ID      uint   `gorm:"primaryKey"`
	LocalID string `gorm:"size:64;uniqueIndex"`
	Nonce   string `gorm:"size:64;uniqueIndex"`
	Payload string `gorm:"type:text"`

	CreatedAt time.Time
}

// FallbackLog é o log durável local (SQLite embutido) que recebe
// agendamentos quando o store remoto está fora. Escrita única sob
// mutex; leitores nunca mutam.
type FallbackLog struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewFallbackLog(path string) (*FallbackLog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&FallbackRecord{}); err != nil {
		return nil, err
	}

	return &FallbackLog{db: db}, nil
}

// Append grava o agendamento e devolve o identificador local gerado.
// Idempotente por nonce: um append repetido devolve o registro original.
func (l *FallbackLog) Append(
	ctx context.Context,
	nonce string,
	ap *models.Appointment,
) (string, error) {

	l.mu.Lock()
	defer l.mu.Unlock()

	var existing FallbackRecord
	err := l.db.WithContext(ctx).
		Where("nonce = ?", nonce).
		First(&existing).Error
	if err == nil {
		return existing.LocalID, nil
	}

	payload, err := json.Marshal(ap)
	if err != nil {
		return "", err
	}

	rec := FallbackRecord{
		LocalID: uuid.NewString(),
		Nonce:   nonce,
		Payload: string(payload),
	}

	if err := l.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}

	return rec.LocalID, nil
}

// List devolve os agendamentos represados, do mais recente para o mais
// antigo, para reconstruir a lista administrativa quando o remoto cai.
func (l *FallbackLog) List(ctx context.Context) ([]models.Appointment, error) {
	var recs []FallbackRecord
	if err := l.db.WithContext(ctx).
		Order("id DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}

	apps := make([]models.Appointment, 0, len(recs))
	for _, rec := range recs {
		var ap models.Appointment
		if err := json.Unmarshal([]byte(rec.Payload), &ap); err != nil {
			continue
		}
		apps = append(apps, ap)
	}
	return apps, nil
}

// FindByNonce informa se um nonce já foi absorvido pelo log.
func (l *FallbackLog) FindByNonce(ctx context.Context, nonce string) (string, bool, error) {
	var rec FallbackRecord
	err := l.db.WithContext(ctx).
		Where("nonce = ?", nonce).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.LocalID, true, nil
}

// Len conta as entradas pendentes de reconciliação.
func (l *FallbackLog) Len(ctx context.Context) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Model(&FallbackRecord{}).
		Count(&count).Error
	return count, err
}
