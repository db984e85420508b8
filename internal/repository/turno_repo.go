package repository

import (
	"context"
	"time"

	"dentalis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurnoRepository interface {
	Create(ctx context.Context, t *model.Turno) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	Update(ctx context.Context, t *model.Turno) error
	// Agenda lists a dentist's appointments for one calendar day.
	Agenda(ctx context.Context, odontologoID uuid.UUID, dia time.Time) ([]model.Turno, error)
	// ListParaRecordatorio returns active turnos starting within [now, hasta]
	// whose reminder was not yet enqueued. Patients are preloaded because the
	// reminder needs their email.
	ListParaRecordatorio(ctx context.Context, hasta time.Time, limit int) ([]model.Turno, error)
	MarcarRecordatorioEnviado(ctx context.Context, id uuid.UUID) error
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) Create(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Preload("Paciente").
		Preload("Odontologo").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) Update(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *turnoRepo) Agenda(ctx context.Context, odontologoID uuid.UUID, dia time.Time) ([]model.Turno, error) {
	desde := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	hasta := desde.Add(24 * time.Hour)

	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Where("odontologo_id = ? AND fecha >= ? AND fecha < ?", odontologoID, desde, hasta).
		Preload("Paciente").
		Order("fecha ASC").
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) ListParaRecordatorio(ctx context.Context, hasta time.Time, limit int) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Where("estado IN ? AND recordatorio_enviado = false AND fecha BETWEEN ? AND ?",
			[]string{model.TurnoProgramado, model.TurnoConfirmado}, time.Now(), hasta).
		Preload("Paciente").
		Order("fecha ASC").
		Limit(limit).
		Find(&turnos).Error
	return turnos, err
}

func (r *turnoRepo) MarcarRecordatorioEnviado(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Turno{}).
		Where("id = ?", id).
		Update("recordatorio_enviado", true).Error
}
