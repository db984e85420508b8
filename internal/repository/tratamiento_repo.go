package repository

import (
	"context"

	"dentalis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TratamientoRepository interface {
	Create(ctx context.Context, t *model.Tratamiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tratamiento, error)
	ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]model.Tratamiento, error)
}

type tratamientoRepo struct{ db *gorm.DB }

func NewTratamientoRepository(db *gorm.DB) TratamientoRepository {
	return &tratamientoRepo{db: db}
}

func (r *tratamientoRepo) Create(ctx context.Context, t *model.Tratamiento) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tratamientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tratamiento, error) {
	var t model.Tratamiento
	err := r.db.WithContext(ctx).
		Preload("Arancel").
		Preload("Cobro").
		Preload("Paciente").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tratamientoRepo) ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]model.Tratamiento, error) {
	var tratamientos []model.Tratamiento
	err := r.db.WithContext(ctx).
		Where("paciente_id = ?", pacienteID).
		Preload("Arancel").
		Preload("Cobro").
		Order("created_at DESC").
		Find(&tratamientos).Error
	return tratamientos, err
}
