package repository

import (
	"context"

	"dentalis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CobroRepository interface {
	Create(ctx context.Context, c *model.Cobro) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cobro, error)
	FindByTratamiento(ctx context.Context, tratamientoID uuid.UUID) (*model.Cobro, error)
	Update(ctx context.Context, c *model.Cobro) error
	ListBySesion(ctx context.Context, sesionCajaID uuid.UUID) ([]model.Cobro, error)
	ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]model.Cobro, error)
	// ListPendientes excludes zero-total cobros: they never accept payments,
	// so showing them as collectable would be misleading.
	ListPendientes(ctx context.Context, page, limit int) ([]model.Cobro, int64, error)
}

type cobroRepo struct{ db *gorm.DB }

func NewCobroRepository(db *gorm.DB) CobroRepository { return &cobroRepo{db: db} }

func (r *cobroRepo) Create(ctx context.Context, c *model.Cobro) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cobroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cobro, error) {
	var c model.Cobro
	err := r.db.WithContext(ctx).Preload("Tratamiento").Preload("MetodoPago").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cobroRepo) FindByTratamiento(ctx context.Context, tratamientoID uuid.UUID) (*model.Cobro, error) {
	var c model.Cobro
	err := r.db.WithContext(ctx).First(&c, "tratamiento_id = ?", tratamientoID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cobroRepo) Update(ctx context.Context, c *model.Cobro) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cobroRepo) ListBySesion(ctx context.Context, sesionCajaID uuid.UUID) ([]model.Cobro, error) {
	var cobros []model.Cobro
	err := r.db.WithContext(ctx).
		Where("sesion_caja_id = ?", sesionCajaID).
		Order("updated_at ASC").
		Find(&cobros).Error
	return cobros, err
}

func (r *cobroRepo) ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]model.Cobro, error) {
	var cobros []model.Cobro
	err := r.db.WithContext(ctx).
		Joins("JOIN tratamientos ON tratamientos.id = cobros.tratamiento_id").
		Where("tratamientos.paciente_id = ?", pacienteID).
		Preload("Tratamiento").
		Order("cobros.created_at DESC").
		Find(&cobros).Error
	return cobros, err
}

func (r *cobroRepo) ListPendientes(ctx context.Context, page, limit int) ([]model.Cobro, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Cobro{}).
		Where("estado <> ? AND monto_total > 0", model.CobroPagado)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var cobros []model.Cobro
	err := base.
		Preload("Tratamiento").
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&cobros).Error
	return cobros, total, err
}
