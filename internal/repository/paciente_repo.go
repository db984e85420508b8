package repository

import (
	"context"

	"dentalis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PacienteRepository interface {
	Create(ctx context.Context, p *model.Paciente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
	FindByDocumento(ctx context.Context, documento string) (*model.Paciente, error)
	Update(ctx context.Context, p *model.Paciente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// List searches by apellido/documento prefix when q is non-empty.
	List(ctx context.Context, q string, page, limit int) ([]model.Paciente, int64, error)
	CreateHistoria(ctx context.Context, h *model.HistoriaClinica) error
	ListHistoria(ctx context.Context, pacienteID uuid.UUID) ([]model.HistoriaClinica, error)
}

type pacienteRepo struct{ db *gorm.DB }

func NewPacienteRepository(db *gorm.DB) PacienteRepository { return &pacienteRepo{db: db} }

func (r *pacienteRepo) Create(ctx context.Context, p *model.Paciente) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pacienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	var p model.Paciente
	err := r.db.WithContext(ctx).Preload("ObraSocial").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pacienteRepo) FindByDocumento(ctx context.Context, documento string) (*model.Paciente, error) {
	var p model.Paciente
	err := r.db.WithContext(ctx).Preload("ObraSocial").First(&p, "documento = ?", documento).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pacienteRepo) Update(ctx context.Context, p *model.Paciente) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pacienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Paciente{}).
		Where("id = ?", id).
		Update("activo", false).Error
}

func (r *pacienteRepo) List(ctx context.Context, q string, page, limit int) ([]model.Paciente, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Paciente{}).Where("activo = true")
	if q != "" {
		like := q + "%"
		base = base.Where("apellido ILIKE ? OR documento LIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var pacientes []model.Paciente
	err := base.
		Preload("ObraSocial").
		Order("apellido ASC, nombre ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&pacientes).Error
	return pacientes, total, err
}

func (r *pacienteRepo) CreateHistoria(ctx context.Context, h *model.HistoriaClinica) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *pacienteRepo) ListHistoria(ctx context.Context, pacienteID uuid.UUID) ([]model.HistoriaClinica, error) {
	var historia []model.HistoriaClinica
	err := r.db.WithContext(ctx).
		Where("paciente_id = ?", pacienteID).
		Order("created_at DESC").
		Find(&historia).Error
	return historia, err
}
