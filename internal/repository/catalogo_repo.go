package repository

import (
	"context"

	"dentalis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository groups the three back-office catalogs: obras sociales,
// metodos de pago and aranceles.
type CatalogoRepository interface {
	CreateObraSocial(ctx context.Context, os *model.ObraSocial) error
	FindObraSocial(ctx context.Context, id uuid.UUID) (*model.ObraSocial, error)
	UpdateObraSocial(ctx context.Context, os *model.ObraSocial) error
	ListObrasSociales(ctx context.Context, incluirInactivas bool) ([]model.ObraSocial, error)

	CreateMetodoPago(ctx context.Context, mp *model.MetodoPago) error
	FindMetodoPago(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error)
	UpdateMetodoPago(ctx context.Context, mp *model.MetodoPago) error
	ListMetodosPago(ctx context.Context, incluirInactivos bool) ([]model.MetodoPago, error)

	CreateArancel(ctx context.Context, a *model.Arancel) error
	FindArancel(ctx context.Context, id uuid.UUID) (*model.Arancel, error)
	FindArancelPorCodigo(ctx context.Context, codigo string) (*model.Arancel, error)
	UpdateArancel(ctx context.Context, a *model.Arancel) error
	ListAranceles(ctx context.Context, incluirInactivos bool) ([]model.Arancel, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

// ── Obras sociales ────────────────────────────────────────────────────────────

func (r *catalogoRepo) CreateObraSocial(ctx context.Context, os *model.ObraSocial) error {
	return r.db.WithContext(ctx).Create(os).Error
}

func (r *catalogoRepo) FindObraSocial(ctx context.Context, id uuid.UUID) (*model.ObraSocial, error) {
	var os model.ObraSocial
	if err := r.db.WithContext(ctx).First(&os, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &os, nil
}

func (r *catalogoRepo) UpdateObraSocial(ctx context.Context, os *model.ObraSocial) error {
	return r.db.WithContext(ctx).Save(os).Error
}

func (r *catalogoRepo) ListObrasSociales(ctx context.Context, incluirInactivas bool) ([]model.ObraSocial, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	var obras []model.ObraSocial
	err := q.Find(&obras).Error
	return obras, err
}

// ── Metodos de pago ───────────────────────────────────────────────────────────

func (r *catalogoRepo) CreateMetodoPago(ctx context.Context, mp *model.MetodoPago) error {
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *catalogoRepo) FindMetodoPago(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	var mp model.MetodoPago
	if err := r.db.WithContext(ctx).First(&mp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mp, nil
}

func (r *catalogoRepo) UpdateMetodoPago(ctx context.Context, mp *model.MetodoPago) error {
	return r.db.WithContext(ctx).Save(mp).Error
}

func (r *catalogoRepo) ListMetodosPago(ctx context.Context, incluirInactivos bool) ([]model.MetodoPago, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var metodos []model.MetodoPago
	err := q.Find(&metodos).Error
	return metodos, err
}

// ── Aranceles ─────────────────────────────────────────────────────────────────

func (r *catalogoRepo) CreateArancel(ctx context.Context, a *model.Arancel) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *catalogoRepo) FindArancel(ctx context.Context, id uuid.UUID) (*model.Arancel, error) {
	var a model.Arancel
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *catalogoRepo) FindArancelPorCodigo(ctx context.Context, codigo string) (*model.Arancel, error) {
	var a model.Arancel
	if err := r.db.WithContext(ctx).First(&a, "codigo = ?", codigo).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *catalogoRepo) UpdateArancel(ctx context.Context, a *model.Arancel) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *catalogoRepo) ListAranceles(ctx context.Context, incluirInactivos bool) ([]model.Arancel, error) {
	q := r.db.WithContext(ctx).Order("codigo ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var aranceles []model.Arancel
	err := q.Find(&aranceles).Error
	return aranceles, err
}
