package repository

import (
	"context"

	"dentalis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OdontogramaRepository interface {
	// UpsertCara creates or overwrites the state of one (diente, cara) pair.
	UpsertCara(ctx context.Context, dc *model.DienteCara) error
	ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]model.DienteCara, error)
}

type odontogramaRepo struct{ db *gorm.DB }

func NewOdontogramaRepository(db *gorm.DB) OdontogramaRepository {
	return &odontogramaRepo{db: db}
}

func (r *odontogramaRepo) UpsertCara(ctx context.Context, dc *model.DienteCara) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "paciente_id"}, {Name: "diente"}, {Name: "cara"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"estado", "tratamiento_id", "updated_at"}),
	}).Create(dc).Error
}

func (r *odontogramaRepo) ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]model.DienteCara, error) {
	var caras []model.DienteCara
	err := r.db.WithContext(ctx).
		Where("paciente_id = ?", pacienteID).
		Order("diente ASC, cara ASC").
		Find(&caras).Error
	return caras, err
}
