package service

import (
	"context"
	"fmt"
	"time"

	"dentalis/internal/dto"
	"dentalis/internal/model"
	"dentalis/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

type TratamientoService interface {
	// Registrar records a performed treatment, creates its cobro with the
	// insurer/patient split, and updates the odontogram face when the
	// treatment is anchored to a tooth.
	Registrar(ctx context.Context, odontologoID uuid.UUID, req dto.RegistrarTratamientoRequest) (*dto.TratamientoResponse, error)
	ListarPorPaciente(ctx context.Context, pacienteID uuid.UUID) ([]dto.TratamientoResponse, error)
}

type tratamientoService struct {
	repo        repository.TratamientoRepository
	cobros      repository.CobroRepository
	pacientes   repository.PacienteRepository
	catalogo    repository.CatalogoRepository
	odontograma repository.OdontogramaRepository
}

func NewTratamientoService(
	repo repository.TratamientoRepository,
	cobros repository.CobroRepository,
	pacientes repository.PacienteRepository,
	catalogo repository.CatalogoRepository,
	odontograma repository.OdontogramaRepository,
) TratamientoService {
	return &tratamientoService{
		repo:        repo,
		cobros:      cobros,
		pacientes:   pacientes,
		catalogo:    catalogo,
		odontograma: odontograma,
	}
}

func (s *tratamientoService) Registrar(ctx context.Context, odontologoID uuid.UUID, req dto.RegistrarTratamientoRequest) (*dto.TratamientoResponse, error) {
	pacienteID, err := uuid.Parse(req.PacienteID)
	if err != nil {
		return nil, validationf("paciente_id inválido: %v", err)
	}
	if req.Diente != nil && !model.ValidFDI(*req.Diente) {
		return nil, validationf("número de diente FDI inválido: %d", *req.Diente)
	}
	if req.Cara != nil && !model.Caras[*req.Cara] {
		return nil, validationf("cara de diente inválida: %q", *req.Cara)
	}
	if req.EstadoDiente != nil && !model.EstadosDiente[*req.EstadoDiente] {
		return nil, validationf("estado de diente inválido: %q", *req.EstadoDiente)
	}

	paciente, err := s.pacientes.FindByID(ctx, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("paciente no encontrado: %w", err)
	}
	if !paciente.Activo {
		return nil, invalidStatef("el paciente está inactivo")
	}

	arancel, err := s.catalogo.FindArancelPorCodigo(ctx, req.ArancelCodigo)
	if err != nil || !arancel.Activo {
		return nil, validationf("arancel %q inexistente o inactivo", req.ArancelCodigo)
	}

	cubierto, aCargo := splitCobertura(arancel.Precio, paciente.ObraSocial)

	trat := &model.Tratamiento{
		PacienteID:    pacienteID,
		OdontologoID:  odontologoID,
		ArancelID:     arancel.ID,
		Diente:        req.Diente,
		Cara:          req.Cara,
		Observaciones: req.Observaciones,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(ctx, trat); err != nil {
		return nil, err
	}

	cobro := &model.Cobro{
		TratamientoID:      trat.ID,
		MontoTotal:         arancel.Precio,
		CubiertoObraSocial: cubierto,
		ACargoPaciente:     aCargo,
		PagadoPaciente:     decimal.Zero,
		PagadoObraSocial:   decimal.Zero,
		Estado:             model.CobroPendiente,
	}
	if cobro.MontoTotal.IsZero() {
		cobro.Estado = model.CobroPagado
	}
	if err := s.cobros.Create(ctx, cobro); err != nil {
		return nil, err
	}

	if req.Diente != nil && req.Cara != nil && req.EstadoDiente != nil {
		tratID := trat.ID
		dc := &model.DienteCara{
			PacienteID:    pacienteID,
			Diente:        *req.Diente,
			Cara:          *req.Cara,
			Estado:        *req.EstadoDiente,
			TratamientoID: &tratID,
			UpdatedAt:     time.Now(),
		}
		if err := s.odontograma.UpsertCara(ctx, dc); err != nil {
			return nil, err
		}
	}

	trat.Arancel = arancel
	trat.Cobro = cobro
	return tratamientoToResponse(trat), nil
}

func (s *tratamientoService) ListarPorPaciente(ctx context.Context, pacienteID uuid.UUID) ([]dto.TratamientoResponse, error) {
	tratamientos, err := s.repo.ListByPaciente(ctx, pacienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TratamientoResponse, len(tratamientos))
	for i := range tratamientos {
		resp[i] = *tratamientoToResponse(&tratamientos[i])
	}
	return resp, nil
}

// splitCobertura divides a tariff price into the insurer-covered part and the
// patient share. Coverage rounds to cents in favor of the patient share never
// losing a cent: aCargo = precio − round(cubierto).
func splitCobertura(precio decimal.Decimal, os *model.ObraSocial) (cubierto, aCargo decimal.Decimal) {
	if os == nil || !os.Activa || os.CoberturaPct.IsZero() {
		return decimal.Zero, precio
	}
	cubierto = precio.Mul(os.CoberturaPct).Div(cien).Round(2)
	if cubierto.GreaterThan(precio) {
		cubierto = precio
	}
	return cubierto, precio.Sub(cubierto)
}

func tratamientoToResponse(t *model.Tratamiento) *dto.TratamientoResponse {
	resp := &dto.TratamientoResponse{
		ID:           t.ID.String(),
		PacienteID:   t.PacienteID.String(),
		OdontologoID: t.OdontologoID.String(),
		Diente:       t.Diente,
		Cara:         t.Cara,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
	if t.Arancel != nil {
		resp.ArancelCodigo = t.Arancel.Codigo
		resp.Descripcion = t.Arancel.Descripcion
		resp.Precio = t.Arancel.Precio
	}
	if t.Cobro != nil {
		resp.Cobro = cobroToResponse(t.Cobro)
	}
	return resp
}
