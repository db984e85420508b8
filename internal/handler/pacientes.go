package handler

import (
	"net/http"
	"strconv"

	"dentalis/internal/apierror"
	"dentalis/internal/dto"
	"dentalis/internal/middleware"
	"dentalis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PacientesHandler struct {
	svc         service.PacienteService
	odontograma service.OdontogramaService
}

func NewPacientesHandler(svc service.PacienteService, odontograma service.OdontogramaService) *PacientesHandler {
	return &PacientesHandler{svc: svc, odontograma: odontograma}
}

func (h *PacientesHandler) Crear(c *gin.Context) {
	var req dto.CrearPacienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PacientesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Paciente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PacientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarPacienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PacientesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Listar supports ?q= search over nombre, apellido and documento.
func (h *PacientesHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Historia clinica ─────────────────────────────────────────────────────────

func (h *PacientesHandler) AgregarHistoria(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CrearHistoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	registradoPor, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}
	resp, err := h.svc.AgregarHistoria(c.Request.Context(), pacienteID, registradoPor, req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PacientesHandler) ListarHistoria(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListarHistoria(c.Request.Context(), pacienteID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Odontograma ──────────────────────────────────────────────────────────────

func (h *PacientesHandler) ObtenerOdontograma(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.odontograma.Obtener(c.Request.Context(), pacienteID)
	if err != nil {
		writeServiceError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PacientesHandler) ActualizarCaraOdontograma(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarCaraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.odontograma.ActualizarCara(c.Request.Context(), pacienteID, req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}
