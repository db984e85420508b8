package handler

import (
	"net/http"
	"strconv"

	"dentalis/internal/apierror"
	"dentalis/internal/dto"
	"dentalis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CobrosHandler struct{ svc service.CobroService }

func NewCobrosHandler(svc service.CobroService) *CobrosHandler { return &CobrosHandler{svc: svc} }

// RegistrarPago godoc
// @Summary Registra un pago de paciente y/u obra social sobre un cobro
// @Tags cobros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarPagoRequest true "Pago"
// @Success 200 {object} dto.CobroResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/cobros/pagar [post]
func (h *CobrosHandler) RegistrarPago(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CobrosHandler) ListarPorPaciente(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListarPorPaciente(c.Request.Context(), pacienteID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListarPendientes returns cobros with outstanding balance, paginated.
// Zero-amount cobros never appear here.
func (h *CobrosHandler) ListarPendientes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.ListarPendientes(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
