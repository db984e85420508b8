package handler

import (
	"net/http"

	"dentalis/internal/apierror"
	"dentalis/internal/dto"
	"dentalis/internal/middleware"
	"dentalis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TratamientosHandler struct{ svc service.TratamientoService }

func NewTratamientosHandler(svc service.TratamientoService) *TratamientosHandler {
	return &TratamientosHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra un tratamiento realizado y genera su cobro
// @Tags tratamientos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarTratamientoRequest true "Tratamiento realizado"
// @Success 201 {object} dto.TratamientoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/tratamientos [post]
func (h *TratamientosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarTratamientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	odontologoID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), odontologoID, req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TratamientosHandler) ListarPorPaciente(c *gin.Context) {
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
