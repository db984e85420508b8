package handler

import (
	"net/http"

	"dentalis/internal/apierror"
	"dentalis/internal/dto"
	"dentalis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogosHandler struct{ svc service.CatalogoService }

func NewCatalogosHandler(svc service.CatalogoService) *CatalogosHandler {
	return &CatalogosHandler{svc: svc}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Obras sociales ────────────────────────────────────────────────────────────

func (h *CatalogosHandler) CrearObraSocial(c *gin.Context) {
	var req dto.ObraSocialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearObraSocial(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) ActualizarObraSocial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ObraSocialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarObraSocial(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) DesactivarObraSocial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarObraSocial(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogosHandler) ListarObrasSociales(c *gin.Context) {
	resp, err := h.svc.ListarObrasSociales(c.Request.Context(), c.Query("incluir_inactivas") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Metodos de pago ───────────────────────────────────────────────────────────

func (h *CatalogosHandler) CrearMetodoPago(c *gin.Context) {
	var req dto.MetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMetodoPago(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) DesactivarMetodoPago(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarMetodoPago(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogosHandler) ListarMetodosPago(c *gin.Context) {
	resp, err := h.svc.ListarMetodosPago(c.Request.Context(), c.Query("incluir_inactivos") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ── Aranceles ─────────────────────────────────────────────────────────────────

func (h *CatalogosHandler) CrearArancel(c *gin.Context) {
	var req dto.ArancelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearArancel(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogosHandler) ActualizarArancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ArancelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarArancel(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogosHandler) DesactivarArancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarArancel(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogosHandler) ListarAranceles(c *gin.Context) {
	resp, err := h.svc.ListarAranceles(c.Request.Context(), c.Query("incluir_inactivos") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
