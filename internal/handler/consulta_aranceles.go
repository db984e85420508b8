package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dentalis/internal/apierror"
	"dentalis/internal/dto"
	"dentalis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const arancelCacheTTL = 4 * time.Hour

var cienPct = decimal.NewFromInt(100)

// ConsultaArancelesHandler serves the tariff lookup the front desk uses to
// quote a treatment before registering it. Read-only, cached in Redis.
type ConsultaArancelesHandler struct {
	repo repository.CatalogoRepository
	rdb  *redis.Client
}

func NewConsultaArancelesHandler(repo repository.CatalogoRepository, rdb *redis.Client) *ConsultaArancelesHandler {
	return &ConsultaArancelesHandler{repo: repo, rdb: rdb}
}

// GetArancelPorCodigo godoc
// @Summary Consulta de arancel por codigo, con desglose de cobertura
// @Tags aranceles
// @Produce json
// @Param codigo path string true "Codigo de arancel"
// @Param obra_social_id query string false "Obra social para calcular la cobertura"
// @Success 200 {object} dto.ConsultaArancelResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/aranceles/{codigo}/consulta [get]
func (h *ConsultaArancelesHandler) GetArancelPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	obraSocialID := c.Query("obra_social_id")
	ctx := c.Request.Context()
	cacheKey := "arancel:" + codigo + ":" + obraSocialID

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaArancelResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	arancel, err := h.repo.FindArancelPorCodigo(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Arancel no encontrado"))
		return
	}

	resp := dto.ConsultaArancelResponse{
		Codigo:      arancel.Codigo,
		Descripcion: arancel.Descripcion,
		Precio:      arancel.Precio,
	}

	if obraSocialID != "" {
		osID, err := uuid.Parse(obraSocialID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("obra_social_id inválido"))
			return
		}
		os, err := h.repo.FindObraSocial(ctx, osID)
		if err != nil {
			c.JSON(http.StatusNotFound, apierror.New("Obra social no encontrada"))
			return
		}
		cubierto := arancel.Precio.Mul(os.CoberturaPct).Div(cienPct).Round(2)
		if cubierto.GreaterThan(arancel.Precio) {
			cubierto = arancel.Precio
		}
		aCargo := arancel.Precio.Sub(cubierto)

		resp.ObraSocial = &os.Nombre
		resp.CoberturaPct = &os.CoberturaPct
		resp.CubiertoObraSocial = &cubierto
		resp.ACargoPaciente = &aCargo
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, arancelCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
