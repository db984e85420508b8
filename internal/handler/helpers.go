package handler

import (
	"errors"
	"net/http"
	"reflect"

	"dentalis/internal/apierror"
	"dentalis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps typed service errors to HTTP statuses:
// ValidationError → 422, InvalidStateError → 409, PrecisionError → 500,
// anything else → the fallback status.
func writeServiceError(c *gin.Context, err error, fallback int) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(ve.Msg))
		return
	}
	var ise *service.InvalidStateError
	if errors.As(err, &ise) {
		c.JSON(http.StatusConflict, apierror.New(ise.Msg))
		return
	}
	var pe *service.PrecisionError
	if errors.As(err, &pe) {
		c.JSON(http.StatusInternalServerError, apierror.New(pe.Error()))
		return
	}
	c.JSON(fallback, apierror.New(err.Error()))
}
