package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	orders "github.com/Apurer/order-registry/internal/domains/orders/domain"
	"github.com/Apurer/order-registry/internal/domains/registry/application"
	apierrors "github.com/Apurer/order-registry/internal/shared/errors"
)

// mapRegistryError covers the registry sentinels that carry no shared kind.
func mapRegistryError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orders.ErrTerminalStage):
		return apierrors.ErrInvalidState.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrNoExporter):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrPersistence):
		return apierrors.ErrInternal.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

func newResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("", mapRegistryError, apierrors.MapDomainError)
}

func (api *RegistryAPI) respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	api.responder.RespondError(c, err)
}
