package historico

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biblioteca-backend/internal/registros"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/historico", h.Listar)
}

func (h *Handler) Listar(c *gin.Context) {
	f := Filtro{
		Entidade:   c.Query("entidade"),
		EntidadeID: c.Query("entidadeId"),
	}
	itens := h.svc.Listar(c.Request.Context(), f)
	if itens == nil {
		itens = []registros.HistoricoAlteracao{}
	}
	c.JSON(http.StatusOK, gin.H{"items": itens, "total": len(itens)})
}
