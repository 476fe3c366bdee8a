package relatorios

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biblioteca-backend/internal/platform/web"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/relatorios/emprestimos-por-genero", h.EmprestimosPorGenero)
	r.GET("/relatorios/circulacao", h.Circulacao)
}

func (h *Handler) EmprestimosPorGenero(c *gin.Context) {
	itens, err := h.svc.EmprestimosPorGenero(c.Request.Context())
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": itens, "total": len(itens)})
}

func (h *Handler) Circulacao(c *gin.Context) {
	rel, err := h.svc.Circulacao(c.Request.Context())
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, rel)
}
