package circulacao

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/platform/web"
	"biblioteca-backend/internal/registros"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/emprestimos", h.CriarEmprestimo)
	r.GET("/emprestimos", h.ListarEmprestimos)
	r.GET("/emprestimos/:id", h.BuscarEmprestimo)
	r.PUT("/emprestimos/:id", h.EditarEmprestimo)
	r.DELETE("/emprestimos/:id", h.ExcluirEmprestimo)

	r.POST("/reservas", h.CriarReserva)
	r.GET("/reservas", h.ListarReservas)
	r.GET("/reservas/:id", h.BuscarReserva)
	r.PUT("/reservas/:id", h.EditarReserva)
	r.DELETE("/reservas/:id", h.ExcluirReserva)

	r.GET("/livros/:id/disponibilidade", h.Disponibilidade)
}

// ===== empréstimos =====

func (h *Handler) CriarEmprestimo(c *gin.Context) {
	var req CriarEmprestimoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.CriarEmprestimo(c.Request.Context(), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.Header("Location", "/emprestimos/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListarEmprestimos(c *gin.Context) {
	f := FiltroEmprestimo{
		AlunoID: c.Query("alunoId"),
		LivroID: c.Query("livroId"),
		Status:  c.Query("status"),
	}
	itens, err := h.svc.ListarEmprestimos(c.Request.Context(), f)
	if err != nil {
		web.Erro(c, err)
		return
	}
	if itens == nil {
		itens = []registros.Emprestimo{}
	}
	c.JSON(http.StatusOK, gin.H{"items": itens, "total": len(itens)})
}

func (h *Handler) BuscarEmprestimo(c *gin.Context) {
	res, err := h.svc.BuscarEmprestimo(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) EditarEmprestimo(c *gin.Context) {
	var req EditarEmprestimoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.EditarEmprestimo(c.Request.Context(), c.Param("id"), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ExcluirEmprestimo(c *gin.Context) {
	if err := h.svc.ExcluirEmprestimo(c.Request.Context(), c.Param("id"), web.Usuario(c)); err != nil {
		web.Erro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== reservas =====

func (h *Handler) CriarReserva(c *gin.Context) {
	var req CriarReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.CriarReserva(c.Request.Context(), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.Header("Location", "/reservas/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListarReservas(c *gin.Context) {
	f := FiltroReserva{
		AlunoID: c.Query("alunoId"),
		LivroID: c.Query("livroId"),
		Status:  c.Query("status"),
	}
	itens, err := h.svc.ListarReservas(c.Request.Context(), f)
	if err != nil {
		web.Erro(c, err)
		return
	}
	if itens == nil {
		itens = []registros.Reserva{}
	}
	c.JSON(http.StatusOK, gin.H{"items": itens, "total": len(itens)})
}

func (h *Handler) BuscarReserva(c *gin.Context) {
	res, err := h.svc.BuscarReserva(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) EditarReserva(c *gin.Context) {
	var req EditarReservaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.EditarReserva(c.Request.Context(), c.Param("id"), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ExcluirReserva(c *gin.Context) {
	if err := h.svc.ExcluirReserva(c.Request.Context(), c.Param("id"), web.Usuario(c)); err != nil {
		web.Erro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===== disponibilidade =====

func (h *Handler) Disponibilidade(c *gin.Context) {
	res, err := h.svc.Disponibilidade(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
