package autores

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

	r.POST("/autores", h.Criar)
	r.GET("/autores", h.Listar)
	r.GET("/autores/:id", h.Buscar)
	r.PUT("/autores/:id", h.Editar)
	r.DELETE("/autores/:id", h.Excluir)
}

func (h *Handler) Criar(c *gin.Context) {
	var req CriarAutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.Criar(c.Request.Context(), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.Header("Location", "/autores/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Listar(c *gin.Context) {
	f := FiltroAutor{
		Nome:          c.Query("nome"),
		Nacionalidade: c.Query("nacionalidade"),
	}
	itens := h.svc.Listar(c.Request.Context(), f)
	if itens == nil {
		itens = []registros.Autor{}
	}
	c.JSON(http.StatusOK, gin.H{"items": itens, "total": len(itens)})
}

func (h *Handler) Buscar(c *gin.Context) {
	res, err := h.svc.Buscar(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Editar(c *gin.Context) {
	var req EditarAutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.Editar(c.Request.Context(), c.Param("id"), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Excluir(c *gin.Context) {
	if err := h.svc.Excluir(c.Request.Context(), c.Param("id"), web.Usuario(c)); err != nil {
		web.Erro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
