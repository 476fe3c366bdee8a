package livros

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

	r.POST("/livros", h.Criar)
	r.GET("/livros", h.Listar)
	r.GET("/livros/:id", h.Buscar)
	r.PUT("/livros/:id", h.Editar)
	r.DELETE("/livros/:id", h.Excluir)
}

func (h *Handler) Criar(c *gin.Context) {
	var req CriarLivroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.Criar(c.Request.Context(), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.Header("Location", "/livros/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Listar(c *gin.Context) {
	f := FiltroLivro{
		Titulo:  c.Query("titulo"),
		AutorID: c.Query("autorId"),
		ISBN:    c.Query("isbn"),
		Genero:  c.Query("genero"),
	}
	itens := h.svc.Listar(c.Request.Context(), f)
	if itens == nil {
		itens = []registros.Livro{}
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
	var req EditarLivroRequest
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
