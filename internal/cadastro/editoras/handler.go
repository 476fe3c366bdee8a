package editoras

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

	r.POST("/editoras", h.Criar)
	r.GET("/editoras", h.Listar)
	r.GET("/editoras/:id", h.Buscar)
	r.PUT("/editoras/:id", h.Editar)
	r.DELETE("/editoras/:id", h.Excluir)
}

func (h *Handler) Criar(c *gin.Context) {
	var req CriarEditoraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "JSON inválido ou campos obrigatórios ausentes"))
		return
	}
	res, err := h.svc.Criar(c.Request.Context(), req, web.Usuario(c))
	if err != nil {
		web.Erro(c, err)
		return
	}
	c.Header("Location", "/editoras/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Listar(c *gin.Context) {
	f := FiltroEditora{
		Nome:   c.Query("nome"),
		Status: c.Query("status"),
	}
	itens := h.svc.Listar(c.Request.Context(), f)
	if itens == nil {
		itens = []registros.Editora{}
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
	var req EditarEditoraRequest
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
