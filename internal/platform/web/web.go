// Package web reúne os helpers de handler comuns a todos os recursos.
package web

import (
	"github.com/gin-gonic/gin"

	"biblioteca-backend/internal/platform/apierr"
)

// UsuarioPadrao é o ator registrado quando o cliente não se identifica.
// Autenticação real está fora do escopo do sistema.
const UsuarioPadrao = "admin"

// Usuario extrai o nome do operador do cabeçalho X-Usuario.
func Usuario(c *gin.Context) string {
	if u := c.GetHeader("X-Usuario"); u != "" {
		return u
	}
	return UsuarioPadrao
}

// Erro serializa um erro de serviço com o status HTTP correspondente.
func Erro(c *gin.Context, err error) {
	c.JSON(apierr.ToHTTPStatus(err), apierr.BodyFrom(err))
}
