package texto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José da Conceição", "jose da conceicao"},
		{"  ÉRICA  ", "erica"},
		{"ção", "cao"},
		{"sem acento", "sem acento"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalizar(tt.in), tt.in)
	}
}

func TestContem(t *testing.T) {
	assert.True(t, Contem("Machado de Assis", "maçhado"))
	assert.True(t, Contem("A Hora da Estrela", "ESTRELA"))
	assert.True(t, Contem("qualquer", ""))
	assert.False(t, Contem("Dom Casmurro", "quincas"))
}

func TestIgual(t *testing.T) {
	assert.True(t, Igual("ANA.SOUZA@atlas.com.br", "ana.souza@atlas.com.br"))
	assert.True(t, Igual("São Paulo", "sao paulo"))
	assert.False(t, Igual("ana", "anna"))
}
