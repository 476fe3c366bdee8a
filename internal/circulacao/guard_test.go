package circulacao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/registros"
)

func TestPodeExcluirAluno(t *testing.T) {
	svc, _, ctx := armar(t)

	b, err := svc.PodeExcluirAluno(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, b.Pode)
	assert.Empty(t, b.Bloqueios)

	e, err := svc.CriarEmprestimo(ctx, CriarEmprestimoRequest{AlunoID: "a1", LivroID: "l1"}, "admin")
	require.NoError(t, err)

	b, err = svc.PodeExcluirAluno(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, b.Pode)
	require.Len(t, b.Bloqueios, 1)
	assert.Contains(t, b.Bloqueios[0], e.ID)
	assert.Contains(t, b.Bloqueios[0], "Dom Casmurro")
	assert.Contains(t, b.Bloqueios[0], registros.EmprestimoAtivo)

	// Devolvido libera.
	_, err = svc.EditarEmprestimo(ctx, e.ID, EditarEmprestimoRequest{
		DataDevolucaoPrevista: e.DataDevolucaoPrevista,
		Status:                registros.EmprestimoDevolvido,
	}, "admin")
	require.NoError(t, err)

	b, err = svc.PodeExcluirAluno(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, b.Pode)
}

func TestPodeExcluirAluno_PerdidoBloqueia(t *testing.T) {
	svc, _, ctx := armar(t)

	e, err := svc.CriarEmprestimo(ctx, CriarEmprestimoRequest{AlunoID: "a1", LivroID: "l1"}, "admin")
	require.NoError(t, err)
	_, err = svc.EditarEmprestimo(ctx, e.ID, EditarEmprestimoRequest{
		DataDevolucaoPrevista: e.DataDevolucaoPrevista,
		Status:                registros.EmprestimoPerdido,
	}, "admin")
	require.NoError(t, err)

	b, err := svc.PodeExcluirAluno(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, b.Pode)
}

func TestPodeExcluirLivro(t *testing.T) {
	svc, _, ctx := armar(t)

	e, err := svc.CriarEmprestimo(ctx, CriarEmprestimoRequest{AlunoID: "a1", LivroID: "l1"}, "admin")
	require.NoError(t, err)

	b, err := svc.PodeExcluirLivro(ctx, "l1")
	require.NoError(t, err)
	assert.False(t, b.Pode)
	require.Len(t, b.Bloqueios, 1)
	assert.Contains(t, b.Bloqueios[0], e.ID)

	b, err = svc.PodeExcluirLivro(ctx, "l2")
	require.NoError(t, err)
	assert.True(t, b.Pode)
}

func TestPodeExcluirAutorEEditora(t *testing.T) {
	svc, reg, ctx := armar(t)

	require.NoError(t, reg.Livros.Salvar(ctx, []registros.Livro{
		{ID: "l1", Titulo: "Dom Casmurro", Autores: []string{"au1"}, Editoras: []string{"ed1"}, Exemplares: 1},
		{ID: "l2", Titulo: "Quincas Borba", Autores: []string{"au1"}, Exemplares: 1,
			Exclusao: &registros.Exclusao{Em: time.Now(), Por: "admin"}},
	}))

	b, err := svc.PodeExcluirAutor(ctx, "au1")
	require.NoError(t, err)
	assert.False(t, b.Pode)
	// O livro excluído não conta.
	assert.Equal(t, []string{"Dom Casmurro"}, b.Bloqueios)

	b, err = svc.PodeExcluirAutor(ctx, "au2")
	require.NoError(t, err)
	assert.True(t, b.Pode)

	b, err = svc.PodeExcluirEditora(ctx, "ed1")
	require.NoError(t, err)
	assert.False(t, b.Pode)
	assert.Equal(t, []string{"Dom Casmurro"}, b.Bloqueios)
}
