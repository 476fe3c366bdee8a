package relatorios

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/circulacao"
	"biblioteca-backend/internal/historico"
	"biblioteca-backend/internal/platform/storage"
	"biblioteca-backend/internal/registros"
)

func armar(t *testing.T) (*Service, *registros.Registros, context.Context) {
	t.Helper()
	ctx := context.Background()
	reg := registros.Abrir(storage.NewMemoria())
	circ := circulacao.NewService(reg, historico.NewService(reg), circulacao.ConfigPadrao())
	return NewService(reg, circ), reg, ctx
}

func TestEmprestimosPorGenero(t *testing.T) {
	svc, reg, ctx := armar(t)

	require.NoError(t, reg.Livros.Salvar(ctx, []registros.Livro{
		{ID: "l1", Titulo: "Dom Casmurro", Generos: []string{"Romance"}, Exemplares: 1},
		{ID: "l2", Titulo: "Sagarana", Generos: []string{"Romance", "Regionalismo"}, Exemplares: 1},
		{ID: "l3", Titulo: "Sem gênero", Exemplares: 1},
	}))
	futuro := "2099-01-01"
	require.NoError(t, reg.Emprestimos.Salvar(ctx, []registros.Emprestimo{
		{ID: "e1", LivroID: "l1", Status: registros.EmprestimoDevolvido, DataDevolucaoPrevista: futuro},
		{ID: "e2", LivroID: "l2", Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: futuro},
		{ID: "e3", LivroID: "l3", Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: futuro},
		{ID: "e4", LivroID: "l1", Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: futuro,
			Exclusao: &registros.Exclusao{Em: time.Now(), Por: "admin"}},
	}))

	itens, err := svc.EmprestimosPorGenero(ctx)
	require.NoError(t, err)
	require.Len(t, itens, 3)
	// Romance lidera com dois empréstimos; o excluído não conta.
	assert.Equal(t, GeneroContagem{Genero: "Romance", Total: 2}, itens[0])
	assert.Contains(t, itens, GeneroContagem{Genero: "Regionalismo", Total: 1})
	assert.Contains(t, itens, GeneroContagem{Genero: "Sem gênero", Total: 1})
}

func TestCirculacao(t *testing.T) {
	svc, reg, ctx := armar(t)

	futuro := "2099-01-01"
	require.NoError(t, reg.Emprestimos.Salvar(ctx, []registros.Emprestimo{
		{ID: "e1", Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: futuro},
		{ID: "e2", Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: "2020-01-01"},
		{ID: "e3", Status: registros.EmprestimoDevolvido, DataDevolucaoPrevista: futuro},
	}))
	require.NoError(t, reg.Reservas.Salvar(ctx, []registros.Reserva{
		{ID: "r1", Status: registros.ReservaAtiva, DataExpiracao: futuro},
		{ID: "r2", Status: registros.ReservaAtiva, DataExpiracao: "2020-01-01"},
	}))

	rel, err := svc.Circulacao(ctx)
	require.NoError(t, err)
	// As contagens refletem os status reconciliados, não os gravados.
	assert.Equal(t, 1, rel.Emprestimos[registros.EmprestimoAtivo])
	assert.Equal(t, 1, rel.Emprestimos[registros.EmprestimoAtrasado])
	assert.Equal(t, 1, rel.Emprestimos[registros.EmprestimoDevolvido])
	assert.Equal(t, 0, rel.Emprestimos[registros.EmprestimoPerdido])
	assert.Equal(t, 1, rel.Reservas[registros.ReservaAtiva])
	assert.Equal(t, 1, rel.Reservas[registros.ReservaExpirada])
}
