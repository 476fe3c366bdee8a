package editoras

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/circulacao"
	"biblioteca-backend/internal/historico"
	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/platform/storage"
	"biblioteca-backend/internal/registros"
)

func armar(t *testing.T) (*Service, *registros.Registros, context.Context) {
	t.Helper()
	ctx := context.Background()
	reg := registros.Abrir(storage.NewMemoria())
	hist := historico.NewService(reg)
	circ := circulacao.NewService(reg, hist, circulacao.ConfigPadrao())
	return NewService(reg, circ, hist), reg, ctx
}

func TestCriar_StatusPadraoEDuplicidade(t *testing.T) {
	svc, _, ctx := armar(t)

	e, err := svc.Criar(ctx, CriarEditoraRequest{Nome: "Companhia das Letras"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, registros.EditoraAtiva, e.Status)

	// O nome é único entre as vivas, ignorando caixa e acentos.
	_, err = svc.Criar(ctx, CriarEditoraRequest{Nome: "companhia das letras"}, "admin")
	require.Error(t, err)
	var ae *apierr.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apierr.CodeConflict, ae.Code)
}

func TestExcluir_ComLivroVinculado(t *testing.T) {
	svc, reg, ctx := armar(t)

	e, err := svc.Criar(ctx, CriarEditoraRequest{Nome: "Garnier"}, "admin")
	require.NoError(t, err)
	require.NoError(t, reg.Livros.Salvar(ctx, []registros.Livro{
		{ID: "l1", Titulo: "Dom Casmurro", Editoras: []string{e.ID}, Exemplares: 1},
	}))

	err = svc.Excluir(ctx, e.ID, "admin")
	require.Error(t, err)
	var ae *apierr.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apierr.CodeConflict, ae.Code)
	assert.Equal(t, []string{"Dom Casmurro"}, ae.Details)

	// Sem vínculo a exclusão passa e o registro sai das consultas.
	require.NoError(t, reg.Livros.Salvar(ctx, nil))
	require.NoError(t, svc.Excluir(ctx, e.ID, "admin"))
	_, err = svc.Buscar(ctx, e.ID)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apierr.CodeNotFound, ae.Code)
}

func TestListar_FiltroDeStatus(t *testing.T) {
	svc, _, ctx := armar(t)

	_, err := svc.Criar(ctx, CriarEditoraRequest{Nome: "Ativa Ltda"}, "admin")
	require.NoError(t, err)
	_, err = svc.Criar(ctx, CriarEditoraRequest{Nome: "Inativa Ltda", Status: registros.EditoraInativa}, "admin")
	require.NoError(t, err)

	assert.Len(t, svc.Listar(ctx, FiltroEditora{}), 2)
	itens := svc.Listar(ctx, FiltroEditora{Status: registros.EditoraAtiva})
	require.Len(t, itens, 1)
	assert.Equal(t, "Ativa Ltda", itens[0].Nome)
}
