package circulacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/registros"
)

func alunoAtivo(id string) *registros.Aluno {
	return &registros.Aluno{ID: id, Nome: "Aluno " + id, Status: registros.AlunoAtivo}
}

func exigirCodigo(t *testing.T, err error, codigo apierr.Code) {
	t.Helper()
	require.Error(t, err)
	var ae *apierr.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, codigo, ae.Code)
}

func exigirMensagem(t *testing.T, err error, msg string) {
	t.Helper()
	var ae *apierr.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, msg, ae.Message)
}

func TestValidarAlunoParaEmprestimo(t *testing.T) {
	emprestimoDe := func(alunoID, status string) registros.Emprestimo {
		return registros.Emprestimo{AlunoID: alunoID, Status: status}
	}

	t.Run("nao cadastrado", func(t *testing.T) {
		exigirCodigo(t, ValidarAlunoParaEmprestimo(nil, nil, 3), apierr.CodeNotFound)
	})

	t.Run("suspenso", func(t *testing.T) {
		a := alunoAtivo("a1")
		a.Status = registros.AlunoSuspenso
		err := ValidarAlunoParaEmprestimo(a, nil, 3)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Aluno suspenso não pode realizar empréstimos")
	})

	t.Run("inativo", func(t *testing.T) {
		a := alunoAtivo("a1")
		a.Status = registros.AlunoInativo
		exigirCodigo(t, ValidarAlunoParaEmprestimo(a, nil, 3), apierr.CodeEligibility)
	})

	t.Run("atraso barra antes do limite", func(t *testing.T) {
		err := ValidarAlunoParaEmprestimo(alunoAtivo("a1"), []registros.Emprestimo{
			emprestimoDe("a1", registros.EmprestimoAtrasado),
		}, 3)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Aluno possui empréstimos em atraso")
	})

	t.Run("abaixo do limite passa", func(t *testing.T) {
		err := ValidarAlunoParaEmprestimo(alunoAtivo("a1"), []registros.Emprestimo{
			emprestimoDe("a1", registros.EmprestimoAtivo),
			emprestimoDe("a1", registros.EmprestimoAtivo),
		}, 3)
		assert.NoError(t, err)
	})

	t.Run("no limite barra", func(t *testing.T) {
		err := ValidarAlunoParaEmprestimo(alunoAtivo("a1"), []registros.Emprestimo{
			emprestimoDe("a1", registros.EmprestimoAtivo),
			emprestimoDe("a1", registros.EmprestimoAtivo),
			emprestimoDe("a1", registros.EmprestimoAtivo),
		}, 3)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Aluno atingiu o limite de 3 empréstimos ativos")
	})

	t.Run("devolvidos e de outros alunos nao contam", func(t *testing.T) {
		err := ValidarAlunoParaEmprestimo(alunoAtivo("a1"), []registros.Emprestimo{
			emprestimoDe("a1", registros.EmprestimoDevolvido),
			emprestimoDe("a1", registros.EmprestimoDevolvido),
			emprestimoDe("a1", registros.EmprestimoDevolvido),
			emprestimoDe("a2", registros.EmprestimoAtivo),
		}, 3)
		assert.NoError(t, err)
	})
}

func TestValidarLivroParaEmprestimo(t *testing.T) {
	livro := &registros.Livro{ID: "l1", Titulo: "Dom Casmurro", Exemplares: 1}

	t.Run("nao cadastrado", func(t *testing.T) {
		exigirCodigo(t, ValidarLivroParaEmprestimo(nil, "a1", nil, nil), apierr.CodeNotFound)
	})

	t.Run("sem exemplar disponivel", func(t *testing.T) {
		emprestimos := []registros.Emprestimo{{LivroID: "l1", Status: registros.EmprestimoAtivo}}
		err := ValidarLivroParaEmprestimo(livro, "a1", emprestimos, nil)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Não há exemplares disponíveis para este livro")
	})

	t.Run("reserva alheia barra", func(t *testing.T) {
		reservas := []registros.Reserva{{LivroID: "l1", AlunoID: "a2", Status: registros.ReservaAtiva}}
		err := ValidarLivroParaEmprestimo(livro, "a1", nil, reservas)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Livro reservado por outro aluno")
	})

	t.Run("reserva propria nao barra", func(t *testing.T) {
		reservas := []registros.Reserva{{LivroID: "l1", AlunoID: "a1", Status: registros.ReservaAtiva}}
		assert.NoError(t, ValidarLivroParaEmprestimo(livro, "a1", nil, reservas))
	})

	t.Run("reserva propria e alheia juntas nao barram", func(t *testing.T) {
		reservas := []registros.Reserva{
			{LivroID: "l1", AlunoID: "a2", Status: registros.ReservaAtiva},
			{LivroID: "l1", AlunoID: "a1", Status: registros.ReservaAtiva},
		}
		assert.NoError(t, ValidarLivroParaEmprestimo(livro, "a1", nil, reservas))
	})
}

func TestValidarAlunoParaReserva(t *testing.T) {
	reservaDe := func(alunoID, livroID string) registros.Reserva {
		return registros.Reserva{AlunoID: alunoID, LivroID: livroID, Status: registros.ReservaAtiva}
	}

	t.Run("no limite barra", func(t *testing.T) {
		err := ValidarAlunoParaReserva(alunoAtivo("a1"), []registros.Reserva{
			reservaDe("a1", "l1"), reservaDe("a1", "l2"), reservaDe("a1", "l3"),
		}, 3)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Aluno atingiu o limite de 3 reservas ativas")
	})

	t.Run("abaixo do limite passa", func(t *testing.T) {
		err := ValidarAlunoParaReserva(alunoAtivo("a1"), []registros.Reserva{
			reservaDe("a1", "l1"), reservaDe("a1", "l2"),
		}, 3)
		assert.NoError(t, err)
	})

	t.Run("suspenso", func(t *testing.T) {
		a := alunoAtivo("a1")
		a.Status = registros.AlunoSuspenso
		exigirCodigo(t, ValidarAlunoParaReserva(a, nil, 3), apierr.CodeEligibility)
	})
}

func TestValidarLivroParaReserva(t *testing.T) {
	livro := &registros.Livro{ID: "l1", Exemplares: 1}

	t.Run("sem vaga", func(t *testing.T) {
		reservas := []registros.Reserva{{LivroID: "l1", AlunoID: "a2", Status: registros.ReservaAtiva}}
		err := ValidarLivroParaReserva(livro, "a1", reservas)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Não há vagas de reserva para este livro")
	})

	t.Run("reserva propria duplicada", func(t *testing.T) {
		livro2 := &registros.Livro{ID: "l1", Exemplares: 2}
		reservas := []registros.Reserva{{LivroID: "l1", AlunoID: "a1", Status: registros.ReservaAtiva}}
		err := ValidarLivroParaReserva(livro2, "a1", reservas)
		exigirCodigo(t, err, apierr.CodeEligibility)
		exigirMensagem(t, err, "Aluno já possui uma reserva ativa para este livro")
	})

	t.Run("livro emprestado ainda reserva", func(t *testing.T) {
		// Disponibilidade de empréstimo não entra na conta da reserva.
		assert.NoError(t, ValidarLivroParaReserva(livro, "a1", nil))
	})
}
