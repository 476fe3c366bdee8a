package circulacao

import (
	"fmt"

	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/registros"
)

// Regras de elegibilidade, avaliadas em ordem; a primeira falha encerra.
// As funções são puras sobre coleções já reconciliadas.

// ValidarAlunoParaEmprestimo confere se o aluno pode retirar um novo
// empréstimo: cadastrado, com status Ativo, sem atrasos e abaixo do limite
// de empréstimos ativos.
func ValidarAlunoParaEmprestimo(aluno *registros.Aluno, emprestimos []registros.Emprestimo, maxAtivos int) error {
	if aluno == nil {
		return apierr.ErrNotFound("Aluno não encontrado")
	}
	if aluno.Status == registros.AlunoSuspenso {
		return apierr.ErrEligibility("Aluno suspenso não pode realizar empréstimos")
	}
	if aluno.Status == registros.AlunoInativo {
		return apierr.ErrEligibility("Aluno inativo não pode realizar empréstimos")
	}
	ativos := 0
	for _, e := range emprestimos {
		if e.AlunoID != aluno.ID || !e.Ativo() {
			continue
		}
		if e.Status == registros.EmprestimoAtrasado {
			return apierr.ErrEligibility("Aluno possui empréstimos em atraso")
		}
		if e.Status == registros.EmprestimoAtivo {
			ativos++
		}
	}
	if ativos >= maxAtivos {
		return apierr.ErrEligibility(fmt.Sprintf("Aluno atingiu o limite de %d empréstimos ativos", maxAtivos))
	}
	return nil
}

// ValidarLivroParaEmprestimo confere se o livro pode ser emprestado ao
// aluno: cadastrado, com exemplar disponível e sem reserva ativa de outro
// aluno. Reserva do próprio aluno não barra; ela será concluída na criação.
func ValidarLivroParaEmprestimo(livro *registros.Livro, alunoID string, emprestimos []registros.Emprestimo, reservas []registros.Reserva) error {
	if livro == nil {
		return apierr.ErrNotFound("Livro não encontrado")
	}
	if ExemplaresDisponiveis(*livro, emprestimos) <= 0 {
		return apierr.ErrEligibility("Não há exemplares disponíveis para este livro")
	}
	sit := ReservaAtivaDoLivro(livro.ID, alunoID, reservas)
	if sit.DeOutroAluno && sit.Propria == nil {
		return apierr.ErrEligibility("Livro reservado por outro aluno")
	}
	return nil
}

// ValidarAlunoParaReserva confere cadastro, status Ativo e o limite de
// reservas ativas.
func ValidarAlunoParaReserva(aluno *registros.Aluno, reservas []registros.Reserva, maxAtivas int) error {
	if aluno == nil {
		return apierr.ErrNotFound("Aluno não encontrado")
	}
	if aluno.Status == registros.AlunoSuspenso {
		return apierr.ErrEligibility("Aluno suspenso não pode realizar reservas")
	}
	if aluno.Status == registros.AlunoInativo {
		return apierr.ErrEligibility("Aluno inativo não pode realizar reservas")
	}
	ativas := 0
	for _, r := range reservas {
		if r.AlunoID == aluno.ID && r.Ativo() && r.Status == registros.ReservaAtiva {
			ativas++
		}
	}
	if ativas >= maxAtivas {
		return apierr.ErrEligibility(fmt.Sprintf("Aluno atingiu o limite de %d reservas ativas", maxAtivas))
	}
	return nil
}

// ValidarLivroParaReserva confere cadastro, vaga de reserva e a ausência de
// reserva ativa do mesmo aluno sobre o mesmo livro.
func ValidarLivroParaReserva(livro *registros.Livro, alunoID string, reservas []registros.Reserva) error {
	if livro == nil {
		return apierr.ErrNotFound("Livro não encontrado")
	}
	if VagasReserva(*livro, reservas) <= 0 {
		return apierr.ErrEligibility("Não há vagas de reserva para este livro")
	}
	if sit := ReservaAtivaDoLivro(livro.ID, alunoID, reservas); sit.Propria != nil {
		return apierr.ErrEligibility("Aluno já possui uma reserva ativa para este livro")
	}
	return nil
}
