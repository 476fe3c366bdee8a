package circulacao

import "biblioteca-backend/internal/registros"

// Os dois estoques são independentes: empréstimos consomem exemplares do
// estoque de empréstimo, reservas consomem vagas do estoque de reserva, e
// um não reduz o outro. Um livro com um exemplar pode estar emprestado e
// reservado por outra pessoa ao mesmo tempo; só a criação de um novo
// empréstimo é barrada por reserva alheia. Comportamento herdado do sistema
// original, mantido à risca.

// ExemplaresDisponiveis conta quantos exemplares do livro ainda podem ser
// emprestados. Chamadas pressupõem coleções já reconciliadas.
func ExemplaresDisponiveis(livro registros.Livro, emprestimos []registros.Emprestimo) int {
	emprestados := 0
	for _, e := range emprestimos {
		if e.LivroID != livro.ID || !e.Ativo() {
			continue
		}
		if e.Status == registros.EmprestimoAtivo || e.Status == registros.EmprestimoAtrasado {
			emprestados++
		}
	}
	if livro.Exemplares < emprestados {
		return 0
	}
	return livro.Exemplares - emprestados
}

// ReservasAtivasDoLivro conta as reservas com status Ativa sobre o livro.
func ReservasAtivasDoLivro(livroID string, reservas []registros.Reserva) int {
	n := 0
	for _, r := range reservas {
		if r.LivroID == livroID && r.Ativo() && r.Status == registros.ReservaAtiva {
			n++
		}
	}
	return n
}

// VagasReserva informa quantas reservas ainda cabem no livro.
func VagasReserva(livro registros.Livro, reservas []registros.Reserva) int {
	vagas := livro.Exemplares - ReservasAtivasDoLivro(livro.ID, reservas)
	if vagas < 0 {
		return 0
	}
	return vagas
}

// SituacaoReserva descreve as reservas ativas de um livro do ponto de vista
// de um aluno.
type SituacaoReserva struct {
	Existe       bool
	DeOutroAluno bool
	Propria      *registros.Reserva
}

// ReservaAtivaDoLivro verifica se há reserva ativa sobre o livro e se ela
// pertence ao aluno consultado ou a outro.
func ReservaAtivaDoLivro(livroID, alunoID string, reservas []registros.Reserva) SituacaoReserva {
	var sit SituacaoReserva
	for i := range reservas {
		r := &reservas[i]
		if r.LivroID != livroID || !r.Ativo() || r.Status != registros.ReservaAtiva {
			continue
		}
		sit.Existe = true
		if r.AlunoID == alunoID {
			sit.Propria = r
		} else {
			sit.DeOutroAluno = true
		}
	}
	return sit
}

// Disponibilidade é o resumo exposto pela API para um livro.
type Disponibilidade struct {
	LivroID        string `json:"livroId"`
	Titulo         string `json:"titulo"`
	Exemplares     int    `json:"exemplares"`
	Emprestados    int    `json:"emprestados"`
	Disponiveis    int    `json:"disponiveis"`
	ReservasAtivas int    `json:"reservasAtivas"`
	VagasReserva   int    `json:"vagasReserva"`
}
