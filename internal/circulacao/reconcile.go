// Package circulacao implementa o núcleo de empréstimos e reservas:
// reconciliação de status dirigida pela data, cálculo de disponibilidade,
// regras de elegibilidade, ciclo de vida dos registros e a guarda de
// exclusão entre entidades.
package circulacao

import "biblioteca-backend/internal/registros"

// ReconciliarEmprestimos aplica as transições automáticas de status sobre a
// coleção, comparando a devolução prevista com hoje (FormatoData, dia a
// dia). Vencido vira Atrasado; Atrasado com prazo reestendido volta a
// Ativo. Status terminais e registros excluídos não são tocados. A função é
// pura e idempotente; devolve se algo mudou, para o chamador persistir a
// coleção uma única vez.
func ReconciliarEmprestimos(emprestimos []registros.Emprestimo, hoje string) bool {
	mudou := false
	for i := range emprestimos {
		e := &emprestimos[i]
		if !e.Ativo() || e.StatusTerminal() {
			continue
		}
		switch {
		case e.DataDevolucaoPrevista < hoje && e.Status != registros.EmprestimoAtrasado:
			e.Status = registros.EmprestimoAtrasado
			mudou = true
		case e.DataDevolucaoPrevista >= hoje && e.Status == registros.EmprestimoAtrasado:
			e.Status = registros.EmprestimoAtivo
			mudou = true
		}
	}
	return mudou
}

// ReconciliarReservas é o gêmeo para reservas: Ativa vira Expirada quando a
// expiração passa, e Expirada volta a Ativa se a expiração foi adiada.
func ReconciliarReservas(reservas []registros.Reserva, hoje string) bool {
	mudou := false
	for i := range reservas {
		r := &reservas[i]
		if !r.Ativo() || r.StatusTerminal() {
			continue
		}
		switch {
		case r.DataExpiracao < hoje && r.Status != registros.ReservaExpirada:
			r.Status = registros.ReservaExpirada
			mudou = true
		case r.DataExpiracao >= hoje && r.Status == registros.ReservaExpirada:
			r.Status = registros.ReservaAtiva
			mudou = true
		}
	}
	return mudou
}
