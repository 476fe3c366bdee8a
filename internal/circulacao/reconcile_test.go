package circulacao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"biblioteca-backend/internal/registros"
)

const hojeTeste = "2025-03-15"

func TestReconciliarEmprestimos(t *testing.T) {
	tests := []struct {
		name       string
		emprestimo registros.Emprestimo
		wantStatus string
		wantMudou  bool
	}{
		{
			name:       "vencido vira Atrasado",
			emprestimo: registros.Emprestimo{Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: "2025-03-14"},
			wantStatus: registros.EmprestimoAtrasado,
			wantMudou:  true,
		},
		{
			name:       "vence hoje continua Ativo",
			emprestimo: registros.Emprestimo{Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: "2025-03-15"},
			wantStatus: registros.EmprestimoAtivo,
			wantMudou:  false,
		},
		{
			name:       "prazo reestendido volta a Ativo",
			emprestimo: registros.Emprestimo{Status: registros.EmprestimoAtrasado, DataDevolucaoPrevista: "2025-03-20"},
			wantStatus: registros.EmprestimoAtivo,
			wantMudou:  true,
		},
		{
			name:       "ja Atrasado nao muda de novo",
			emprestimo: registros.Emprestimo{Status: registros.EmprestimoAtrasado, DataDevolucaoPrevista: "2025-03-01"},
			wantStatus: registros.EmprestimoAtrasado,
			wantMudou:  false,
		},
		{
			name:       "Devolvido vencido nao e tocado",
			emprestimo: registros.Emprestimo{Status: registros.EmprestimoDevolvido, DataDevolucaoPrevista: "2025-03-01"},
			wantStatus: registros.EmprestimoDevolvido,
			wantMudou:  false,
		},
		{
			name:       "Perdido nao e tocado",
			emprestimo: registros.Emprestimo{Status: registros.EmprestimoPerdido, DataDevolucaoPrevista: "2025-03-01"},
			wantStatus: registros.EmprestimoPerdido,
			wantMudou:  false,
		},
		{
			name: "excluido nao e tocado",
			emprestimo: registros.Emprestimo{
				Status:                registros.EmprestimoAtivo,
				DataDevolucaoPrevista: "2025-03-01",
				Exclusao:              &registros.Exclusao{Em: time.Now(), Por: "admin"},
			},
			wantStatus: registros.EmprestimoAtivo,
			wantMudou:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emprestimos := []registros.Emprestimo{tt.emprestimo}
			mudou := ReconciliarEmprestimos(emprestimos, hojeTeste)
			assert.Equal(t, tt.wantMudou, mudou)
			assert.Equal(t, tt.wantStatus, emprestimos[0].Status)
		})
	}
}

func TestReconciliarEmprestimos_Idempotente(t *testing.T) {
	emprestimos := []registros.Emprestimo{
		{Status: registros.EmprestimoAtivo, DataDevolucaoPrevista: "2025-03-10"},
		{Status: registros.EmprestimoAtrasado, DataDevolucaoPrevista: "2025-03-20"},
	}
	assert.True(t, ReconciliarEmprestimos(emprestimos, hojeTeste))
	assert.False(t, ReconciliarEmprestimos(emprestimos, hojeTeste))
	assert.Equal(t, registros.EmprestimoAtrasado, emprestimos[0].Status)
	assert.Equal(t, registros.EmprestimoAtivo, emprestimos[1].Status)
}

func TestReconciliarReservas(t *testing.T) {
	tests := []struct {
		name       string
		reserva    registros.Reserva
		wantStatus string
		wantMudou  bool
	}{
		{
			name:       "expirada vira Expirada",
			reserva:    registros.Reserva{Status: registros.ReservaAtiva, DataExpiracao: "2025-03-14"},
			wantStatus: registros.ReservaExpirada,
			wantMudou:  true,
		},
		{
			name:       "expira hoje continua Ativa",
			reserva:    registros.Reserva{Status: registros.ReservaAtiva, DataExpiracao: "2025-03-15"},
			wantStatus: registros.ReservaAtiva,
			wantMudou:  false,
		},
		{
			name:       "expiracao adiada volta a Ativa",
			reserva:    registros.Reserva{Status: registros.ReservaExpirada, DataExpiracao: "2025-03-20"},
			wantStatus: registros.ReservaAtiva,
			wantMudou:  true,
		},
		{
			name:       "Cancelada nao e tocada",
			reserva:    registros.Reserva{Status: registros.ReservaCancelada, DataExpiracao: "2025-03-01"},
			wantStatus: registros.ReservaCancelada,
			wantMudou:  false,
		},
		{
			name:       "Concluida nao e tocada",
			reserva:    registros.Reserva{Status: registros.ReservaConcluida, DataExpiracao: "2025-03-01"},
			wantStatus: registros.ReservaConcluida,
			wantMudou:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservas := []registros.Reserva{tt.reserva}
			mudou := ReconciliarReservas(reservas, hojeTeste)
			assert.Equal(t, tt.wantMudou, mudou)
			assert.Equal(t, tt.wantStatus, reservas[0].Status)
		})
	}
}
