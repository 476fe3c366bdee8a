// Package relatorios agrega as coleções reconciliadas em contagens para
// os painéis da biblioteca.
package relatorios

import (
	"context"
	"sort"

	"biblioteca-backend/internal/circulacao"
	"biblioteca-backend/internal/platform/texto"
	"biblioteca-backend/internal/registros"
)

type Service struct {
	reg  *registros.Registros
	circ *circulacao.Service
}

func NewService(reg *registros.Registros, circ *circulacao.Service) *Service {
	return &Service{reg: reg, circ: circ}
}

// GeneroContagem é uma linha do relatório de empréstimos por gênero.
type GeneroContagem struct {
	Genero string `json:"genero"`
	Total  int    `json:"total"`
}

// EmprestimosPorGenero conta todos os empréstimos não excluídos por gênero
// do livro emprestado. Livros sem gênero entram como "Sem gênero".
func (s *Service) EmprestimosPorGenero(ctx context.Context) ([]GeneroContagem, error) {
	emprestimos, err := s.circ.CarregarEmprestimos(ctx)
	if err != nil {
		return nil, err
	}
	generos := make(map[string][]string)
	for _, l := range s.reg.Livros.Carregar(ctx) {
		generos[l.ID] = l.Generos
	}

	contagem := make(map[string]int)
	for _, e := range emprestimos {
		if !e.Ativo() {
			continue
		}
		gs := generos[e.LivroID]
		if len(gs) == 0 {
			contagem["Sem gênero"]++
			continue
		}
		for _, g := range gs {
			contagem[g]++
		}
	}

	saida := make([]GeneroContagem, 0, len(contagem))
	for g, n := range contagem {
		saida = append(saida, GeneroContagem{Genero: g, Total: n})
	}
	sort.Slice(saida, func(i, j int) bool {
		if saida[i].Total != saida[j].Total {
			return saida[i].Total > saida[j].Total
		}
		return texto.Normalizar(saida[i].Genero) < texto.Normalizar(saida[j].Genero)
	})
	return saida, nil
}

// Circulacao resume empréstimos e reservas vivos por status.
type Circulacao struct {
	Emprestimos map[string]int `json:"emprestimos"`
	Reservas    map[string]int `json:"reservas"`
}

func (s *Service) Circulacao(ctx context.Context) (Circulacao, error) {
	emprestimos, err := s.circ.CarregarEmprestimos(ctx)
	if err != nil {
		return Circulacao{}, err
	}
	reservas, err := s.circ.CarregarReservas(ctx)
	if err != nil {
		return Circulacao{}, err
	}

	rel := Circulacao{
		Emprestimos: map[string]int{
			registros.EmprestimoAtivo:     0,
			registros.EmprestimoAtrasado:  0,
			registros.EmprestimoDevolvido: 0,
			registros.EmprestimoPerdido:   0,
		},
		Reservas: map[string]int{
			registros.ReservaAtiva:     0,
			registros.ReservaExpirada:  0,
			registros.ReservaCancelada: 0,
			registros.ReservaConcluida: 0,
		},
	}
	for _, e := range emprestimos {
		if e.Ativo() {
			rel.Emprestimos[e.Status]++
		}
	}
	for _, r := range reservas {
		if r.Ativo() {
			rel.Reservas[r.Status]++
		}
	}
	return rel, nil
}
