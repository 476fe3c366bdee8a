package circulacao

import (
	"context"
	"fmt"

	"biblioteca-backend/internal/registros"
)

// Bloqueio é a decisão da guarda de exclusão: se pode excluir e, quando
// não, quais registros seguram a exclusão, rotulados para o usuário.
type Bloqueio struct {
	Pode      bool     `json:"pode"`
	Bloqueios []string `json:"bloqueios,omitempty"`
}

// PodeExcluirAluno barra a exclusão enquanto o aluno tiver empréstimo
// pendente (Ativo, Atrasado ou Perdido).
func (s *Service) PodeExcluirAluno(ctx context.Context, alunoID string) (Bloqueio, error) {
	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return Bloqueio{}, err
	}
	titulos := titulosPorLivro(s.reg.Livros.Carregar(ctx))
	var bloqueios []string
	for _, e := range emprestimos {
		if e.AlunoID == alunoID && e.Pendente() {
			bloqueios = append(bloqueios, rotuloEmprestimo(e, titulos[e.LivroID]))
		}
	}
	return Bloqueio{Pode: len(bloqueios) == 0, Bloqueios: bloqueios}, nil
}

// PodeExcluirLivro barra a exclusão enquanto houver empréstimo pendente
// sobre o livro.
func (s *Service) PodeExcluirLivro(ctx context.Context, livroID string) (Bloqueio, error) {
	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return Bloqueio{}, err
	}
	titulos := titulosPorLivro(s.reg.Livros.Carregar(ctx))
	var bloqueios []string
	for _, e := range emprestimos {
		if e.LivroID == livroID && e.Pendente() {
			bloqueios = append(bloqueios, rotuloEmprestimo(e, titulos[e.LivroID]))
		}
	}
	return Bloqueio{Pode: len(bloqueios) == 0, Bloqueios: bloqueios}, nil
}

// PodeExcluirAutor barra a exclusão enquanto algum livro ativo referenciar
// o autor.
func (s *Service) PodeExcluirAutor(ctx context.Context, autorID string) (Bloqueio, error) {
	return s.bloqueioPorLivros(ctx, func(l registros.Livro) bool {
		return contem(l.Autores, autorID)
	}), nil
}

// PodeExcluirEditora barra a exclusão enquanto algum livro ativo
// referenciar a editora.
func (s *Service) PodeExcluirEditora(ctx context.Context, editoraID string) (Bloqueio, error) {
	return s.bloqueioPorLivros(ctx, func(l registros.Livro) bool {
		return contem(l.Editoras, editoraID)
	}), nil
}

func (s *Service) bloqueioPorLivros(ctx context.Context, referencia func(registros.Livro) bool) Bloqueio {
	var bloqueios []string
	for _, l := range s.reg.Livros.Carregar(ctx) {
		if l.Ativo() && referencia(l) {
			bloqueios = append(bloqueios, l.Titulo)
		}
	}
	return Bloqueio{Pode: len(bloqueios) == 0, Bloqueios: bloqueios}
}

func rotuloEmprestimo(e registros.Emprestimo, titulo string) string {
	if titulo == "" {
		titulo = e.LivroID
	}
	return fmt.Sprintf("Empréstimo %s do livro %q (%s)", e.ID, titulo, e.Status)
}

func titulosPorLivro(livros []registros.Livro) map[string]string {
	m := make(map[string]string, len(livros))
	for _, l := range livros {
		m[l.ID] = l.Titulo
	}
	return m
}

func contem(itens []string, valor string) bool {
	for _, v := range itens {
		if v == valor {
			return true
		}
	}
	return false
}
