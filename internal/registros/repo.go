package registros

import (
	"context"
	"log"

	jsoniter "github.com/json-iterator/go"

	"biblioteca-backend/internal/platform/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repo lê e grava uma coleção tipada inteira. Payload ausente ou corrompido
// vira coleção vazia: o dado é cache local e reconstruível, não se propaga
// erro de leitura.
type Repo[T any] struct {
	col   storage.Collections
	chave string
}

func (r *Repo[T]) Carregar(ctx context.Context) []T {
	payload, err := r.col.Load(ctx, r.chave)
	if err != nil {
		log.Printf("[WARN] falha ao carregar a coleção %s: %v", r.chave, err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	var itens []T
	if err := json.Unmarshal(payload, &itens); err != nil {
		log.Printf("[WARN] coleção %s corrompida, tratando como vazia: %v", r.chave, err)
		return nil
	}
	return itens
}

func (r *Repo[T]) Salvar(ctx context.Context, itens []T) error {
	if itens == nil {
		itens = []T{}
	}
	payload, err := json.Marshal(itens)
	if err != nil {
		return err
	}
	return r.col.Save(ctx, r.chave, payload)
}

// Registros agrega os repositórios de todas as coleções. É construído uma
// vez na raiz da aplicação e injetado nos serviços.
type Registros struct {
	Alunos      *Repo[Aluno]
	Autores     *Repo[Autor]
	Editoras    *Repo[Editora]
	Livros      *Repo[Livro]
	Emprestimos *Repo[Emprestimo]
	Reservas    *Repo[Reserva]
	Historico   *Repo[HistoricoAlteracao]
}

func Abrir(col storage.Collections) *Registros {
	return &Registros{
		Alunos:      &Repo[Aluno]{col: col, chave: storage.ChaveAlunos},
		Autores:     &Repo[Autor]{col: col, chave: storage.ChaveAutores},
		Editoras:    &Repo[Editora]{col: col, chave: storage.ChaveEditoras},
		Livros:      &Repo[Livro]{col: col, chave: storage.ChaveLivros},
		Emprestimos: &Repo[Emprestimo]{col: col, chave: storage.ChaveEmprestimos},
		Reservas:    &Repo[Reserva]{col: col, chave: storage.ChaveReservas},
		Historico:   &Repo[HistoricoAlteracao]{col: col, chave: storage.ChaveHistorico},
	}
}
