// Package livros implementa o cadastro do acervo: criação, consulta,
// alteração e exclusão lógica dos livros, com ISBN único entre os ativos e
// as guardas de integridade com autores, editoras e empréstimos.
package livros

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"biblioteca-backend/internal/cadastro/validacao"
	"biblioteca-backend/internal/circulacao"
	"biblioteca-backend/internal/historico"
	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/platform/texto"
	"biblioteca-backend/internal/registros"
)

type Service struct {
	reg      *registros.Registros
	circ     *circulacao.Service
	hist     *historico.Service
	relogio  registros.Relogio
	id       registros.GeradorID
	anoCorte int
}

func NewService(reg *registros.Registros, circ *circulacao.Service, hist *historico.Service, anoCorte int) *Service {
	return &Service{
		reg:      reg,
		circ:     circ,
		hist:     hist,
		relogio:  registros.RelogioReal{},
		id:       registros.GeradorULID{},
		anoCorte: anoCorte,
	}
}

func (s *Service) Criar(ctx context.Context, req CriarLivroRequest, usuario string) (*registros.Livro, error) {
	if err := s.validarReferencias(ctx, req.Autores, req.Editoras); err != nil {
		return nil, err
	}
	if err := s.validarAnoPublicacao(req.AnoPublicacao); err != nil {
		return nil, err
	}

	itens := s.reg.Livros.Carregar(ctx)
	for _, l := range itens {
		if l.Ativo() && l.ISBN == req.ISBN {
			return nil, apierr.ErrConflict("Já existe um livro com este ISBN")
		}
	}

	l := registros.Livro{
		ID:                s.id.Novo(),
		Titulo:            req.Titulo,
		Autores:           req.Autores,
		ISBN:              req.ISBN,
		Generos:           req.Generos,
		Exemplares:        req.Exemplares,
		Editoras:          req.Editoras,
		AnoPublicacao:     req.AnoPublicacao,
		LocalizacaoFisica: req.LocalizacaoFisica,
	}
	itens = append(itens, l)
	if err := s.reg.Livros.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, l.ID, usuario, map[string]registros.Alteracao{
		"criacao": {Anterior: nil, Novo: l},
	})
	return &l, nil
}

func (s *Service) Editar(ctx context.Context, id string, req EditarLivroRequest, usuario string) (*registros.Livro, error) {
	if err := s.validarReferencias(ctx, req.Autores, req.Editoras); err != nil {
		return nil, err
	}
	if err := s.validarAnoPublicacao(req.AnoPublicacao); err != nil {
		return nil, err
	}

	itens := s.reg.Livros.Carregar(ctx)
	l := buscar(itens, id)
	if l == nil {
		return nil, apierr.ErrNotFound("Livro não encontrado")
	}
	for _, outro := range itens {
		if outro.ID != id && outro.Ativo() && outro.ISBN == req.ISBN {
			return nil, apierr.ErrConflict("Já existe um livro com este ISBN")
		}
	}

	// Reduzir exemplares abaixo dos empréstimos em aberto deixaria a
	// disponibilidade negativa.
	emprestimos, err := s.circ.CarregarEmprestimos(ctx)
	if err != nil {
		return nil, err
	}
	emAberto := l.Exemplares - circulacao.ExemplaresDisponiveis(*l, emprestimos)
	if req.Exemplares < emAberto {
		return nil, apierr.ErrConflict(
			fmt.Sprintf("Não é possível reduzir os exemplares abaixo dos %d empréstimos em aberto", emAberto))
	}

	anterior := *l
	l.Titulo = req.Titulo
	l.Autores = req.Autores
	l.ISBN = req.ISBN
	l.Generos = req.Generos
	l.Exemplares = req.Exemplares
	l.Editoras = req.Editoras
	l.AnoPublicacao = req.AnoPublicacao
	l.LocalizacaoFisica = req.LocalizacaoFisica

	if err := s.reg.Livros.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, l.ID, usuario, historico.Diferencas(
		map[string]any{
			"titulo": anterior.Titulo, "autores": anterior.Autores, "isbn": anterior.ISBN,
			"generos": anterior.Generos, "exemplares": anterior.Exemplares, "editoras": anterior.Editoras,
			"anoPublicacao": anterior.AnoPublicacao, "localizacaoFisica": anterior.LocalizacaoFisica,
		},
		map[string]any{
			"titulo": l.Titulo, "autores": l.Autores, "isbn": l.ISBN,
			"generos": l.Generos, "exemplares": l.Exemplares, "editoras": l.Editoras,
			"anoPublicacao": l.AnoPublicacao, "localizacaoFisica": l.LocalizacaoFisica,
		},
	))
	return l, nil
}

// Excluir faz a exclusão lógica, barrada enquanto houver empréstimo
// pendente sobre o livro.
func (s *Service) Excluir(ctx context.Context, id, usuario string) error {
	itens := s.reg.Livros.Carregar(ctx)
	l := buscar(itens, id)
	if l == nil {
		return apierr.ErrNotFound("Livro não encontrado")
	}

	bloqueio, err := s.circ.PodeExcluirLivro(ctx, id)
	if err != nil {
		return err
	}
	if !bloqueio.Pode {
		return apierr.ErrConflict("Não é possível excluir livro com empréstimos pendentes", bloqueio.Bloqueios...)
	}

	retrato := *l
	l.Exclusao = &registros.Exclusao{Em: s.relogio.Agora(), Por: usuario}
	if err := s.reg.Livros.Salvar(ctx, itens); err != nil {
		return err
	}
	if err := s.hist.RegistrarExclusao(ctx, "Livro", l.ID, usuario, retrato); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de exclusão: %v", err)
	}
	return nil
}

func (s *Service) Buscar(ctx context.Context, id string) (*registros.Livro, error) {
	l := buscar(s.reg.Livros.Carregar(ctx), id)
	if l == nil {
		return nil, apierr.ErrNotFound("Livro não encontrado")
	}
	return l, nil
}

func (s *Service) Listar(ctx context.Context, f FiltroLivro) []registros.Livro {
	var saida []registros.Livro
	for _, l := range s.reg.Livros.Carregar(ctx) {
		if !l.Ativo() {
			continue
		}
		if !texto.Contem(l.Titulo, f.Titulo) {
			continue
		}
		if f.AutorID != "" && !contem(l.Autores, f.AutorID) {
			continue
		}
		if f.ISBN != "" && l.ISBN != f.ISBN {
			continue
		}
		if f.Genero != "" && !contem(l.Generos, f.Genero) {
			continue
		}
		saida = append(saida, l)
	}
	sort.Slice(saida, func(i, j int) bool {
		return texto.Normalizar(saida[i].Titulo) < texto.Normalizar(saida[j].Titulo)
	})
	return saida
}

func (s *Service) validarReferencias(ctx context.Context, autores, editoras []string) error {
	ativos := map[string]bool{}
	for _, a := range s.reg.Autores.Carregar(ctx) {
		if a.Ativo() {
			ativos[a.ID] = true
		}
	}
	for _, id := range autores {
		if !ativos[id] {
			return apierr.ErrInvalid("Autor não cadastrado: " + id)
		}
	}
	if len(editoras) == 0 {
		return nil
	}
	ativas := map[string]bool{}
	for _, e := range s.reg.Editoras.Carregar(ctx) {
		if e.Ativo() {
			ativas[e.ID] = true
		}
	}
	for _, id := range editoras {
		if !ativas[id] {
			return apierr.ErrInvalid("Editora não cadastrada: " + id)
		}
	}
	return nil
}

func (s *Service) validarAnoPublicacao(ano string) error {
	if ano == "" {
		return nil
	}
	if !validacao.Ano(ano) {
		return apierr.ErrInvalid("Ano de publicação inválido")
	}
	if v, _ := strconv.Atoi(ano); v > s.anoCorte {
		return apierr.ErrInvalid(fmt.Sprintf("Ano de publicação não pode ser posterior a %d", s.anoCorte))
	}
	return nil
}

func (s *Service) auditar(ctx context.Context, id, usuario string, alteracoes map[string]registros.Alteracao) {
	if err := s.hist.RegistrarEdicao(ctx, "Livro", id, usuario, alteracoes); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de livro: %v", err)
	}
}

func buscar(itens []registros.Livro, id string) *registros.Livro {
	for i := range itens {
		if itens[i].ID == id && itens[i].Ativo() {
			return &itens[i]
		}
	}
	return nil
}

func contem(itens []string, valor string) bool {
	for _, v := range itens {
		if v == valor {
			return true
		}
	}
	return false
}
