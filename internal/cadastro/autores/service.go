// Package autores implementa o cadastro de autores. A exclusão é barrada
// enquanto algum livro ativo referenciar o autor.
package autores

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

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

func (s *Service) Criar(ctx context.Context, req CriarAutorRequest, usuario string) (*registros.Autor, error) {
	if err := s.validarNascimento(req.DataNascimento); err != nil {
		return nil, err
	}

	itens := s.reg.Autores.Carregar(ctx)
	a := registros.Autor{
		ID:             s.id.Novo(),
		Nome:           req.Nome,
		Nacionalidade:  req.Nacionalidade,
		DataNascimento: req.DataNascimento,
		Biografia:      req.Biografia,
	}
	itens = append(itens, a)
	if err := s.reg.Autores.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, a.ID, usuario, map[string]registros.Alteracao{
		"criacao": {Anterior: nil, Novo: a},
	})
	return &a, nil
}

func (s *Service) Editar(ctx context.Context, id string, req EditarAutorRequest, usuario string) (*registros.Autor, error) {
	if err := s.validarNascimento(req.DataNascimento); err != nil {
		return nil, err
	}

	itens := s.reg.Autores.Carregar(ctx)
	a := buscar(itens, id)
	if a == nil {
		return nil, apierr.ErrNotFound("Autor não encontrado")
	}

	anterior := *a
	a.Nome = req.Nome
	a.Nacionalidade = req.Nacionalidade
	a.DataNascimento = req.DataNascimento
	a.Biografia = req.Biografia

	if err := s.reg.Autores.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, a.ID, usuario, historico.Diferencas(
		map[string]any{"nome": anterior.Nome, "nacionalidade": anterior.Nacionalidade, "dataNascimento": anterior.DataNascimento, "biografia": anterior.Biografia},
		map[string]any{"nome": a.Nome, "nacionalidade": a.Nacionalidade, "dataNascimento": a.DataNascimento, "biografia": a.Biografia},
	))
	return a, nil
}

func (s *Service) Excluir(ctx context.Context, id, usuario string) error {
	itens := s.reg.Autores.Carregar(ctx)
	a := buscar(itens, id)
	if a == nil {
		return apierr.ErrNotFound("Autor não encontrado")
	}

	bloqueio, err := s.circ.PodeExcluirAutor(ctx, id)
	if err != nil {
		return err
	}
	if !bloqueio.Pode {
		return apierr.ErrConflict("Não é possível excluir autor associado a livros. Desvincule o autor de todos os livros primeiro.", bloqueio.Bloqueios...)
	}

	retrato := *a
	a.Exclusao = &registros.Exclusao{Em: s.relogio.Agora(), Por: usuario}
	if err := s.reg.Autores.Salvar(ctx, itens); err != nil {
		return err
	}
	if err := s.hist.RegistrarExclusao(ctx, "Autor", a.ID, usuario, retrato); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de exclusão: %v", err)
	}
	return nil
}

func (s *Service) Buscar(ctx context.Context, id string) (*registros.Autor, error) {
	a := buscar(s.reg.Autores.Carregar(ctx), id)
	if a == nil {
		return nil, apierr.ErrNotFound("Autor não encontrado")
	}
	return a, nil
}

func (s *Service) Listar(ctx context.Context, f FiltroAutor) []registros.Autor {
	var saida []registros.Autor
	for _, a := range s.reg.Autores.Carregar(ctx) {
		if !a.Ativo() {
			continue
		}
		if !texto.Contem(a.Nome, f.Nome) {
			continue
		}
		if !texto.Contem(a.Nacionalidade, f.Nacionalidade) {
			continue
		}
		saida = append(saida, a)
	}
	sort.Slice(saida, func(i, j int) bool {
		return texto.Normalizar(saida[i].Nome) < texto.Normalizar(saida[j].Nome)
	})
	return saida
}

func (s *Service) validarNascimento(data string) error {
	if data == "" {
		return nil
	}
	nascimento, err := time.Parse(registros.FormatoData, data)
	if err != nil {
		return apierr.ErrInvalid("Data de nascimento inválida. Use o formato AAAA-MM-DD")
	}
	if nascimento.Year() > s.anoCorte {
		return apierr.ErrInvalid(fmt.Sprintf("Ano de nascimento não pode ser posterior a %d", s.anoCorte))
	}
	return nil
}

func (s *Service) auditar(ctx context.Context, id, usuario string, alteracoes map[string]registros.Alteracao) {
	if err := s.hist.RegistrarEdicao(ctx, "Autor", id, usuario, alteracoes); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de autor: %v", err)
	}
}

func buscar(itens []registros.Autor, id string) *registros.Autor {
	for i := range itens {
		if itens[i].ID == id && itens[i].Ativo() {
			return &itens[i]
		}
	}
	return nil
}
