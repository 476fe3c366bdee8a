// Package editoras implementa o cadastro de editoras.
package editoras

import (
	"context"
	"log"
	"sort"

	"biblioteca-backend/internal/circulacao"
	"biblioteca-backend/internal/historico"
	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/platform/texto"
	"biblioteca-backend/internal/registros"
)

type Service struct {
	reg     *registros.Registros
	circ    *circulacao.Service
	hist    *historico.Service
	relogio registros.Relogio
	id      registros.GeradorID
}

func NewService(reg *registros.Registros, circ *circulacao.Service, hist *historico.Service) *Service {
	return &Service{
		reg:     reg,
		circ:    circ,
		hist:    hist,
		relogio: registros.RelogioReal{},
		id:      registros.GeradorULID{},
	}
}

func (s *Service) Criar(ctx context.Context, req CriarEditoraRequest, usuario string) (*registros.Editora, error) {
	itens := s.reg.Editoras.Carregar(ctx)
	for _, e := range itens {
		if e.Ativo() && texto.Igual(e.Nome, req.Nome) {
			return nil, apierr.ErrConflict("Já existe uma editora cadastrada com este nome")
		}
	}

	status := req.Status
	if status == "" {
		status = registros.EditoraAtiva
	}
	e := registros.Editora{
		ID:       s.id.Novo(),
		Nome:     req.Nome,
		Endereco: req.Endereco,
		Status:   status,
	}
	itens = append(itens, e)
	if err := s.reg.Editoras.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, e.ID, usuario, map[string]registros.Alteracao{
		"criacao": {Anterior: nil, Novo: e},
	})
	return &e, nil
}

func (s *Service) Editar(ctx context.Context, id string, req EditarEditoraRequest, usuario string) (*registros.Editora, error) {
	itens := s.reg.Editoras.Carregar(ctx)
	e := buscar(itens, id)
	if e == nil {
		return nil, apierr.ErrNotFound("Editora não encontrada")
	}
	for i := range itens {
		if itens[i].ID != id && itens[i].Ativo() && texto.Igual(itens[i].Nome, req.Nome) {
			return nil, apierr.ErrConflict("Já existe uma editora cadastrada com este nome")
		}
	}

	anterior := *e
	e.Nome = req.Nome
	e.Endereco = req.Endereco
	e.Status = req.Status

	if err := s.reg.Editoras.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, e.ID, usuario, historico.Diferencas(
		map[string]any{"nome": anterior.Nome, "endereco": anterior.Endereco, "status": anterior.Status},
		map[string]any{"nome": e.Nome, "endereco": e.Endereco, "status": e.Status},
	))
	return e, nil
}

func (s *Service) Excluir(ctx context.Context, id, usuario string) error {
	itens := s.reg.Editoras.Carregar(ctx)
	e := buscar(itens, id)
	if e == nil {
		return apierr.ErrNotFound("Editora não encontrada")
	}

	bloqueio, err := s.circ.PodeExcluirEditora(ctx, id)
	if err != nil {
		return err
	}
	if !bloqueio.Pode {
		return apierr.ErrConflict("Não é possível excluir editora associada a livros. Desvincule a editora de todos os livros primeiro.", bloqueio.Bloqueios...)
	}

	retrato := *e
	e.Exclusao = &registros.Exclusao{Em: s.relogio.Agora(), Por: usuario}
	if err := s.reg.Editoras.Salvar(ctx, itens); err != nil {
		return err
	}
	if err := s.hist.RegistrarExclusao(ctx, "Editora", e.ID, usuario, retrato); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de exclusão: %v", err)
	}
	return nil
}

func (s *Service) Buscar(ctx context.Context, id string) (*registros.Editora, error) {
	e := buscar(s.reg.Editoras.Carregar(ctx), id)
	if e == nil {
		return nil, apierr.ErrNotFound("Editora não encontrada")
	}
	return e, nil
}

func (s *Service) Listar(ctx context.Context, f FiltroEditora) []registros.Editora {
	var saida []registros.Editora
	for _, e := range s.reg.Editoras.Carregar(ctx) {
		if !e.Ativo() {
			continue
		}
		if !texto.Contem(e.Nome, f.Nome) {
			continue
		}
		if f.Status != "" && f.Status != "Todos" && e.Status != f.Status {
			continue
		}
		saida = append(saida, e)
	}
	sort.Slice(saida, func(i, j int) bool {
		return texto.Normalizar(saida[i].Nome) < texto.Normalizar(saida[j].Nome)
	})
	return saida
}

func (s *Service) auditar(ctx context.Context, id, usuario string, alteracoes map[string]registros.Alteracao) {
	if err := s.hist.RegistrarEdicao(ctx, "Editora", id, usuario, alteracoes); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de editora: %v", err)
	}
}

func buscar(itens []registros.Editora, id string) *registros.Editora {
	for i := range itens {
		if itens[i].ID == id && itens[i].Ativo() {
			return &itens[i]
		}
	}
	return nil
}
