// Package alunos implementa o cadastro de alunos: criação, consulta,
// alteração e exclusão lógica, com as validações de campo do formulário
// original e a guarda de pendências na exclusão.
package alunos

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

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

func (s *Service) Criar(ctx context.Context, req CriarAlunoRequest, usuario string) (*registros.Aluno, error) {
	if !validacao.EmailInstitucional(req.EmailInstitucional) {
		return nil, apierr.ErrInvalid("E-mail institucional deve usar o domínio " + validacao.DominioEmail)
	}
	if err := s.validarNascimento(req.DataNascimento); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = registros.AlunoAtivo
	}
	if !statusValido(status) {
		return nil, apierr.ErrInvalid("Status de aluno inválido")
	}

	itens := s.reg.Alunos.Carregar(ctx)
	for _, a := range itens {
		if !a.Ativo() {
			continue
		}
		if a.NumeroMatricula == req.NumeroMatricula {
			return nil, apierr.ErrConflict("Já existe um aluno com este Nº de Matrícula")
		}
		if texto.Igual(a.EmailInstitucional, req.EmailInstitucional) {
			return nil, apierr.ErrConflict("Já existe um aluno com este e-mail")
		}
	}

	a := registros.Aluno{
		ID:                 s.id.Novo(),
		Nome:               req.Nome,
		NumeroMatricula:    req.NumeroMatricula,
		EmailInstitucional: req.EmailInstitucional,
		DataNascimento:     req.DataNascimento,
		Telefone:           req.Telefone,
		Status:             status,
		DataCadastro:       s.relogio.Agora(),
	}
	itens = append(itens, a)
	if err := s.reg.Alunos.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, a.ID, usuario, map[string]registros.Alteracao{
		"criacao": {Anterior: nil, Novo: a},
	})
	return &a, nil
}

func (s *Service) Editar(ctx context.Context, id string, req EditarAlunoRequest, usuario string) (*registros.Aluno, error) {
	if err := s.validarNascimento(req.DataNascimento); err != nil {
		return nil, err
	}
	if !statusValido(req.Status) {
		return nil, apierr.ErrInvalid("Status de aluno inválido")
	}

	itens := s.reg.Alunos.Carregar(ctx)
	a := buscar(itens, id)
	if a == nil {
		return nil, apierr.ErrNotFound("Aluno não encontrado")
	}

	anterior := *a
	a.Nome = req.Nome
	a.DataNascimento = req.DataNascimento
	a.Telefone = req.Telefone
	a.Status = req.Status

	if err := s.reg.Alunos.Salvar(ctx, itens); err != nil {
		return nil, err
	}
	s.auditar(ctx, a.ID, usuario, historico.Diferencas(
		map[string]any{"nome": anterior.Nome, "dataNascimento": anterior.DataNascimento, "telefone": anterior.Telefone, "status": anterior.Status},
		map[string]any{"nome": a.Nome, "dataNascimento": a.DataNascimento, "telefone": a.Telefone, "status": a.Status},
	))
	return a, nil
}

// Excluir faz a exclusão lógica, barrada enquanto o aluno tiver
// empréstimos pendentes.
func (s *Service) Excluir(ctx context.Context, id, usuario string) error {
	itens := s.reg.Alunos.Carregar(ctx)
	a := buscar(itens, id)
	if a == nil {
		return apierr.ErrNotFound("Aluno não encontrado")
	}

	bloqueio, err := s.circ.PodeExcluirAluno(ctx, id)
	if err != nil {
		return err
	}
	if !bloqueio.Pode {
		return apierr.ErrConflict("Não é possível excluir aluno com pendências. Resolva as pendências primeiro.", bloqueio.Bloqueios...)
	}

	retrato := *a
	a.Exclusao = &registros.Exclusao{Em: s.relogio.Agora(), Por: usuario}
	if err := s.reg.Alunos.Salvar(ctx, itens); err != nil {
		return err
	}
	if err := s.hist.RegistrarExclusao(ctx, "Aluno", a.ID, usuario, retrato); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de exclusão: %v", err)
	}
	return nil
}

func (s *Service) Buscar(ctx context.Context, id string) (*registros.Aluno, error) {
	a := buscar(s.reg.Alunos.Carregar(ctx), id)
	if a == nil {
		return nil, apierr.ErrNotFound("Aluno não encontrado")
	}
	return a, nil
}

// Listar aplica os filtros da consulta sobre os alunos vivos, ordenados
// por nome. O filtro de pendências olha os empréstimos reconciliados.
func (s *Service) Listar(ctx context.Context, f FiltroAluno) ([]registros.Aluno, error) {
	var pendentes map[string]bool
	if f.Pendencias == "Sim" || f.Pendencias == "Não" {
		emprestimos, err := s.circ.CarregarEmprestimos(ctx)
		if err != nil {
			return nil, err
		}
		pendentes = map[string]bool{}
		for _, e := range emprestimos {
			if e.Pendente() {
				pendentes[e.AlunoID] = true
			}
		}
	}

	var saida []registros.Aluno
	for _, a := range s.reg.Alunos.Carregar(ctx) {
		if !a.Ativo() {
			continue
		}
		if !texto.Contem(a.Nome, f.Nome) {
			continue
		}
		if f.NumeroMatricula != "" && a.NumeroMatricula != f.NumeroMatricula {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Pendencias == "Sim" && !pendentes[a.ID] {
			continue
		}
		if f.Pendencias == "Não" && pendentes[a.ID] {
			continue
		}
		saida = append(saida, a)
	}
	sort.Slice(saida, func(i, j int) bool {
		return texto.Normalizar(saida[i].Nome) < texto.Normalizar(saida[j].Nome)
	})
	return saida, nil
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
	if err := s.hist.RegistrarEdicao(ctx, "Aluno", id, usuario, alteracoes); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de aluno: %v", err)
	}
}

func statusValido(s string) bool {
	switch s {
	case registros.AlunoAtivo, registros.AlunoInativo, registros.AlunoSuspenso:
		return true
	}
	return false
}

func buscar(itens []registros.Aluno, id string) *registros.Aluno {
	for i := range itens {
		if itens[i].ID == id && itens[i].Ativo() {
			return &itens[i]
		}
	}
	return nil
}
