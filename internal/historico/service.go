// Package historico registra o histórico de edições e exclusões.
// É o colaborador de auditoria: os serviços disparam um registro a cada
// mutação bem-sucedida, com o retrato anterior/novo de cada campo alterado.
package historico

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"biblioteca-backend/internal/registros"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Service struct {
	reg     *registros.Registros
	relogio registros.Relogio
	id      registros.GeradorID
}

func NewService(reg *registros.Registros) *Service {
	return &Service{reg: reg, relogio: registros.RelogioReal{}, id: registros.GeradorULID{}}
}

// NewServiceComRelogio existe para os testes fixarem o tempo.
func NewServiceComRelogio(reg *registros.Registros, relogio registros.Relogio) *Service {
	return &Service{reg: reg, relogio: relogio, id: registros.GeradorULID{}}
}

// RegistrarEdicao grava um item de histórico com as alterações informadas.
// Chamadores ignoram o erro com um log: a auditoria não aborta a operação
// principal.
func (s *Service) RegistrarEdicao(ctx context.Context, entidade, entidadeID, usuario string, alteracoes map[string]registros.Alteracao) error {
	if len(alteracoes) == 0 {
		return nil
	}
	agora := s.relogio.Agora()
	itens := s.reg.Historico.Carregar(ctx)
	itens = append(itens, registros.HistoricoAlteracao{
		ID:         s.id.Novo(),
		Entidade:   entidade,
		EntidadeID: entidadeID,
		Data:       agora.Format(registros.FormatoData),
		Hora:       agora.Format("15:04:05"),
		Usuario:    usuario,
		Alteracoes: alteracoes,
	})
	return s.reg.Historico.Salvar(ctx, itens)
}

// RegistrarExclusao grava a exclusão com o retrato completo do registro.
func (s *Service) RegistrarExclusao(ctx context.Context, entidade, entidadeID, usuario string, registro any) error {
	return s.RegistrarEdicao(ctx, entidade, entidadeID, usuario, map[string]registros.Alteracao{
		"exclusao": {Anterior: registro, Novo: nil},
	})
}

type Filtro struct {
	Entidade   string
	EntidadeID string
}

func (s *Service) Listar(ctx context.Context, f Filtro) []registros.HistoricoAlteracao {
	itens := s.reg.Historico.Carregar(ctx)
	if f.Entidade == "" && f.EntidadeID == "" {
		return itens
	}
	var saida []registros.HistoricoAlteracao
	for _, h := range itens {
		if f.Entidade != "" && h.Entidade != f.Entidade {
			continue
		}
		if f.EntidadeID != "" && h.EntidadeID != f.EntidadeID {
			continue
		}
		saida = append(saida, h)
	}
	return saida
}

// Diferencas monta o mapa anterior/novo dos campos que mudaram, comparando
// os valores pela forma serializada.
func Diferencas(anterior, novo map[string]any) map[string]registros.Alteracao {
	alteracoes := map[string]registros.Alteracao{}
	for campo, valorNovo := range novo {
		valorAnterior := anterior[campo]
		a, _ := json.Marshal(valorAnterior)
		n, _ := json.Marshal(valorNovo)
		if string(a) != string(n) {
			alteracoes[campo] = registros.Alteracao{Anterior: valorAnterior, Novo: valorNovo}
		}
	}
	return alteracoes
}
