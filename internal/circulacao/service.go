package circulacao

import (
	"context"
	"log"
	"time"

	"biblioteca-backend/internal/historico"
	"biblioteca-backend/internal/platform/apierr"
	"biblioteca-backend/internal/registros"
)

// Config reúne os limites de circulação. Os valores vêm do arquivo de
// configuração; Padrao devolve os limites históricos do sistema.
type Config struct {
	MaxEmprestimosAtivos int
	MaxReservasAtivas    int
	PrazoEmprestimoDias  int
	PrazoReservaDias     int
}

func ConfigPadrao() Config {
	return Config{
		MaxEmprestimosAtivos: 3,
		MaxReservasAtivas:    3,
		PrazoEmprestimoDias:  7,
		PrazoReservaDias:     5,
	}
}

type Service struct {
	reg     *registros.Registros
	hist    *historico.Service
	relogio registros.Relogio
	id      registros.GeradorID
	cfg     Config
}

func NewService(reg *registros.Registros, hist *historico.Service, cfg Config) *Service {
	return &Service{
		reg:     reg,
		hist:    hist,
		relogio: registros.RelogioReal{},
		id:      registros.GeradorULID{},
		cfg:     cfg,
	}
}

// NewServiceComRelogio existe para os testes fixarem o tempo.
func NewServiceComRelogio(reg *registros.Registros, hist *historico.Service, cfg Config, relogio registros.Relogio) *Service {
	s := NewService(reg, hist, cfg)
	s.relogio = relogio
	return s
}

func (s *Service) hoje() string { return registros.Hoje(s.relogio) }

// CarregarEmprestimos carrega a coleção com os status reconciliados contra
// hoje, persistindo uma única vez quando algo mudou. Todo caminho de
// leitura que depende de status passa por aqui: o status persistido pode
// estar vencido entre sessões.
func (s *Service) CarregarEmprestimos(ctx context.Context) ([]registros.Emprestimo, error) {
	emprestimos := s.reg.Emprestimos.Carregar(ctx)
	if ReconciliarEmprestimos(emprestimos, s.hoje()) {
		if err := s.reg.Emprestimos.Salvar(ctx, emprestimos); err != nil {
			return nil, err
		}
	}
	return emprestimos, nil
}

// CarregarReservas é o gêmeo para reservas.
func (s *Service) CarregarReservas(ctx context.Context) ([]registros.Reserva, error) {
	reservas := s.reg.Reservas.Carregar(ctx)
	if ReconciliarReservas(reservas, s.hoje()) {
		if err := s.reg.Reservas.Salvar(ctx, reservas); err != nil {
			return nil, err
		}
	}
	return reservas, nil
}

// Disponibilidade monta o resumo de exemplares e vagas de um livro.
func (s *Service) Disponibilidade(ctx context.Context, livroID string) (Disponibilidade, error) {
	livro := buscarLivro(s.reg.Livros.Carregar(ctx), livroID)
	if livro == nil {
		return Disponibilidade{}, apierr.ErrNotFound("Livro não encontrado")
	}
	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return Disponibilidade{}, err
	}
	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return Disponibilidade{}, err
	}
	disponiveis := ExemplaresDisponiveis(*livro, emprestimos)
	ativas := ReservasAtivasDoLivro(livro.ID, reservas)
	return Disponibilidade{
		LivroID:        livro.ID,
		Titulo:         livro.Titulo,
		Exemplares:     livro.Exemplares,
		Emprestados:    livro.Exemplares - disponiveis,
		Disponiveis:    disponiveis,
		ReservasAtivas: ativas,
		VagasReserva:   VagasReserva(*livro, reservas),
	}, nil
}

// ===== Empréstimos =====

// CriarEmprestimo valida elegibilidade e disponibilidade, cria o registro e
// conclui a reserva do próprio aluno sobre o mesmo livro, se houver.
func (s *Service) CriarEmprestimo(ctx context.Context, req CriarEmprestimoRequest, usuario string) (*registros.Emprestimo, error) {
	agora := s.relogio.Agora()
	hoje := s.hoje()

	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return nil, err
	}
	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return nil, err
	}

	aluno := buscarAluno(s.reg.Alunos.Carregar(ctx), req.AlunoID)
	if err := ValidarAlunoParaEmprestimo(aluno, emprestimos, s.cfg.MaxEmprestimosAtivos); err != nil {
		return nil, err
	}
	livro := buscarLivro(s.reg.Livros.Carregar(ctx), req.LivroID)
	if err := ValidarLivroParaEmprestimo(livro, req.AlunoID, emprestimos, reservas); err != nil {
		return nil, err
	}

	prevista := req.DataDevolucaoPrevista
	if prevista == "" {
		prevista = agora.AddDate(0, 0, s.cfg.PrazoEmprestimoDias).Format(registros.FormatoData)
	}
	if err := validarData(prevista, "Data de devolução prevista"); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = registros.EmprestimoAtivo
	}
	if !statusEmprestimoValido(status) {
		return nil, apierr.ErrInvalid("Status de empréstimo inválido")
	}
	if err := conferirStatusEmprestimo(status, prevista, hoje); err != nil {
		return nil, err
	}

	e := registros.Emprestimo{
		ID:                    s.id.Novo(),
		AlunoID:               req.AlunoID,
		LivroID:               req.LivroID,
		Status:                status,
		DataEmprestimo:        agora,
		DataDevolucaoPrevista: prevista,
		DataCriacao:           agora,
	}
	if status == registros.EmprestimoDevolvido {
		e.DataDevolucaoReal = &agora
	}
	emprestimos = append(emprestimos, e)
	if err := s.reg.Emprestimos.Salvar(ctx, emprestimos); err != nil {
		return nil, err
	}

	// Retirada cumpre a reserva do próprio aluno.
	if sit := ReservaAtivaDoLivro(req.LivroID, req.AlunoID, reservas); sit.Propria != nil {
		sit.Propria.Status = registros.ReservaConcluida
		sit.Propria.DataConclusao = &agora
		if err := s.reg.Reservas.Salvar(ctx, reservas); err != nil {
			return nil, err
		}
		s.auditar(ctx, "Reserva", sit.Propria.ID, usuario, map[string]registros.Alteracao{
			"status": {Anterior: registros.ReservaAtiva, Novo: registros.ReservaConcluida},
		})
	}

	s.auditar(ctx, "Emprestimo", e.ID, usuario, map[string]registros.Alteracao{
		"criacao": {Anterior: nil, Novo: e},
	})
	return &e, nil
}

// EditarEmprestimo altera a devolução prevista e o status, dentro do
// contrato: prevista nunca antes da retirada, Atrasado só com prevista no
// passado, Devolvido carimba a devolução real e sair de Devolvido a limpa.
func (s *Service) EditarEmprestimo(ctx context.Context, id string, req EditarEmprestimoRequest, usuario string) (*registros.Emprestimo, error) {
	agora := s.relogio.Agora()
	hoje := s.hoje()

	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return nil, err
	}
	e := buscarEmprestimo(emprestimos, id)
	if e == nil {
		return nil, apierr.ErrNotFound("Empréstimo não encontrado")
	}

	if err := validarData(req.DataDevolucaoPrevista, "Data de devolução prevista"); err != nil {
		return nil, err
	}
	if !statusEmprestimoValido(req.Status) {
		return nil, apierr.ErrInvalid("Status de empréstimo inválido")
	}
	if req.DataDevolucaoPrevista < e.DataEmprestimo.Format(registros.FormatoData) {
		return nil, apierr.ErrInvalid("Data de devolução prevista não pode ser anterior à data do empréstimo")
	}
	// Na edição só vale o sentido estrito: devolver um livro atrasado é
	// Devolvido com prevista no passado, e isso é legítimo.
	if req.Status == registros.EmprestimoAtrasado && req.DataDevolucaoPrevista >= hoje {
		return nil, apierr.ErrInvalid("Status Atrasado exige data de devolução prevista anterior a hoje")
	}

	anterior := *e
	e.DataDevolucaoPrevista = req.DataDevolucaoPrevista
	e.Status = req.Status
	switch {
	case req.Status == registros.EmprestimoDevolvido && anterior.Status != registros.EmprestimoDevolvido:
		e.DataDevolucaoReal = &agora
	case req.Status != registros.EmprestimoDevolvido:
		e.DataDevolucaoReal = nil
	}

	if err := s.reg.Emprestimos.Salvar(ctx, emprestimos); err != nil {
		return nil, err
	}
	s.auditar(ctx, "Emprestimo", e.ID, usuario, historico.Diferencas(
		map[string]any{"status": anterior.Status, "dataDevolucaoPrevista": anterior.DataDevolucaoPrevista, "dataDevolucaoReal": anterior.DataDevolucaoReal},
		map[string]any{"status": e.Status, "dataDevolucaoPrevista": e.DataDevolucaoPrevista, "dataDevolucaoReal": e.DataDevolucaoReal},
	))
	return e, nil
}

// ExcluirEmprestimo faz a exclusão lógica; só sai da coleção visível um
// empréstimo já resolvido (Devolvido ou Perdido).
func (s *Service) ExcluirEmprestimo(ctx context.Context, id, usuario string) error {
	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return err
	}
	e := buscarEmprestimo(emprestimos, id)
	if e == nil {
		return apierr.ErrNotFound("Empréstimo não encontrado")
	}
	if !e.StatusTerminal() {
		return apierr.ErrEligibility("Só é possível excluir empréstimos devolvidos ou perdidos")
	}
	retrato := *e
	e.Exclusao = &registros.Exclusao{Em: s.relogio.Agora(), Por: usuario}
	if err := s.reg.Emprestimos.Salvar(ctx, emprestimos); err != nil {
		return err
	}
	if err := s.hist.RegistrarExclusao(ctx, "Emprestimo", e.ID, usuario, retrato); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de exclusão: %v", err)
	}
	return nil
}

func (s *Service) BuscarEmprestimo(ctx context.Context, id string) (*registros.Emprestimo, error) {
	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return nil, err
	}
	e := buscarEmprestimo(emprestimos, id)
	if e == nil {
		return nil, apierr.ErrNotFound("Empréstimo não encontrado")
	}
	return e, nil
}

// ListarEmprestimos devolve a coleção reconciliada, sem os excluídos.
func (s *Service) ListarEmprestimos(ctx context.Context, f FiltroEmprestimo) ([]registros.Emprestimo, error) {
	emprestimos, err := s.CarregarEmprestimos(ctx)
	if err != nil {
		return nil, err
	}
	var saida []registros.Emprestimo
	for _, e := range emprestimos {
		if !e.Ativo() {
			continue
		}
		if f.AlunoID != "" && e.AlunoID != f.AlunoID {
			continue
		}
		if f.LivroID != "" && e.LivroID != f.LivroID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		saida = append(saida, e)
	}
	return saida, nil
}

// ===== Reservas =====

func (s *Service) CriarReserva(ctx context.Context, req CriarReservaRequest, usuario string) (*registros.Reserva, error) {
	agora := s.relogio.Agora()
	hoje := s.hoje()

	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return nil, err
	}

	aluno := buscarAluno(s.reg.Alunos.Carregar(ctx), req.AlunoID)
	if err := ValidarAlunoParaReserva(aluno, reservas, s.cfg.MaxReservasAtivas); err != nil {
		return nil, err
	}
	livro := buscarLivro(s.reg.Livros.Carregar(ctx), req.LivroID)
	if err := ValidarLivroParaReserva(livro, req.AlunoID, reservas); err != nil {
		return nil, err
	}

	expiracao := req.DataExpiracao
	if expiracao == "" {
		expiracao = agora.AddDate(0, 0, s.cfg.PrazoReservaDias).Format(registros.FormatoData)
	}
	if err := validarData(expiracao, "Data de expiração"); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = registros.ReservaAtiva
	}
	if !statusReservaValido(status) {
		return nil, apierr.ErrInvalid("Status de reserva inválido")
	}
	if err := conferirStatusReserva(status, expiracao, hoje); err != nil {
		return nil, err
	}

	r := registros.Reserva{
		ID:            s.id.Novo(),
		AlunoID:       req.AlunoID,
		LivroID:       req.LivroID,
		Status:        status,
		DataReserva:   agora,
		DataExpiracao: expiracao,
		DataCriacao:   agora,
	}
	if r.StatusTerminal() {
		r.DataConclusao = &agora
	}
	reservas = append(reservas, r)
	if err := s.reg.Reservas.Salvar(ctx, reservas); err != nil {
		return nil, err
	}
	s.auditar(ctx, "Reserva", r.ID, usuario, map[string]registros.Alteracao{
		"criacao": {Anterior: nil, Novo: r},
	})
	return &r, nil
}

// EditarReserva altera expiração e status: expiração nunca antes da data da
// reserva, Expirada só com expiração no passado, Concluída e Cancelada
// carimbam o encerramento e os demais status o limpam.
func (s *Service) EditarReserva(ctx context.Context, id string, req EditarReservaRequest, usuario string) (*registros.Reserva, error) {
	agora := s.relogio.Agora()
	hoje := s.hoje()

	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return nil, err
	}
	r := buscarReserva(reservas, id)
	if r == nil {
		return nil, apierr.ErrNotFound("Reserva não encontrada")
	}

	if err := validarData(req.DataExpiracao, "Data de expiração"); err != nil {
		return nil, err
	}
	if !statusReservaValido(req.Status) {
		return nil, apierr.ErrInvalid("Status de reserva inválido")
	}
	if req.DataExpiracao < r.DataReserva.Format(registros.FormatoData) {
		return nil, apierr.ErrInvalid("Data de expiração não pode ser anterior à data da reserva")
	}
	if req.Status == registros.ReservaExpirada && req.DataExpiracao >= hoje {
		return nil, apierr.ErrInvalid("Status Expirada exige data de expiração anterior a hoje")
	}

	anterior := *r
	r.DataExpiracao = req.DataExpiracao
	r.Status = req.Status
	if r.StatusTerminal() {
		if !anterior.StatusTerminal() || r.DataConclusao == nil {
			r.DataConclusao = &agora
		}
	} else {
		r.DataConclusao = nil
	}

	if err := s.reg.Reservas.Salvar(ctx, reservas); err != nil {
		return nil, err
	}
	s.auditar(ctx, "Reserva", r.ID, usuario, historico.Diferencas(
		map[string]any{"status": anterior.Status, "dataExpiracao": anterior.DataExpiracao},
		map[string]any{"status": r.Status, "dataExpiracao": r.DataExpiracao},
	))
	return r, nil
}

// ExcluirReserva faz a exclusão lógica; reserva ativa não pode ser
// excluída, cancele ou conclua antes.
func (s *Service) ExcluirReserva(ctx context.Context, id, usuario string) error {
	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return err
	}
	r := buscarReserva(reservas, id)
	if r == nil {
		return apierr.ErrNotFound("Reserva não encontrada")
	}
	if r.Status == registros.ReservaAtiva {
		return apierr.ErrEligibility("Não é possível excluir uma reserva ativa")
	}
	retrato := *r
	r.Exclusao = &registros.Exclusao{Em: s.relogio.Agora(), Por: usuario}
	if err := s.reg.Reservas.Salvar(ctx, reservas); err != nil {
		return err
	}
	if err := s.hist.RegistrarExclusao(ctx, "Reserva", r.ID, usuario, retrato); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de exclusão: %v", err)
	}
	return nil
}

func (s *Service) BuscarReserva(ctx context.Context, id string) (*registros.Reserva, error) {
	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return nil, err
	}
	r := buscarReserva(reservas, id)
	if r == nil {
		return nil, apierr.ErrNotFound("Reserva não encontrada")
	}
	return r, nil
}

func (s *Service) ListarReservas(ctx context.Context, f FiltroReserva) ([]registros.Reserva, error) {
	reservas, err := s.CarregarReservas(ctx)
	if err != nil {
		return nil, err
	}
	var saida []registros.Reserva
	for _, r := range reservas {
		if !r.Ativo() {
			continue
		}
		if f.AlunoID != "" && r.AlunoID != f.AlunoID {
			continue
		}
		if f.LivroID != "" && r.LivroID != f.LivroID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		saida = append(saida, r)
	}
	return saida, nil
}

// ===== helpers =====

func (s *Service) auditar(ctx context.Context, entidade, id, usuario string, alteracoes map[string]registros.Alteracao) {
	if err := s.hist.RegistrarEdicao(ctx, entidade, id, usuario, alteracoes); err != nil {
		log.Printf("[WARN] falha ao registrar histórico de %s: %v", entidade, err)
	}
}

func validarData(valor, campo string) error {
	if _, err := time.Parse(registros.FormatoData, valor); err != nil {
		return apierr.ErrInvalid(campo + " inválida. Use o formato AAAA-MM-DD")
	}
	return nil
}

func statusEmprestimoValido(s string) bool {
	switch s {
	case registros.EmprestimoAtivo, registros.EmprestimoAtrasado,
		registros.EmprestimoDevolvido, registros.EmprestimoPerdido:
		return true
	}
	return false
}

func statusReservaValido(s string) bool {
	switch s {
	case registros.ReservaAtiva, registros.ReservaCancelada,
		registros.ReservaExpirada, registros.ReservaConcluida:
		return true
	}
	return false
}

// conferirStatusEmprestimo barra combinações sem sentido de status e data:
// Atrasado exige prevista no passado e qualquer outro status exige prevista
// de hoje em diante.
func conferirStatusEmprestimo(status, prevista, hoje string) error {
	if status == registros.EmprestimoAtrasado && prevista >= hoje {
		return apierr.ErrInvalid("Status Atrasado exige data de devolução prevista anterior a hoje")
	}
	if status != registros.EmprestimoAtrasado && prevista < hoje {
		return apierr.ErrInvalid("Data de devolução prevista no passado exige status Atrasado")
	}
	return nil
}

func conferirStatusReserva(status, expiracao, hoje string) error {
	if status == registros.ReservaExpirada && expiracao >= hoje {
		return apierr.ErrInvalid("Status Expirada exige data de expiração anterior a hoje")
	}
	if status != registros.ReservaExpirada && expiracao < hoje {
		return apierr.ErrInvalid("Data de expiração no passado exige status Expirada")
	}
	return nil
}

func buscarAluno(alunos []registros.Aluno, id string) *registros.Aluno {
	for i := range alunos {
		if alunos[i].ID == id && alunos[i].Ativo() {
			return &alunos[i]
		}
	}
	return nil
}

func buscarLivro(livros []registros.Livro, id string) *registros.Livro {
	for i := range livros {
		if livros[i].ID == id && livros[i].Ativo() {
			return &livros[i]
		}
	}
	return nil
}

func buscarEmprestimo(emprestimos []registros.Emprestimo, id string) *registros.Emprestimo {
	for i := range emprestimos {
		if emprestimos[i].ID == id && emprestimos[i].Ativo() {
			return &emprestimos[i]
		}
	}
	return nil
}

func buscarReserva(reservas []registros.Reserva, id string) *registros.Reserva {
	for i := range reservas {
		if reservas[i].ID == id && reservas[i].Ativo() {
			return &reservas[i]
		}
	}
	return nil
}
