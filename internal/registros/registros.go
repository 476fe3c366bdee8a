// Package registros define os registros persistidos e o acesso às coleções.
package registros

import "time"

// Status de aluno.
const (
	AlunoAtivo    = "Ativo"
	AlunoInativo  = "Inativo"
	AlunoSuspenso = "Suspenso"
)

// Status de editora.
const (
	EditoraAtiva   = "Ativa"
	EditoraInativa = "Inativa"
)

// Status de empréstimo. Ativo e Atrasado alternam por reconciliação
// automática; Devolvido e Perdido são terminais.
const (
	EmprestimoAtivo     = "Ativo"
	EmprestimoAtrasado  = "Atrasado"
	EmprestimoDevolvido = "Devolvido"
	EmprestimoPerdido   = "Perdido"
)

// Status de reserva. Ativa e Expirada alternam por reconciliação
// automática; Cancelada e Concluída são terminais.
const (
	ReservaAtiva     = "Ativa"
	ReservaCancelada = "Cancelada"
	ReservaExpirada  = "Expirada"
	ReservaConcluida = "Concluída"
)

// FormatoData é o formato das datas sem hora (devolução prevista,
// expiração, nascimento). Strings nesse formato comparam corretamente
// por ordem lexicográfica, e é assim que o núcleo compara dia a dia.
const FormatoData = "2006-01-02"

// Exclusao marca a exclusão lógica de um registro: quem excluiu e quando.
// O ponteiro nulo no registro significa registro vivo; nenhum registro é
// removido fisicamente das coleções.
type Exclusao struct {
	Em  time.Time `json:"em"`
	Por string    `json:"por"`
}

type Aluno struct {
	ID                 string    `json:"id"`
	Nome               string    `json:"nome"`
	NumeroMatricula    string    `json:"numeroMatricula"`
	EmailInstitucional string    `json:"emailInstitucional"`
	DataNascimento     string    `json:"dataNascimento,omitempty"`
	Telefone           string    `json:"telefone,omitempty"`
	Status             string    `json:"status"`
	DataCadastro       time.Time `json:"dataCadastro"`
	Exclusao           *Exclusao `json:"exclusao,omitempty"`
}

func (a Aluno) Ativo() bool { return a.Exclusao == nil }

type Autor struct {
	ID             string    `json:"id"`
	Nome           string    `json:"nome"`
	Nacionalidade  string    `json:"nacionalidade,omitempty"`
	DataNascimento string    `json:"dataNascimento,omitempty"`
	Biografia      string    `json:"biografia,omitempty"`
	Exclusao       *Exclusao `json:"exclusao,omitempty"`
}

func (a Autor) Ativo() bool { return a.Exclusao == nil }

type Editora struct {
	ID       string    `json:"id"`
	Nome     string    `json:"nome"`
	Endereco string    `json:"endereco,omitempty"`
	Status   string    `json:"status"`
	Exclusao *Exclusao `json:"exclusao,omitempty"`
}

func (e Editora) Ativo() bool { return e.Exclusao == nil }

type Livro struct {
	ID                string    `json:"id"`
	Titulo            string    `json:"titulo"`
	Autores           []string  `json:"autores"`
	ISBN              string    `json:"isbn"`
	Generos           []string  `json:"generos,omitempty"`
	Exemplares        int       `json:"exemplares"`
	Editoras          []string  `json:"editoras,omitempty"`
	AnoPublicacao     string    `json:"anoPublicacao,omitempty"`
	LocalizacaoFisica string    `json:"localizacaoFisica,omitempty"`
	Exclusao          *Exclusao `json:"exclusao,omitempty"`
}

func (l Livro) Ativo() bool { return l.Exclusao == nil }

type Emprestimo struct {
	ID      string `json:"id"`
	AlunoID string `json:"alunoId"`
	LivroID string `json:"livroId"`
	Status  string `json:"status"`
	// DataEmprestimo registra data e hora da retirada; a devolução
	// prevista é só data.
	DataEmprestimo        time.Time  `json:"dataEmprestimo"`
	DataDevolucaoPrevista string     `json:"dataDevolucaoPrevista"`
	DataDevolucaoReal     *time.Time `json:"dataDevolucaoReal,omitempty"`
	DataCriacao           time.Time  `json:"dataCriacao"`
	Exclusao              *Exclusao  `json:"exclusao,omitempty"`
}

func (e Emprestimo) Ativo() bool { return e.Exclusao == nil }

func (e Emprestimo) StatusTerminal() bool {
	return e.Status == EmprestimoDevolvido || e.Status == EmprestimoPerdido
}

// Pendente indica um empréstimo que ainda bloqueia aluno e livro.
func (e Emprestimo) Pendente() bool {
	return e.Ativo() &&
		(e.Status == EmprestimoAtivo || e.Status == EmprestimoAtrasado || e.Status == EmprestimoPerdido)
}

type Reserva struct {
	ID            string     `json:"id"`
	AlunoID       string     `json:"alunoId"`
	LivroID       string     `json:"livroId"`
	Status        string     `json:"status"`
	DataReserva   time.Time  `json:"dataReserva"`
	DataExpiracao string     `json:"dataExpiracao"`
	DataCriacao   time.Time  `json:"dataCriacao"`
	DataConclusao *time.Time `json:"dataConclusao,omitempty"`
	Exclusao      *Exclusao  `json:"exclusao,omitempty"`
}

func (r Reserva) Ativo() bool { return r.Exclusao == nil }

func (r Reserva) StatusTerminal() bool {
	return r.Status == ReservaCancelada || r.Status == ReservaConcluida
}

// Alteracao guarda o antes e o depois de um campo editado.
type Alteracao struct {
	Anterior any `json:"anterior"`
	Novo     any `json:"novo"`
}

type HistoricoAlteracao struct {
	ID         string               `json:"id"`
	Entidade   string               `json:"entidade"`
	EntidadeID string               `json:"entidadeId"`
	Data       string               `json:"data"`
	Hora       string               `json:"hora"`
	Usuario    string               `json:"usuario"`
	Alteracoes map[string]Alteracao `json:"alteracoes"`
}
