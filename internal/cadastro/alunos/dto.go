package alunos

type CriarAlunoRequest struct {
	Nome               string `json:"nome" binding:"required,max=150"`
	NumeroMatricula    string `json:"numeroMatricula" binding:"required,matricula"`
	EmailInstitucional string `json:"emailInstitucional" binding:"required,email"`
	DataNascimento     string `json:"dataNascimento,omitempty"`
	Telefone           string `json:"telefone,omitempty" binding:"omitempty,telefone_br"`
	Status             string `json:"status,omitempty"`
}

// Matrícula e e-mail são fixados na criação; a edição altera os demais
// campos.
type EditarAlunoRequest struct {
	Nome           string `json:"nome" binding:"required,max=150"`
	DataNascimento string `json:"dataNascimento,omitempty"`
	Telefone       string `json:"telefone,omitempty" binding:"omitempty,telefone_br"`
	Status         string `json:"status" binding:"required"`
}

type FiltroAluno struct {
	Nome            string
	NumeroMatricula string
	Status          string
	// Pendencias filtra por obrigação de empréstimo não resolvida:
	// "Sim", "Não" ou "Todos".
	Pendencias string
}
