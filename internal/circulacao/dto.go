package circulacao

// Requisição de criação de empréstimo. Data de devolução prevista e status
// são opcionais; os padrões são hoje + prazo configurado e Ativo.
type CriarEmprestimoRequest struct {
	AlunoID               string `json:"alunoId" binding:"required"`
	LivroID               string `json:"livroId" binding:"required"`
	DataDevolucaoPrevista string `json:"dataDevolucaoPrevista,omitempty"`
	Status                string `json:"status,omitempty"`
}

type EditarEmprestimoRequest struct {
	DataDevolucaoPrevista string `json:"dataDevolucaoPrevista" binding:"required"`
	Status                string `json:"status" binding:"required"`
}

type FiltroEmprestimo struct {
	AlunoID string
	LivroID string
	Status  string
}

type CriarReservaRequest struct {
	AlunoID       string `json:"alunoId" binding:"required"`
	LivroID       string `json:"livroId" binding:"required"`
	DataExpiracao string `json:"dataExpiracao,omitempty"`
	Status        string `json:"status,omitempty"`
}

type EditarReservaRequest struct {
	DataExpiracao string `json:"dataExpiracao" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

type FiltroReserva struct {
	AlunoID string
	LivroID string
	Status  string
}
