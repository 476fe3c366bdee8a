package editoras

type CriarEditoraRequest struct {
	Nome     string `json:"nome" binding:"required,max=150"`
	Endereco string `json:"endereco" binding:"omitempty,max=300"`
	Status   string `json:"status" binding:"omitempty,oneof=Ativa Inativa"`
}

type EditarEditoraRequest struct {
	Nome     string `json:"nome" binding:"required,max=150"`
	Endereco string `json:"endereco" binding:"omitempty,max=300"`
	Status   string `json:"status" binding:"required,oneof=Ativa Inativa"`
}

type FiltroEditora struct {
	Nome   string
	Status string
}
