package autores

type CriarAutorRequest struct {
	Nome           string `json:"nome" binding:"required,max=150"`
	Nacionalidade  string `json:"nacionalidade" binding:"omitempty,max=100"`
	DataNascimento string `json:"dataNascimento" binding:"omitempty,datetime=2006-01-02"`
	Biografia      string `json:"biografia" binding:"omitempty,max=1000"`
}

type EditarAutorRequest struct {
	Nome           string `json:"nome" binding:"required,max=150"`
	Nacionalidade  string `json:"nacionalidade" binding:"omitempty,max=100"`
	DataNascimento string `json:"dataNascimento" binding:"omitempty,datetime=2006-01-02"`
	Biografia      string `json:"biografia" binding:"omitempty,max=1000"`
}

type FiltroAutor struct {
	Nome          string
	Nacionalidade string
}
