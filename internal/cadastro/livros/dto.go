package livros

type CriarLivroRequest struct {
	Titulo            string   `json:"titulo" binding:"required,max=200"`
	Autores           []string `json:"autores" binding:"required,min=1"`
	ISBN              string   `json:"isbn" binding:"required,isbn_sep"`
	Generos           []string `json:"generos,omitempty"`
	Exemplares        int      `json:"exemplares" binding:"required,gte=1"`
	Editoras          []string `json:"editoras,omitempty"`
	AnoPublicacao     string   `json:"anoPublicacao,omitempty"`
	LocalizacaoFisica string   `json:"localizacaoFisica,omitempty" binding:"omitempty,max=100"`
}

type EditarLivroRequest struct {
	Titulo            string   `json:"titulo" binding:"required,max=200"`
	Autores           []string `json:"autores" binding:"required,min=1"`
	ISBN              string   `json:"isbn" binding:"required,isbn_sep"`
	Generos           []string `json:"generos,omitempty"`
	Exemplares        int      `json:"exemplares" binding:"required,gte=1"`
	Editoras          []string `json:"editoras,omitempty"`
	AnoPublicacao     string   `json:"anoPublicacao,omitempty"`
	LocalizacaoFisica string   `json:"localizacaoFisica,omitempty" binding:"omitempty,max=100"`
}

type FiltroLivro struct {
	Titulo  string
	AutorID string
	ISBN    string
	Genero  string
}
