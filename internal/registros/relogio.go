package registros

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Relogio interface {
	Agora() time.Time
}

type RelogioReal struct{}

func (RelogioReal) Agora() time.Time { return time.Now() }

// Hoje devolve a data local sem componente de hora, no FormatoData.
// Todas as comparações temporais do núcleo são feitas nessa granularidade.
func Hoje(r Relogio) string { return r.Agora().Format(FormatoData) }

type GeradorID interface {
	Novo() string
}

type GeradorULID struct{}

func (GeradorULID) Novo() string { return ulid.Make().String() }
