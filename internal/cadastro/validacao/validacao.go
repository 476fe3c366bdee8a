// Package validacao concentra as regras de formato dos cadastros e as
// registra como tags de validação do binding.
package validacao

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DominioEmail é o domínio institucional fixo exigido no e-mail do aluno.
const DominioEmail = "@atlas.com.br"

var (
	reMatricula = regexp.MustCompile(`^\d{4}$`)
	reTelefone  = regexp.MustCompile(`^\d{11}$`)
	// ISBN no formato fixo do acervo, sem dígito verificador.
	reISBN = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}-\d{3}-\d$`)
	reAno  = regexp.MustCompile(`^\d{4}$`)
)

func Matricula(s string) bool { return reMatricula.MatchString(s) }
func Telefone(s string) bool  { return reTelefone.MatchString(s) }
func ISBN(s string) bool      { return reISBN.MatchString(s) }
func Ano(s string) bool       { return reAno.MatchString(s) }

func EmailInstitucional(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), DominioEmail)
}

// Registrar instala as tags customizadas no validador do binding.
func Registrar(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"matricula":   Matricula,
		"telefone_br": Telefone,
		"isbn_sep":    ISBN,
	}
	for tag, fn := range tags {
		fn := fn
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			return err
		}
	}
	return nil
}
