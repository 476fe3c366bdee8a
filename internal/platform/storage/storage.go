// Package storage implementa o armazenamento por coleção: cada tipo de
// registro é lido e gravado inteiro, como um documento JSON indexado pela
// chave da entidade. É a disciplina de escritor único do sistema: carregar
// a coleção, alterar em memória, gravar a coleção.
package storage

import (
	"context"
	"database/sql"
	"sync"
)

// Chaves das coleções persistidas.
const (
	ChaveAlunos      = "alunos"
	ChaveAutores     = "autores"
	ChaveEditoras    = "editoras"
	ChaveLivros      = "livros"
	ChaveEmprestimos = "emprestimos"
	ChaveReservas    = "reservas"
	ChaveHistorico   = "historico_alteracoes"
)

// Collections lê e grava coleções inteiras. Load devolve payload nil quando
// a chave nunca foi gravada; o chamador trata nil como coleção vazia.
type Collections interface {
	Load(ctx context.Context, chave string) ([]byte, error)
	Save(ctx context.Context, chave string, payload []byte) error
}

// MySQL guarda cada coleção como uma linha da tabela colecoes.
type MySQL struct {
	db *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL { return &MySQL{db: db} }

// Migrar garante a tabela de coleções.
func (s *MySQL) Migrar(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS colecoes (
		chave      VARCHAR(64) NOT NULL PRIMARY KEY,
		payload    LONGBLOB    NOT NULL,
		updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *MySQL) Load(ctx context.Context, chave string) ([]byte, error) {
	const q = `SELECT payload FROM colecoes WHERE chave = ?`
	var payload []byte
	if err := s.db.QueryRowContext(ctx, q, chave).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

func (s *MySQL) Save(ctx context.Context, chave string, payload []byte) error {
	const q = `
	INSERT INTO colecoes (chave, payload) VALUES (?, ?)
	ON DUPLICATE KEY UPDATE payload = VALUES(payload)`
	_, err := s.db.ExecContext(ctx, q, chave, payload)
	return err
}

// Memoria é a implementação em memória usada pelos testes.
type Memoria struct {
	mu    sync.RWMutex
	dados map[string][]byte
}

func NewMemoria() *Memoria { return &Memoria{dados: map[string][]byte{}} }

func (m *Memoria) Load(_ context.Context, chave string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dados[chave], nil
}

func (m *Memoria) Save(_ context.Context, chave string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.dados[chave] = cp
	return nil
}
