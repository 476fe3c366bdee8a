package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

const driverName = "mysql"

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// CirculacaoConfig expõe as constantes de circulação como configuração.
type CirculacaoConfig struct {
	MaxEmprestimosAtivos int `yaml:"max_emprestimos_ativos"`
	MaxReservasAtivas    int `yaml:"max_reservas_ativas"`
	PrazoEmprestimoDias  int `yaml:"prazo_emprestimo_dias"`
	PrazoReservaDias     int `yaml:"prazo_reserva_dias"`
	AnoCorte             int `yaml:"ano_corte"`
}

type Config struct {
	Version    string           `yaml:"version"`
	Mode       string           `yaml:"mode"`
	Addr       string           `yaml:"addr"`
	DB         DatabaseConfig   `yaml:"database"`
	Circulacao CirculacaoConfig `yaml:"circulacao"`
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler o arquivo de configuração: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("falha ao interpretar o arquivo de configuração: %w", err)
	}
	cfg.aplicarPadroes()
	return &cfg, nil
}

func (c *Config) aplicarPadroes() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Circulacao.MaxEmprestimosAtivos == 0 {
		c.Circulacao.MaxEmprestimosAtivos = 3
	}
	if c.Circulacao.MaxReservasAtivas == 0 {
		c.Circulacao.MaxReservasAtivas = 3
	}
	if c.Circulacao.PrazoEmprestimoDias == 0 {
		c.Circulacao.PrazoEmprestimoDias = 7
	}
	if c.Circulacao.PrazoReservaDias == 0 {
		c.Circulacao.PrazoReservaDias = 5
	}
	if c.Circulacao.AnoCorte == 0 {
		c.Circulacao.AnoCorte = 2025
	}
}

func Connect(c DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=false&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC",
		c.Username, c.Password, c.Host, c.Port, c.DBName)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("falha ao preparar a conexão: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao conectar ao banco: %w", err)
	}

	// Um único operador por instância; o pool fica pequeno de propósito.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
