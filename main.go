package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"biblioteca-backend/internal/cadastro/alunos"
	"biblioteca-backend/internal/cadastro/autores"
	"biblioteca-backend/internal/cadastro/editoras"
	"biblioteca-backend/internal/cadastro/livros"
	"biblioteca-backend/internal/cadastro/validacao"
	"biblioteca-backend/internal/circulacao"
	"biblioteca-backend/internal/historico"
	"biblioteca-backend/internal/platform/db"
	"biblioteca-backend/internal/platform/storage"
	"biblioteca-backend/internal/registros"
	"biblioteca-backend/internal/relatorios"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfgPath := os.Getenv("BIBLIOTECA_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := db.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if mode != "dev" && mode != "release" {
		log.Fatal("config: mode deve ser dev ou release")
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	col := storage.NewMySQL(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := col.Migrar(ctx); err != nil {
		cancel()
		log.Fatalf("migração falhou: %v", err)
	}
	cancel()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validacao.Registrar(v); err != nil {
			log.Fatalf("registro de validações falhou: %v", err)
		}
	}

	reg := registros.Abrir(col)
	hist := historico.NewService(reg)
	circ := circulacao.NewService(reg, hist, circulacao.Config{
		MaxEmprestimosAtivos: cfg.Circulacao.MaxEmprestimosAtivos,
		MaxReservasAtivas:    cfg.Circulacao.MaxReservasAtivas,
		PrazoEmprestimoDias:  cfg.Circulacao.PrazoEmprestimoDias,
		PrazoReservaDias:     cfg.Circulacao.PrazoReservaDias,
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS só faz sentido no desenvolvimento local.
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Usuario"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api/v1")
	alunos.RegisterRoutes(api, alunos.NewService(reg, circ, hist, cfg.Circulacao.AnoCorte))
	autores.RegisterRoutes(api, autores.NewService(reg, circ, hist, cfg.Circulacao.AnoCorte))
	editoras.RegisterRoutes(api, editoras.NewService(reg, circ, hist))
	livros.RegisterRoutes(api, livros.NewService(reg, circ, hist, cfg.Circulacao.AnoCorte))
	circulacao.RegisterRoutes(api, circ)
	historico.RegisterRoutes(api, hist)
	relatorios.RegisterRoutes(api, relatorios.NewService(reg, circ))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Fatal(err)
	}
}
