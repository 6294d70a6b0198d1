package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonsuite/salon-scheduler/internal/cache"
	"github.com/salonsuite/salon-scheduler/internal/config"
	dbpkg "github.com/salonsuite/salon-scheduler/internal/db"
	"github.com/salonsuite/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	store := cache.New(cfg.RedisAddr)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, store)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
