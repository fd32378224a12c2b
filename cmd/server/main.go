package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/profile"

	"gridquest/server/config"
	"gridquest/server/handlers"
	"gridquest/server/persistence"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development.
		// In production, restrict this to your client's domain.
		return true
	},
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	profileCPU := flag.Bool("profile", false, "Write a CPU profile on exit")
	flag.Parse()

	if *profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store persistence.Storage
	if cfg.Storage.Driver == "postgres" {
		dsn := cfg.Storage.DSN
		if dsn == "" {
			dsn = "host=localhost user=gridquest password=gridquest dbname=gridquest sslmode=disable"
		}
		store, err = persistence.NewPostgresStore(dsn)
		log.Println("Using PostgreSQL persistence")
	} else {
		store, err = persistence.NewJSONStore(cfg.Storage.File)
		log.Println("Using JSON persistence")
	}
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer store.Close()

	clientManager := handlers.NewClientManager()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		handlers.HandleClientConnection(conn, cfg.Game, store, clientManager)
	})

	log.Printf("Server starting on port %s (board %dx%d, %d enemies, %d collectables)",
		cfg.Server.Port, cfg.Game.Width, cfg.Game.Height, cfg.Game.Enemies, cfg.Game.Collectables)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, nil))
}
