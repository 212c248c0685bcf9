package main

import (
	"net/http"
	"os"
	"time"
)

// Probes the public room listing so container orchestrators can tell a
// live server from a wedged one.
func main() {
	addr := os.Getenv("GAMESERVER_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/api/match-rooms")
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
