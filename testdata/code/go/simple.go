package server

import (
	"fmt"
	"net/http"
)

const DefaultPort = 8080

type Config struct {
	Port    int
	Timeout int
}

type Handler struct {
	config *Config
}

func NewHandler(config *Config) *Handler {
	return &Handler{config: config}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		fmt.Fprintf(w, "Hello, World!")
		return
	}
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func portFor(cfg *Config) int {
	if cfg == nil {
		return DefaultPort
	}
	return cfg.Port
}
