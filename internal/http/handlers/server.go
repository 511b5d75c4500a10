package handlers

import (
	"github.com/rs/zerolog"

	service "github.com/tbakken/delelager/internal/service"
	sse "github.com/tbakken/delelager/internal/sse"
)

var (
	inventorySvc *service.InventoryService
	hub          *sse.Hub
	logger       = zerolog.Nop()
)

func SetInventoryService(s *service.InventoryService) {
	inventorySvc = s
}

func SetHub(h *sse.Hub) {
	hub = h
}

func SetLogger(l zerolog.Logger) {
	logger = l
}
