package handlers

import (
	models "github.com/tbakken/delelager/internal/models"
	service "github.com/tbakken/delelager/internal/service"
)

type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
}

func newPagination(page, itemsPerPage, totalItems int) Pagination {
	return Pagination{
		CurrentPage:  page,
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   (totalItems + itemsPerPage - 1) / itemsPerPage,
	}
}

type InventoryPage struct {
	Items      []models.Item `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type AuditLogPage struct {
	Logs       []service.AuditLogEntry `json:"logs"`
	Pagination Pagination              `json:"pagination"`
}

type IDResponse struct {
	ID int `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ValidationErrors struct {
	Errors []string `json:"errors"`
}
