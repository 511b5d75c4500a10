package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	models "github.com/tbakken/delelager/internal/models"
	repo "github.com/tbakken/delelager/internal/repo"
	service "github.com/tbakken/delelager/internal/service"
)

const usernameHeader = "x-username"

// ListInventoryHandler serves the paginated, searchable, sorted inventory
// listing.
func ListInventoryHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"), 1)
	itemsPerPage := parsePositiveInt(q.Get("itemsPerPage"), 25)

	result, err := inventorySvc.List(r.Context(), page, itemsPerPage,
		q.Get("searchQuery"), q.Get("sortBy"), q.Get("sortOrder"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSortColumn) {
			errorJSON(w, http.StatusBadRequest, "Invalid sort column")
			return
		}
		internalError(w, r, err, "listing inventory failed")
		return
	}

	if result.Items == nil {
		result.Items = []models.Item{}
	}
	_ = writeJSON(w, http.StatusOK, InventoryPage{
		Items:      result.Items,
		Pagination: newPagination(result.Page, result.ItemsPerPage, result.TotalItems),
	})
}

// CreateItemHandler inserts a new inventory item on behalf of the identity in
// the x-username header.
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		errorJSON(w, http.StatusBadRequest, "Username is required")
		return
	}

	var body map[string]any
	if err := readJSON(w, r, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, _, validationErrors := buildItem(body)
	if len(validationErrors) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, ValidationErrors{Errors: validationErrors})
		return
	}

	created, err := inventorySvc.CreateItem(r.Context(), username, item)
	if err != nil {
		internalError(w, r, err, "creating inventory item failed")
		return
	}
	_ = writeJSON(w, http.StatusOK, IDResponse{ID: created.ID})
}

// UpdateItemHandler rewrites an existing item. The stored stock count date is
// preserved unless the body carries last_stock_count "now".
func UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		errorJSON(w, http.StatusBadRequest, "Username is required")
		return
	}

	id, ok := validateID(chi.URLParam(r, "id"))
	if !ok {
		errorJSON(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	var body map[string]any
	if err := readJSON(w, r, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, confirmStockCount, validationErrors := buildItem(body)
	if len(validationErrors) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, ValidationErrors{Errors: validationErrors})
		return
	}
	item.ID = id

	if _, err := inventorySvc.UpdateItem(r.Context(), username, item, confirmStockCount); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			errorJSON(w, http.StatusNotFound, "Item not found")
			return
		}
		internalError(w, r, err, "updating inventory item failed")
		return
	}
	_ = writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DeleteItemHandler removes an item, auditing its last snapshot.
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		errorJSON(w, http.StatusBadRequest, "Username is required")
		return
	}

	id, ok := validateID(chi.URLParam(r, "id"))
	if !ok {
		errorJSON(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := inventorySvc.DeleteItem(r.Context(), username, id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			errorJSON(w, http.StatusNotFound, "Item not found")
			return
		}
		internalError(w, r, err, "deleting inventory item failed")
		return
	}
	_ = writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
