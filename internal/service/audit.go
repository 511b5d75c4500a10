package service

import (
	"context"
	"encoding/json"
	"fmt"

	models "github.com/tbakken/delelager/internal/models"
)

// AuditLogEntry is one audit record augmented with fields derived from the
// stored snapshots: the affected item's name and part number, and a content
// view whose shape depends on the action (old snapshot for DELETE, new for
// CREATE, {"old":…,"new":…} for UPDATE).
type AuditLogEntry struct {
	models.AuditEntry
	ItemName       *string         `json:"item_name"`
	ItemPartNumber *string         `json:"item_part_number"`
	ValueContent   json.RawMessage `json:"value_content"`
}

// AuditLogResult is one page of the audit log, newest first.
type AuditLogResult struct {
	Logs         []AuditLogEntry
	Page         int
	ItemsPerPage int
	TotalItems   int
}

// AuditLog reads a page of audit entries and derives the per-entry item view.
func (s *InventoryService) AuditLog(ctx context.Context, page, itemsPerPage int) (AuditLogResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if itemsPerPage < 1 {
		itemsPerPage = defaultItemsPerPage
	}

	entries, total, err := s.audit.List(ctx, page, itemsPerPage)
	if err != nil {
		return AuditLogResult{}, fmt.Errorf("list audit log: %w", err)
	}

	logs := make([]AuditLogEntry, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, deriveAuditView(e))
	}
	return AuditLogResult{Logs: logs, Page: page, ItemsPerPage: itemsPerPage, TotalItems: total}, nil
}

func deriveAuditView(e models.AuditEntry) AuditLogEntry {
	view := AuditLogEntry{AuditEntry: e}

	// DELETE keeps the old snapshot as authoritative, everything else the new.
	source := e.NewValue
	if e.Action == models.ActionDelete {
		source = e.OldValue
	}
	if source != nil {
		var snapshot struct {
			Name       *string `json:"name"`
			PartNumber *string `json:"part_number"`
		}
		if err := json.Unmarshal([]byte(*source), &snapshot); err == nil {
			view.ItemName = snapshot.Name
			view.ItemPartNumber = snapshot.PartNumber
		}
	}

	switch e.Action {
	case models.ActionUpdate:
		view.ValueContent = combineSnapshots(e.OldValue, e.NewValue)
	default:
		if source != nil {
			view.ValueContent = json.RawMessage(*source)
		}
	}
	return view
}

func combineSnapshots(oldValue, newValue *string) json.RawMessage {
	combined := map[string]json.RawMessage{"old": nullOr(oldValue), "new": nullOr(newValue)}
	raw, err := json.Marshal(combined)
	if err != nil {
		return nil
	}
	return raw
}

func nullOr(s *string) json.RawMessage {
	if s == nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(*s)
}
