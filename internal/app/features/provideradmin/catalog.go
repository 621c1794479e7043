// internal/app/features/provideradmin/catalog.go
package provideradmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/store/audit"
	"github.com/salespulse/salespulse/internal/app/system/htmlsanitize"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
)

func (h *Handler) listCatalogItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "catalog list")
	defer cancel()

	items, err := h.Provider.ListCatalogItems(ctx, h.token(r))
	if err != nil {
		h.providerError(w, "list catalog items", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) createCatalogItem(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := httpjson.Decode(r, &item); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	item.Name = htmlsanitize.PlainText(item.Name)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "catalog create")
	defer cancel()

	created, err := h.Provider.CreateCatalogItem(ctx, h.token(r), item)
	if err != nil {
		h.providerError(w, "create catalog item", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventCatalogItemCreated, actorID(r), created.ID)
	httpjson.Write(w, http.StatusCreated, created)
}

func (h *Handler) updateCatalogItem(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := httpjson.Decode(r, &item); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	item.ID = chi.URLParam(r, "itemID")
	item.Name = htmlsanitize.PlainText(item.Name)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "catalog update")
	defer cancel()

	updated, err := h.Provider.UpdateCatalogItem(ctx, h.token(r), item)
	if err != nil {
		h.providerError(w, "update catalog item", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventCatalogItemUpdated, actorID(r), updated.ID)
	httpjson.Write(w, http.StatusOK, updated)
}

func (h *Handler) deleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "catalog delete")
	defer cancel()

	if err := h.Provider.DeleteCatalogItem(ctx, h.token(r), itemID); err != nil {
		h.providerError(w, "delete catalog item", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventCatalogItemDeleted, actorID(r), itemID)
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
