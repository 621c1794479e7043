// internal/app/features/goalconfig/handler.go
package goalconfig

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/engine"
	goalconfigstore "github.com/salespulse/salespulse/internal/app/store/goalconfig"
	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/normalize"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
)

// Handler lets admins inspect and edit per-team goal configuration. The team
// registry itself is fixed; only the configuration of known teams changes.
type Handler struct {
	Log      *zap.Logger
	Store    *goalconfigstore.Store
	AuditLog *auditlog.Logger
}

// NewHandler constructs a goal config Handler.
func NewHandler(store *goalconfigstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Store: store, AuditLog: audit}
}

// ServeList handles GET /admin/goal-configs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "goal config list")
	defer cancel()

	configs, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("goal config list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load goal configurations")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"configs": configs})
}

// ServeGet handles GET /admin/goal-configs/{teamType}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	teamType, ok := h.teamFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "goal config get")
	defer cancel()

	cfg, err := h.Store.Get(ctx, teamType)
	if errors.Is(err, goalconfigstore.ErrNotFound) {
		// Known team with no stored row yet: show the built-in default.
		cfg, _ = engine.DefaultConfig(teamType)
	} else if err != nil {
		h.Log.Error("goal config get failed", zap.String("team_type", teamType), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load goal configuration")
		return
	}
	httpjson.Write(w, http.StatusOK, cfg)
}

// ServeUpdate handles PUT /admin/goal-configs/{teamType}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}
	teamType, ok := h.teamFromPath(w, r)
	if !ok {
		return
	}

	var incoming models.TeamGoalConfig
	if err := httpjson.Decode(r, &incoming); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	if incoming.TeamType != "" && normalize.TeamType(incoming.TeamType) != teamType {
		httpjson.Error(w, http.StatusUnprocessableEntity, "team_type_mismatch",
			"team_type in the body must match the URL")
		return
	}
	incoming.TeamType = teamType
	if msg := validateConfig(incoming); msg != "" {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_config", msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "goal config update")
	defer cancel()

	previous, err := h.Store.Get(ctx, teamType)
	if errors.Is(err, goalconfigstore.ErrNotFound) {
		previous, _ = engine.DefaultConfig(teamType)
	} else if err != nil {
		h.Log.Error("goal config load failed", zap.String("team_type", teamType), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load goal configuration")
		return
	}

	incoming.UpdatedBy = user.PlayerID
	if err := h.Store.Save(ctx, incoming); err != nil {
		h.Log.Error("goal config save failed", zap.String("team_type", teamType), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not save goal configuration")
		return
	}

	h.AuditLog.GoalConfigUpdated(ctx, r, user.PlayerID, teamType,
		strings.Join(changedFields(previous, incoming), ","))

	saved, err := h.Store.Get(ctx, teamType)
	if err != nil {
		saved = incoming
	}
	httpjson.Write(w, http.StatusOK, saved)
}

func (h *Handler) teamFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	teamType := normalize.TeamType(chi.URLParam(r, "teamType"))
	if !engine.IsKnownTeam(teamType) {
		httpjson.Error(w, http.StatusNotFound, "unknown_team_type", "no such team")
		return "", false
	}
	return teamType, true
}

// validateConfig enforces the cross-field rules the struct tags cannot: metric
// names must exist and the unlock rule needs its kind-specific reference.
func validateConfig(cfg models.TeamGoalConfig) string {
	metrics := models.MetricFields()
	for _, slot := range cfg.Slots() {
		if !slices.Contains(metrics, slot.MetricField) {
			return "unknown metric field " + slot.MetricField
		}
	}
	switch cfg.Unlock.Kind {
	case models.UnlockThreshold:
		if !slices.Contains(metrics, cfg.Unlock.Metric) {
			return "threshold unlock needs a valid metric"
		}
	case models.UnlockItem:
		if cfg.Unlock.CatalogItemID == "" {
			return "item unlock needs a catalog_item_id"
		}
	}
	return ""
}

func changedFields(old, updated models.TeamGoalConfig) []string {
	var changed []string
	if old.Primary != updated.Primary {
		changed = append(changed, "primary")
	}
	if old.Secondary1 != updated.Secondary1 {
		changed = append(changed, "secondary1")
	}
	if old.Secondary2 != updated.Secondary2 {
		changed = append(changed, "secondary2")
	}
	if old.Unlock != updated.Unlock {
		changed = append(changed, "unlock")
	}
	if old.BoostItem1ID != updated.BoostItem1ID {
		changed = append(changed, "boost_item1_id")
	}
	if old.BoostItem2ID != updated.BoostItem2ID {
		changed = append(changed, "boost_item2_id")
	}
	return changed
}
