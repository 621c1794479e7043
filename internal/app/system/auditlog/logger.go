// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/store/audit"
	"github.com/salespulse/salespulse/internal/app/system/ratelimit"
)

// Config controls where each event category goes.
// Values: "all" (Mongo + zap), "db" (Mongo only), "log" (zap only), "off".
type Config struct {
	Auth  string
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and to the
// structured log. A nil *Logger is a no-op so tests can skip auditing.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates an audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// Log routes one event per the category's config setting.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := "all"
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "off" {
		return
	}
	if setting == "" {
		setting = "all"
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.SubjectID != "" {
		fields = append(fields, zap.String("subject_id", event.SubjectID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// --- Authentication events ---

// LoginSuccess records a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, playerID, loginID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		ActorID:   playerID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"login_id": loginID},
	})
}

// LoginFailed records a rejected sign-in attempt. The attempted login id is
// recorded; nothing about whether the account exists is.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedLoginID string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "invalid credentials",
		Details:       map[string]string{"attempted_login_id": attemptedLoginID},
	})
}

// LoginRateLimited records a sign-in attempt blocked by the rate limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attemptedLoginID string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "rate limited",
		Details:       map[string]string{"attempted_login_id": attemptedLoginID},
	})
}

// Logout records a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, playerID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		ActorID:   playerID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
	})
}

// --- Admin events ---

// GoalConfigUpdated records an admin saving a team's goal configuration.
func (l *Logger) GoalConfigUpdated(ctx context.Context, r *http.Request, actorID, teamType, fieldsChanged string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventGoalConfigUpdated,
		ActorID:   actorID,
		SubjectID: teamType,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details:   map[string]string{"fields_changed": fieldsChanged},
	})
}

// ReportUpload records a completed CSV upload with its row counts.
func (l *Logger) ReportUpload(ctx context.Context, r *http.Request, actorID, batchID, fileName string, imported, skipped, rejected int) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventReportUpload,
		ActorID:   actorID,
		SubjectID: batchID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details: map[string]string{
			"file_name": fileName,
			"imported":  strconv.Itoa(imported),
			"skipped":   strconv.Itoa(skipped),
			"rejected":  strconv.Itoa(rejected),
		},
	})
}

// AdminChange records a provider CRUD action (players, teams, catalog).
// eventType is one of the audit.Event* admin constants.
func (l *Logger) AdminChange(ctx context.Context, r *http.Request, eventType, actorID, subjectID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		SubjectID: subjectID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
	})
}
