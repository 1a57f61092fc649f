package audit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gangosri/his/internal/platform/auth"
)

// Trail records who did what, after the action has already been authorized
// and performed. Recording is best-effort: a failed write never fails the
// request that triggered it, but it is logged and counted so operators can
// alert on audit gaps.
type Trail struct {
	repo     Repository
	logger   zerolog.Logger
	failures prometheus.Counter
}

func NewTrail(repo Repository, logger zerolog.Logger, failures prometheus.Counter) *Trail {
	return &Trail{repo: repo, logger: logger, failures: failures}
}

// Record appends an audit entry for the given actor. A nil actor records
// the entry without attribution, which only happens for login events where
// the actor is the user who just authenticated.
func (t *Trail) Record(ctx context.Context, actor *auth.Principal, action, resourceType, resourceID string, detail map[string]interface{}) {
	entry := &Entry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}
	if actor != nil {
		entry.ActorID = actor.ID
		entry.ActorEmail = actor.Email
	}

	if err := t.repo.Append(ctx, entry); err != nil {
		t.failures.Inc()
		t.logger.Error().
			Err(err).
			Str("action", action).
			Str("resource_type", resourceType).
			Str("resource_id", resourceID).
			Msg("audit write failed")
	}
}

// Search returns audit entries matching filter, newest first.
func (t *Trail) Search(ctx context.Context, filter Filter, limit, offset int) ([]*Entry, int, error) {
	return t.repo.Search(ctx, filter, limit, offset)
}
