package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	audit "skvote/contexts/election-operations/audit-service"
	"skvote/contexts/election-operations/audit-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/audit-service/domain/errors"
)

func seedAuditLogs(module audit.Module, count int) {
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < count; i++ {
		action := "ballot_cast"
		if i%2 == 0 {
			action = "verification_verified"
		}
		module.Store.SeedLog(entities.AuditLog{
			ID:         "log-" + string(rune('a'+i)),
			ActorID:    "officer-1",
			Action:     action,
			Detail:     "entry",
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestListLogsRequiresPermission(t *testing.T) {
	module := audit.NewInMemoryModule(testLogger())
	seedAuditLogs(module, 2)
	ctx := context.Background()

	_, err := module.Handler.ListHandler(ctx, "voter-1", "", 0)
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestListLogsNewestFirst(t *testing.T) {
	module := audit.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("auditor-1", "view:audit_logs")
	seedAuditLogs(module, 4)
	ctx := context.Background()

	resp, err := module.Handler.ListHandler(ctx, "auditor-1", "", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.Count != 4 {
		t.Fatalf("expected 4 logs, got %d", resp.Count)
	}
	if resp.Logs[0].ID != "log-d" {
		t.Fatalf("expected newest entry first, got %+v", resp.Logs[0])
	}
}

func TestListLogsFiltersByAction(t *testing.T) {
	module := audit.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("auditor-1", "view:audit_logs")
	seedAuditLogs(module, 4)
	ctx := context.Background()

	resp, err := module.Handler.ListHandler(ctx, "auditor-1", "ballot_cast", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 ballot_cast logs, got %d", resp.Count)
	}
	for _, log := range resp.Logs {
		if log.Action != "ballot_cast" {
			t.Fatalf("filter leaked action %s", log.Action)
		}
	}
}

func TestListLogsHonorsLimit(t *testing.T) {
	module := audit.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("auditor-1", "view:audit_logs")
	seedAuditLogs(module, 6)
	ctx := context.Background()

	resp, err := module.Handler.ListHandler(ctx, "auditor-1", "", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected limit of 2, got %d", resp.Count)
	}
}
