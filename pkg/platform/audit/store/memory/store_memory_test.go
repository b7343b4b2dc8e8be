package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "estategate/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	require.NoError(t, s.Append(ctx, audit.Event{Action: audit.EventVisitorVerified, Subject: "GOOD777"}))
	require.NoError(t, s.AppendBatch(ctx, []audit.Event{
		{Action: audit.EventVisitorDenied, Subject: "BLOCK123"},
		{Action: audit.EventVisitorCheckedOut, Subject: "GOOD777"},
	}))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bySubject, err := s.ListBySubject(ctx, "GOOD777")
	require.NoError(t, err)
	require.Len(t, bySubject, 2)
	assert.Equal(t, audit.EventVisitorVerified, bySubject[0].Action)

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, audit.EventVisitorCheckedOut, recent[0].Action)
	assert.Equal(t, audit.EventVisitorDenied, recent[1].Action)

	s.Clear()
	all, err = s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEventCategory(t *testing.T) {
	assert.Equal(t, audit.CategorySecurity, audit.EventVisitorDenied.Category())
	assert.Equal(t, audit.CategorySecurity, audit.EventEmergencyRaised.Category())
	assert.Equal(t, audit.CategoryOperations, audit.EventVisitorVerified.Category())
	assert.Equal(t, audit.CategoryOperations, audit.AuditEvent("unknown").Category())
}

func TestEventKey(t *testing.T) {
	assert.Equal(t, "v-1", audit.Event{VisitorID: "v-1", Subject: "GOOD777"}.Key())
	assert.Equal(t, "BLOCK123", audit.Event{Subject: "BLOCK123"}.Key())
}
