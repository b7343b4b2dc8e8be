package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estategate/internal/platform/config"
	audit "estategate/pkg/platform/audit"
)

func TestToRecord(t *testing.T) {
	event := audit.Event{
		Category:  audit.CategorySecurity,
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Action:    audit.EventVisitorDenied,
		Subject:   "BLOCK123",
		Decision:  "denied",
	}

	rec, err := toRecord(event)
	require.NoError(t, err)

	assert.Equal(t, "BLOCK123", string(rec.Key))
	require.Len(t, rec.Headers, 2)
	assert.Equal(t, HeaderCategory, rec.Headers[0].Key)
	assert.Equal(t, string(audit.CategorySecurity), string(rec.Headers[0].Value))
	assert.Equal(t, string(audit.EventVisitorDenied), string(rec.Headers[1].Value))

	var decoded audit.Event
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestToRecord_KeysByVisitor(t *testing.T) {
	rec, err := toRecord(audit.Event{Action: audit.EventVisitorCheckedOut, Subject: "GUEST42", VisitorID: "v-1"})
	require.NoError(t, err)

	assert.Equal(t, "v-1", string(rec.Key))
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(config.KafkaConfig{AuditTopic: "audit"})
	assert.Error(t, err)

	_, err = NewProducer(config.KafkaConfig{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)
}
