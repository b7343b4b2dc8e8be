package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "estategate/pkg/domain-errors"
)

func TestApplyUpdates(t *testing.T) {
	later := fixedNow.Add(2 * time.Hour)

	t.Run("checkout transitions and stamps exit", func(t *testing.T) {
		v := NewVisitorRecord("v-1", "GOOD777", "1234", "res-4B", MethodQR, fixedNow)

		checkedOut, err := ApplyUpdates(v, []VisitorUpdate{CheckOut{}}, later)
		require.NoError(t, err)
		assert.True(t, checkedOut)
		assert.Equal(t, VisitorStatusCheckedOut, v.Status)
		require.NotNil(t, v.ExitTimestamp)
		assert.Equal(t, later, *v.ExitTimestamp)
	})

	t.Run("second checkout is an invariant violation", func(t *testing.T) {
		v := NewVisitorRecord("v-1", "GOOD777", "1234", "res-4B", MethodQR, fixedNow)
		_, err := ApplyUpdates(v, []VisitorUpdate{CheckOut{}}, later)
		require.NoError(t, err)

		_, err = ApplyUpdates(v, []VisitorUpdate{CheckOut{}}, later)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("field updates do not transition", func(t *testing.T) {
		v := NewVisitorRecord("v-1", "GOOD777", "1234", "res-4B", MethodQR, fixedNow)

		checkedOut, err := ApplyUpdates(v, []VisitorUpdate{
			Relabel{Name: "  Ada Obi "},
			ChangePurpose{Purpose: "Delivery"},
			ReassignHost{HostResident: "res-9C"},
		}, later)
		require.NoError(t, err)
		assert.False(t, checkedOut)
		assert.Equal(t, "Ada Obi", v.Name)
		assert.Equal(t, "Delivery", v.Purpose)
		assert.Equal(t, "res-9C", v.HostResident)
		assert.Equal(t, VisitorStatusActive, v.Status)
	})

	t.Run("field updates allowed on checked-out record", func(t *testing.T) {
		v := NewVisitorRecord("v-1", "GOOD777", "1234", "res-4B", MethodQR, fixedNow)
		v.ApplyCheckOut(later)

		checkedOut, err := ApplyUpdates(v, []VisitorUpdate{Relabel{Name: "Ada"}}, later)
		require.NoError(t, err)
		assert.False(t, checkedOut)
		assert.Equal(t, VisitorStatusCheckedOut, v.Status)
	})

	t.Run("empty and blank updates are rejected", func(t *testing.T) {
		v := NewVisitorRecord("v-1", "GOOD777", "1234", "res-4B", MethodQR, fixedNow)

		_, err := ApplyUpdates(v, nil, later)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = ApplyUpdates(v, []VisitorUpdate{Relabel{Name: " "}}, later)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = ApplyUpdates(v, []VisitorUpdate{nil}, later)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestHasCheckOut(t *testing.T) {
	assert.True(t, HasCheckOut([]VisitorUpdate{Relabel{Name: "x"}, CheckOut{}}))
	assert.False(t, HasCheckOut([]VisitorUpdate{Relabel{Name: "x"}}))
}
