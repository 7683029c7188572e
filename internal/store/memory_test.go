package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"torino-tile-backend/internal/intake"
)

func TestMemoryStoreStaffFlag(t *testing.T) {
	m := NewMemoryStore(0)

	require.False(t, m.IsStaffAuthenticated("s1"))
	m.SetStaff("s1", "admin")
	require.True(t, m.IsStaffAuthenticated("s1"))
	require.Equal(t, "admin", m.StaffUsername("s1"))
	require.False(t, m.IsStaffAuthenticated("s2"))

	m.ClearStaff("s1")
	require.False(t, m.IsStaffAuthenticated("s1"))
}

func TestMemoryStoreIntakeRoundTrip(t *testing.T) {
	m := NewMemoryStore(time.Minute)

	_, ok := m.Load("s1")
	require.False(t, ok)

	st := intake.NewState()
	st.Step = intake.StepAwaitFirstName
	st.Collected[intake.FieldLastName] = "Smith"
	m.Save("s1", st)

	got, ok := m.Load("s1")
	require.True(t, ok)
	require.Equal(t, st, got)

	m.Clear("s1")
	_, ok = m.Load("s1")
	require.False(t, ok)
}

func TestMemoryStoreCopiesState(t *testing.T) {
	m := NewMemoryStore(time.Minute)

	st := intake.NewState()
	st.Step = intake.StepAwaitFirstName
	st.Collected[intake.FieldLastName] = "Smith"
	m.Save("s1", st)

	// Mutating the caller's map must not leak into the store
	st.Collected[intake.FieldLastName] = "Jones"
	got, _ := m.Load("s1")
	require.Equal(t, "Smith", got.Collected[intake.FieldLastName])

	// Nor may mutating a loaded copy
	got.Collected[intake.FieldLastName] = "Brown"
	again, _ := m.Load("s1")
	require.Equal(t, "Smith", again.Collected[intake.FieldLastName])
}

func TestMemoryStoreExpiresIdleIntake(t *testing.T) {
	m := NewMemoryStore(10 * time.Millisecond)

	st := intake.NewState()
	st.Step = intake.StepAwaitAddress
	st.Collected[intake.FieldLastName] = "Smith"
	m.Save("s1", st)

	time.Sleep(25 * time.Millisecond)
	_, ok := m.Load("s1")
	require.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	m := NewMemoryStore(0)

	st := intake.NewState()
	st.Step = intake.StepAwaitAddress
	st.Collected[intake.FieldLastName] = "Smith"
	m.Save("s1", st)

	time.Sleep(25 * time.Millisecond)
	_, ok := m.Load("s1")
	require.True(t, ok)
}

func TestClearStaffDropsIntakeState(t *testing.T) {
	m := NewMemoryStore(time.Minute)
	m.SetStaff("s1", "admin")

	st := intake.NewState()
	st.Step = intake.StepAwaitPhone
	st.Collected[intake.FieldLastName] = "Smith"
	m.Save("s1", st)

	m.ClearStaff("s1")
	_, ok := m.Load("s1")
	require.False(t, ok)
}
