package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutech-id/campus-timetable-api/internal/models"
)

func testAssignment(id string) models.Assignment {
	return models.Assignment{
		ID: id, TeacherID: "t1", RoomID: "r1",
		Start: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestScheduleRepositoryAppendPreservesOrder(t *testing.T) {
	r := NewScheduleRepository()
	r.Append(testAssignment("a1"))
	r.Append(testAssignment("a2"))

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "a1", snapshot[0].ID)
	assert.Equal(t, "a2", snapshot[1].ID)
}

func TestScheduleRepositorySnapshotIsACopy(t *testing.T) {
	r := NewScheduleRepository()
	r.Append(testAssignment("a1"))

	snapshot := r.Snapshot()
	snapshot[0].ID = "mutated"
	assert.Equal(t, "a1", r.Snapshot()[0].ID)
}

func TestScheduleRepositoryReplaceAllAndClear(t *testing.T) {
	r := NewScheduleRepository()
	r.Append(testAssignment("a1"))

	r.ReplaceAll([]models.Assignment{testAssignment("b1"), testAssignment("b2")})
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "b1", r.Snapshot()[0].ID)

	r.Clear()
	assert.Equal(t, 0, r.Len())
}

func TestScheduleRepositoryBeginSerialisesMutators(t *testing.T) {
	r := NewScheduleRepository()

	release := r.Begin()
	entered := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		inner := r.Begin()
		close(entered)
		inner()
	}()

	select {
	case <-entered:
		t.Fatal("second Begin acquired the gate while the first still held it")
	case <-time.After(20 * time.Millisecond):
	}

	release()
	wg.Wait()
	<-entered
}
