package gradestore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"powergrades/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) Store {
	cleanup := telemetry.SetupForTesting("test:gradestore")
	t.Cleanup(cleanup)

	database, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "grades.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store, err := NewStore(database)
	require.NoError(t, err)
	return store
}

func TestPushPull(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	day1 := time.Date(2025, 9, 1, 15, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 9, 2, 15, 0, 0, 0, time.UTC)

	err := store.Push(ctx, "student1", day1, []CourseSnapshot{
		{Course: "Algebra II", Time: day1, Value: 91.5},
		{Course: "AP Biology", Time: day1, Value: 96.2},
	})
	require.NoError(t, err)

	err = store.Push(ctx, "student1", day2, []CourseSnapshot{
		{Course: "Algebra II", Time: day2, Value: 92.0},
	})
	require.NoError(t, err)

	courses, err := store.Pull(ctx, "student1")
	require.NoError(t, err)
	require.Len(t, courses, 2)

	require.Equal(t, "AP Biology", courses[0].Course)
	require.Len(t, courses[0].Snapshots, 1)

	require.Equal(t, "Algebra II", courses[1].Course)
	require.Len(t, courses[1].Snapshots, 2)
	require.Equal(t, 91.5, courses[1].Snapshots[0].Value)
	require.Equal(t, 92.0, courses[1].Snapshots[1].Value)
}

func TestPushReplacesSameDay(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	morning := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 9, 1, 20, 0, 0, 0, time.UTC)

	err := store.Push(ctx, "student1", morning, []CourseSnapshot{
		{Course: "Algebra II", Time: morning, Value: 90.0},
	})
	require.NoError(t, err)

	err = store.Push(ctx, "student1", evening, []CourseSnapshot{
		{Course: "Algebra II", Time: evening, Value: 91.0},
	})
	require.NoError(t, err)

	courses, err := store.Pull(ctx, "student1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Len(t, courses[0].Snapshots, 1)
	require.Equal(t, 91.0, courses[0].Snapshots[0].Value)
}

func TestPullIsolatesUsers(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	now := time.Date(2025, 9, 1, 15, 0, 0, 0, time.UTC)

	err := store.Push(ctx, "student1", now, []CourseSnapshot{
		{Course: "Algebra II", Time: now, Value: 91.5},
	})
	require.NoError(t, err)

	courses, err := store.Pull(ctx, "student2")
	require.NoError(t, err)
	require.Empty(t, courses)
}
