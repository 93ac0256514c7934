package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArchive(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "exports", "taskquest.sqlite")

	doc := NewDocument()
	Seed(doc, time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC))
	doc.Profile.Badges = []string{"early_bird"}

	first, err := WriteArchive(ctx, path, &Export{ExportDate: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC), Data: doc})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	counts := map[string]int{
		"exports": 1,
		"tasks":   2,
		"profile": 1,
		"badges":  1,
		"skills":  3,
		"quests":  3,
		"config":  9,
	}
	for table, want := range counts {
		got, err := archiveRowCount(ctx, path, table, first)
		require.NoError(t, err, table)
		assert.Equal(t, want, got, table)
	}

	doc.Tasks = doc.Tasks[:1]
	second, err := WriteArchive(ctx, path, &Export{ExportDate: time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC), Data: doc})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := ListArchive(ctx, path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].ExportID)
	assert.Equal(t, 2, entries[0].TaskCount)
	assert.Equal(t, second, entries[1].ExportID)
	assert.Equal(t, 1, entries[1].TaskCount)
	assert.True(t, entries[1].ExportedAt.After(entries[0].ExportedAt))
}

func TestListArchiveMissingFile(t *testing.T) {
	_, err := ListArchive(context.Background(), filepath.Join(t.TempDir(), "nope.sqlite"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage))
}

func TestWriteArchiveRejectsEmptyExport(t *testing.T) {
	_, err := WriteArchive(context.Background(), filepath.Join(t.TempDir(), "a.sqlite"), &Export{})
	require.Error(t, err)
}

func TestListArchiveOrdersSubsecondExports(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "taskquest.sqlite")
	doc := NewDocument()

	base := time.Date(2025, 1, 2, 9, 0, 5, 0, time.UTC)
	first, err := WriteArchive(ctx, path, &Export{ExportDate: base, Data: doc})
	require.NoError(t, err)
	second, err := WriteArchive(ctx, path, &Export{ExportDate: base.Add(500 * time.Millisecond), Data: doc})
	require.NoError(t, err)

	entries, err := ListArchive(ctx, path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].ExportID)
	assert.Equal(t, second, entries[1].ExportID)
	assert.True(t, entries[0].ExportedAt.Equal(base))
}

// archiveRowCount returns the number of rows table holds for exportID.
func archiveRowCount(ctx context.Context, path, table, exportID string) (int, error) {
	switch table {
	case "tasks", "profile", "badges", "skills", "quests", "config", "exports":
	default:
		return 0, fmt.Errorf("unknown archive table %q", table)
	}
	db, err := OpenArchive(ctx, path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE export_id = ?`, exportID).Scan(&n)
	return n, err
}
