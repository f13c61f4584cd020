package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/circumplex/internal/journal"
	"github.com/at-ishikawa/circumplex/internal/testutil"
)

func TestCollectionsCommands(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	testutil.WriteJournal(t, tmpDir, sampleEntries())

	out, err := execute(t, newCollectionsCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No collections.")

	out, err = execute(t, newCollectionsCommand(), "add", "Work")
	require.NoError(t, err)
	assert.Contains(t, out, "Created collection Work")

	collections := testutil.ReadJournal(t, tmpDir).Collections()
	require.Len(t, collections, 1)
	id := collections[0].ID

	_, err = execute(t, newCollectionsCommand(), "assign", "1", id)
	require.NoError(t, err)
	assert.Equal(t, id, testutil.ReadJournal(t, tmpDir).Entries()[1].Collection)

	out, err = execute(t, newListCommand(), "--collection", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Calm")
	assert.NotContains(t, out, "Excited")

	out, err = execute(t, newCollectionsCommand(), "assign", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from its collection")
	assert.Empty(t, testutil.ReadJournal(t, tmpDir).Entries()[1].Collection)

	_, err = execute(t, newCollectionsCommand(), "assign", "0", "missing")
	assert.ErrorIs(t, err, journal.ErrCollectionNotFound)

	_, err = execute(t, newCollectionsCommand(), "remove", id)
	require.NoError(t, err)
	assert.Empty(t, testutil.ReadJournal(t, tmpDir).Collections())

	_, err = execute(t, newCollectionsCommand(), "remove", id)
	assert.ErrorIs(t, err, journal.ErrCollectionNotFound)
}

func TestTagsCommands(t *testing.T) {
	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
	testutil.WriteJournal(t, tmpDir, sampleEntries())

	out, err := execute(t, newTagsCommand(), "set", "2", "evening", " walk ", "evening")
	require.NoError(t, err)
	assert.Contains(t, out, "Tagged entry 2")
	assert.Equal(t, []string{"evening", "walk"}, testutil.ReadJournal(t, tmpDir).Entries()[2].Tags)

	out, err = execute(t, newTagsCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#evening")
	assert.Contains(t, out, "#walk")
	assert.Contains(t, out, "#work")

	_, err = execute(t, newTagsCommand(), "set", "2")
	require.NoError(t, err)
	assert.Empty(t, testutil.ReadJournal(t, tmpDir).Entries()[2].Tags)

	_, err = execute(t, newTagsCommand(), "set", "-1", "x")
	assert.Error(t, err)
}
