package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EnablesWAL(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestInsertRun_AssignsUUID(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	id, err := InsertRun(sqlDB, Run{Language: "json", Source: "arg", Input: "[1]", Outcome: "ok", Nodes: 3, Elapsed: 1500 * time.Microsecond})
	require.NoError(t, err)
	assert.Len(t, id, 36)

	r, err := FindRun(sqlDB, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "[1]", r.Input)
	assert.Equal(t, 3, r.Nodes)
	assert.Equal(t, 1500*time.Microsecond, r.Elapsed)
	assert.WithinDuration(t, time.Now(), r.CreatedAt, time.Minute)
	assert.Equal(t, id[:8], r.ShortID())
}

func TestListRuns_Filters(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, r := range []Run{
		{Language: "json", Source: "a.json", Input: "1", Outcome: "ok"},
		{Language: "json", Source: "b.json", Input: "[", Outcome: "parse_error", Message: "1:2: unexpected end of input"},
		{Language: "json-pointer", Source: "arg", Input: "/a", Outcome: "ok"},
	} {
		_, err := InsertRun(sqlDB, r)
		require.NoError(t, err)
	}

	all, err := ListRuns(sqlDB, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "arg", all[0].Source, "newest first")

	failed, err := ListRuns(sqlDB, Filter{Outcome: "parse_error"})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "b.json", failed[0].Source)

	ptr, err := ListRuns(sqlDB, Filter{Language: "json-pointer"})
	require.NoError(t, err)
	assert.Len(t, ptr, 1)

	limited, err := ListRuns(sqlDB, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFindRun_Errors(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = FindRun(sqlDB, "deadbeef")
	assert.ErrorIs(t, err, ErrRunNotFound)

	for _, id := range []string{"aaaa0000-0000-0000-0000-000000000001", "aaaa0000-0000-0000-0000-000000000002"} {
		_, err := InsertRun(sqlDB, Run{ID: id, Language: "json", Source: "arg", Input: "1", Outcome: "ok"})
		require.NoError(t, err)
	}
	_, err = FindRun(sqlDB, "aaaa")
	assert.ErrorIs(t, err, ErrAmbiguousRun)

	r, err := FindRun(sqlDB, "aaaa0000-0000-0000-0000-000000000002")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(r.ID, "2"))
}

func TestFindRun_PrefixIsLiteral(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = InsertRun(sqlDB, Run{ID: "abcdef12-0000-0000-0000-000000000000", Language: "json", Source: "arg", Input: "1", Outcome: "ok"})
	require.NoError(t, err)

	for _, prefix := range []string{"%", "_b", "ABC", "a%", ""} {
		_, err := FindRun(sqlDB, prefix)
		assert.ErrorIs(t, err, ErrBadRunID, prefix)
	}

	_, err = FindRun(sqlDB, "abd")
	assert.ErrorIs(t, err, ErrRunNotFound)

	r, err := FindRun(sqlDB, "abcdef12-")
	require.NoError(t, err)
	assert.Equal(t, "abcdef12", r.ShortID())
}

func TestCountRuns_GroupsByLanguageAndOutcome(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, outcome := range []string{"ok", "ok", "build_error"} {
		_, err := InsertRun(sqlDB, Run{Language: "json", Source: "arg", Input: "1", Outcome: outcome})
		require.NoError(t, err)
	}

	counts, err := CountRuns(sqlDB)
	require.NoError(t, err)
	assert.Equal(t, []OutcomeCount{
		{Language: "json", Outcome: "ok", Count: 2},
		{Language: "json", Outcome: "build_error", Count: 1},
	}, counts)
}
