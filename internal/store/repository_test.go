package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fh2207/waveview/internal/point"
)

func openTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenRepository(filepath.Join(t.TempDir(), "points.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositorySaveLoad(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	a := point.New(5, true)
	a.Color = "#ff9800"
	a.LabelText = "drop"
	b := point.New(1, false)

	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	points, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Load orders by time.
	require.Equal(t, b.ID, points[0].ID)
	require.Equal(t, a.ID, points[1].ID)
	require.Equal(t, "#ff9800", points[1].Color)
	require.Equal(t, "drop", points[1].LabelText)
	require.True(t, points[1].Editable)
	require.False(t, points[0].Editable)
}

func TestRepositorySaveUpserts(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	p := point.New(2, true)
	require.NoError(t, repo.Save(ctx, p))

	p.Time = 7
	p.LabelText = "moved"
	require.NoError(t, repo.Save(ctx, p))

	points, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, 7.0, points[0].Time)
	require.Equal(t, "moved", points[0].LabelText)
}

func TestRepositorySaveAllReplaces(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, point.New(1, true)))
	require.NoError(t, repo.Save(ctx, point.New(2, true)))

	fresh := point.New(9, false)
	require.NoError(t, repo.SaveAll(ctx, []*point.Point{fresh}))

	points, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, fresh.ID, points[0].ID)

	// An empty set clears the table.
	require.NoError(t, repo.SaveAll(ctx, nil))
	points, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, points)
}

func TestRepositoryDelete(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	p := point.New(3, true)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	require.ErrorIs(t, repo.Delete(ctx, p.ID), ErrPointNotFound)
}

func TestRepositoryRejectsInvalidPoints(t *testing.T) {
	repo := openTestRepository(t)
	ctx := context.Background()

	require.Error(t, repo.Save(ctx, &point.Point{ID: "", Time: 1}))
	require.Error(t, repo.SaveAll(ctx, []*point.Point{{ID: "p1", Time: -1}}))

	points, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, points)
}
