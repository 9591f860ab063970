// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/js-arias/autolin/alias"
	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/store"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "data", "lineages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProposals(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	ps := []lineage.Proposal{
		{Parent: "L", ParentNode: "root", Name: "L.2", Node: "c2", Score: 50, Size: 100, Level: 1},
		{Parent: "L", ParentNode: "root", Name: "L.1", Node: "c1", Score: 25.5, Size: 30, Level: 1},
		{Parent: "L.2", ParentNode: "c2", Name: "L.2.1", Node: "c21", Score: 12, Size: 20, Level: 2},
	}
	require.NoError(t, db.SetProposals(ctx, ps))

	got, err := db.Proposals(ctx)
	require.NoError(t, err)
	require.Equal(t, ps, got)

	// proposals are replaced
	require.NoError(t, db.SetProposals(ctx, ps[:1]))
	got, err = db.Proposals(ctx)
	require.NoError(t, err)
	require.Equal(t, ps[:1], got)

	// lineage names are unique
	require.Error(t, db.SetProposals(ctx, []lineage.Proposal{ps[0], ps[0]}))
	got, err = db.Proposals(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestLabels(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	labels := map[string]string{
		"s1": "L.1",
		"s2": "L.1",
		"s3": "L.2.1",
	}
	require.NoError(t, db.SetLabels(ctx, labels))

	got, err := db.Labels(ctx)
	require.NoError(t, err)
	require.Equal(t, labels, got)
}

func TestAliases(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	tab := alias.New(alias.DefaultDepth)
	tab.Name("B.1.1.529", 1)
	tab.Name("B.1.1.529", 2)
	require.NoError(t, db.SetAliases(ctx, tab))

	got, err := db.Aliases(ctx, alias.DefaultDepth)
	require.NoError(t, err)
	require.Equal(t, tab.Aliases(), got.Aliases())
	require.Equal(t, "B.1.1.529.2", got.Expand("C.2"))

	// the database keeps its data
	path := db.Path()
	require.NoError(t, db.Close())
	db, err = store.Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err = db.Aliases(ctx, alias.DefaultDepth)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
}
