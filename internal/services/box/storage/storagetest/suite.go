// Package storagetest holds behavior checks shared by every box store backend.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/louisbranch/boxsync/internal/services/box/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backend is the full surface a box store backend provides.
type Backend interface {
	storage.Store
	storage.Reader
	storage.PageStore
}

// Opener returns a fresh, migrated, empty backend for one test.
type Opener func(t *testing.T) Backend

// Run executes the shared store checks against backends produced by open.
func Run(t *testing.T, open Opener) {
	t.Helper()

	t.Run("find missing box", func(t *testing.T) { testFindMissing(t, open(t)) })
	t.Run("insert and find", func(t *testing.T) { testInsertAndFind(t, open(t)) })
	t.Run("next show order", func(t *testing.T) { testNextShowOrder(t, open(t)) })
	t.Run("update box", func(t *testing.T) { testUpdateBox(t, open(t)) })
	t.Run("replace localizations", func(t *testing.T) { testReplaceLocalizations(t, open(t)) })
	t.Run("delete cascades", func(t *testing.T) { testDeleteCascades(t, open(t)) })
	t.Run("list by identifiers", func(t *testing.T) { testListByIdentifiers(t, open(t)) })
	t.Run("box pages", func(t *testing.T) { testBoxPages(t, open(t)) })
	t.Run("rollback on error", func(t *testing.T) { testRollback(t, open(t)) })
	t.Run("concurrent show order", func(t *testing.T) { testConcurrentShowOrder(t, open(t)) })
}

// SampleBox returns a valid box row for package 1.
func SampleBox(identifier string) storage.BoxRecord {
	return storage.BoxRecord{
		PackageID:         1,
		Identifier:        identifier,
		Name:              "Box " + identifier,
		BoxType:           "html",
		Position:          "sidebarLeft",
		ShowOrder:         1,
		VisibleEverywhere: true,
		CSSClassName:      "box-" + identifier,
		ShowHeader:        true,
	}
}

func insert(t *testing.T, store storage.Store, box storage.BoxRecord) int64 {
	t.Helper()
	var id int64
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		var err error
		id, err = tx.InsertBox(ctx, box)
		return err
	})
	require.NoError(t, err)
	return id
}

func testFindMissing(t *testing.T, store Backend) {
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		_, err := tx.FindBox(ctx, "missing", 1)
		return err
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testInsertAndFind(t *testing.T, store Backend) {
	want := SampleBox("news")
	want.OriginIsSystem = true
	want.Controller = "NewsController"
	want.IsMultilingual = true
	want.ShowHeader = false
	want.BoxID = insert(t, store, want)
	require.NotZero(t, want.BoxID)

	var got storage.BoxRecord
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		var err error
		got, err = tx.FindBox(ctx, "news", 1)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	err = store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		_, err := tx.FindBox(ctx, "news", 2)
		return err
	})
	require.ErrorIs(t, err, storage.ErrNotFound, "natural key includes the package")
}

func testNextShowOrder(t *testing.T, store Backend) {
	next := func(position string) int {
		var n int
		err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
			var err error
			n, err = tx.NextShowOrder(ctx, position)
			return err
		})
		require.NoError(t, err)
		return n
	}

	assert.Equal(t, 1, next("sidebarLeft"))

	zero := SampleBox("zero")
	zero.ShowOrder = 0
	insert(t, store, zero)
	assert.Equal(t, 1, next("sidebarLeft"), "a zero maximum restarts at one")

	high := SampleBox("high")
	high.ShowOrder = 7
	insert(t, store, high)
	assert.Equal(t, 8, next("sidebarLeft"))
	assert.Equal(t, 1, next("footer"))
}

func testUpdateBox(t *testing.T, store Backend) {
	box := SampleBox("stats")
	box.BoxType = "system"
	box.OriginIsSystem = true
	box.BoxID = insert(t, store, box)

	box.Position = "footer"
	box.ShowOrder = 4
	box.VisibleEverywhere = false
	box.Controller = "StatsController"
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.UpdateBox(ctx, box)
	})
	require.NoError(t, err)

	boxes, err := store.ListBoxes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, box, boxes[0])

	missing := box
	missing.BoxID = box.BoxID + 100
	err = store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.UpdateBox(ctx, missing)
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func testReplaceLocalizations(t *testing.T, store Backend) {
	id := insert(t, store, SampleBox("intro"))
	replace := func(content []storage.ContentRecord, names []storage.NameRecord) {
		err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
			if err := tx.ReplaceBoxContent(ctx, id, content); err != nil {
				return err
			}
			return tx.ReplaceBoxNames(ctx, id, names)
		})
		require.NoError(t, err)
	}

	replace(
		[]storage.ContentRecord{{Locale: "de", Title: "Hallo", Content: "Welt"}, {Locale: "en", Title: "Hello", Content: "World"}},
		[]storage.NameRecord{{Locale: "de", Name: "Einleitung"}, {Locale: "en", Name: "Intro"}},
	)
	replace(
		[]storage.ContentRecord{{Locale: "", Title: "Only", Content: "Neutral"}},
		[]storage.NameRecord{{Locale: "en", Name: "Intro"}},
	)

	content, err := store.ListBoxContent(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []storage.ContentRecord{{Locale: "", Title: "Only", Content: "Neutral"}}, content)

	names, err := store.ListBoxNames(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []storage.NameRecord{{Locale: "en", Name: "Intro"}}, names)
}

func testDeleteCascades(t *testing.T, store Backend) {
	ctx := context.Background()
	pageID, err := store.PutPage(ctx, storage.PageRecord{Identifier: "home", PackageID: 1})
	require.NoError(t, err)
	id := insert(t, store, SampleBox("gone"))

	err = store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.ReplaceBoxContent(ctx, id, []storage.ContentRecord{{Title: "t", Content: "c"}}); err != nil {
			return err
		}
		if err := tx.ReplaceBoxNames(ctx, id, []storage.NameRecord{{Locale: "en", Name: "Gone"}}); err != nil {
			return err
		}
		return tx.InsertBoxPage(ctx, storage.BoxPageRecord{BoxID: id, PageID: pageID})
	})
	require.NoError(t, err)

	var deleted, missing int64
	err = store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		var err error
		if deleted, err = tx.DeleteBox(ctx, "gone", 1); err != nil {
			return err
		}
		missing, err = tx.DeleteBox(ctx, "never-installed", 1)
		return err
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.EqualValues(t, 0, missing)

	content, err := store.ListBoxContent(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, content)
	names, err := store.ListBoxNames(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, names)
	pages, err := store.ListBoxPages(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func testListByIdentifiers(t *testing.T, store Backend) {
	insert(t, store, SampleBox("b"))
	insert(t, store, SampleBox("a"))
	other := SampleBox("c")
	other.PackageID = 2
	insert(t, store, other)

	var boxes []storage.BoxRecord
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		var err error
		boxes, err = tx.ListBoxesByIdentifiers(ctx, 1, []string{"c", "b", "a", "missing"})
		return err
	})
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, "a", boxes[0].Identifier)
	assert.Equal(t, "b", boxes[1].Identifier)

	err = store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		var err error
		boxes, err = tx.ListBoxesByIdentifiers(ctx, 1, nil)
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func testBoxPages(t *testing.T, store Backend) {
	ctx := context.Background()
	home, err := store.PutPage(ctx, storage.PageRecord{Identifier: "home", PackageID: 1})
	require.NoError(t, err)
	about, err := store.PutPage(ctx, storage.PageRecord{Identifier: "about", PackageID: 1})
	require.NoError(t, err)
	again, err := store.PutPage(ctx, storage.PageRecord{Identifier: "home", PackageID: 3})
	require.NoError(t, err)
	assert.Equal(t, home, again)

	id := insert(t, store, SampleBox("pages"))
	err = store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		ids, err := tx.ResolvePageIDs(ctx, []string{"about", "home", "unknown"})
		if err != nil {
			return err
		}
		assert.ElementsMatch(t, []int64{home, about}, ids)

		if err := tx.InsertBoxPage(ctx, storage.BoxPageRecord{BoxID: id, PageID: home, Visible: true}); err != nil {
			return err
		}
		return tx.InsertBoxPage(ctx, storage.BoxPageRecord{BoxID: id, PageID: home, Visible: false})
	})
	require.NoError(t, err)

	pages, err := store.ListBoxPages(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []storage.BoxPageRecord{{BoxID: id, PageID: home, Visible: true}}, pages)

	err = store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		return tx.DeleteBoxPages(ctx, id)
	})
	require.NoError(t, err)
	pages, err = store.ListBoxPages(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func testRollback(t *testing.T, store Backend) {
	boom := errors.New("boom")
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.InsertBox(ctx, SampleBox("rolled-back")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	boxes, err := store.ListBoxes(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, boxes)
}

func testConcurrentShowOrder(t *testing.T, store Backend) {
	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
				order, err := tx.NextShowOrder(ctx, "header")
				if err != nil {
					return err
				}
				box := SampleBox(string(rune('a' + i)))
				box.Position = "header"
				box.ShowOrder = order
				_, err = tx.InsertBox(ctx, box)
				return err
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	boxes, err := store.ListBoxes(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, boxes, workers)
	seen := make(map[int]bool, workers)
	for _, box := range boxes {
		assert.False(t, seen[box.ShowOrder], "show order %d assigned twice", box.ShowOrder)
		seen[box.ShowOrder] = true
	}
	for order := 1; order <= workers; order++ {
		assert.True(t, seen[order], "show order %d missing", order)
	}
}
