package install

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/louisbranch/boxsync/internal/platform/errors"
	"github.com/louisbranch/boxsync/internal/platform/i18n"
	"github.com/louisbranch/boxsync/internal/platform/logger"
	"github.com/louisbranch/boxsync/internal/services/box/manifest"
	"github.com/louisbranch/boxsync/internal/services/box/storage"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlite"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlstore"
)

const testPackageID = 7

type fixture struct {
	engine  *Engine
	store   *sqlstore.Store
	metrics *Metrics
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "boxes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	metrics := NewMetrics(prometheus.NewRegistry())
	engine, err := New(Config{PackageID: testPackageID}, store, testResolver(t),
		WithLogger(logger.FromZap(zap.New(core))),
		WithMetrics(metrics),
	)
	require.NoError(t, err)
	return fixture{engine: engine, store: store, metrics: metrics, logs: logs}
}

func testResolver(t *testing.T) i18n.Localizer {
	t.Helper()
	r, err := i18n.NewResolver("en")
	require.NoError(t, err)
	return r
}

func parseDoc(t *testing.T, body string) manifest.Document {
	t.Helper()
	doc, err := manifest.Parse(strings.NewReader("<data>" + body + "</data>"))
	require.NoError(t, err)
	return doc
}

func (f fixture) run(t *testing.T, body string) Summary {
	t.Helper()
	summary, err := f.engine.Run(context.Background(), parseDoc(t, body))
	require.NoError(t, err)
	return summary
}

func (f fixture) box(t *testing.T, identifier string) storage.BoxRecord {
	t.Helper()
	boxes, err := f.store.ListBoxes(context.Background(), testPackageID)
	require.NoError(t, err)
	for _, box := range boxes {
		if box.Identifier == identifier {
			return box
		}
	}
	t.Fatalf("box %s not found", identifier)
	return storage.BoxRecord{}
}

func (f fixture) seed(t *testing.T, boxes ...storage.BoxRecord) {
	t.Helper()
	err := f.store.RunInTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		for _, box := range boxes {
			if _, err := tx.InsertBox(ctx, box); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func htmlBox(identifier, position string) string {
	return `<box identifier="` + identifier + `">
		<name language="en">` + identifier + `</name>
		<boxType>html</boxType>
		<position>` + position + `</position>
		<content><title>T</title><content>C</content></content>
	</box>`
}

func systemBox(identifier, controller string) string {
	return `<box identifier="` + identifier + `">
		<name language="en">` + identifier + `</name>
		<title language="en">Title</title>
		<boxType>system</boxType>
		<controller>` + controller + `</controller>
		<position>sidebarRight</position>
	</box>`
}

func TestNewValidatesArguments(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "boxes.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = New(Config{}, store, testResolver(t))
	require.Error(t, err)
	_, err = New(Config{PackageID: 1}, nil, testResolver(t))
	require.Error(t, err)
	_, err = New(Config{PackageID: 1}, store, nil)
	require.Error(t, err)
}

func TestRunInsertsBoxesWithLocalizations(t *testing.T) {
	f := newFixture(t)
	summary := f.run(t, `<import>
		<box identifier="welcome">
			<name language="de">Willkommen</name>
			<name language="en">Welcome</name>
			<boxType>html</boxType>
			<position>contentTop</position>
			<showHeader>1</showHeader>
			<cssClassName>boxWelcome</cssClassName>
			<content language="en"><title>Hello</title><content>Hi</content></content>
			<content language="de"><title>Hallo</title><content>Na</content></content>
		</box>
		<box identifier="note">
			<name language="en">Note</name>
			<boxType>text</boxType>
			<position>footer</position>
			<visibleEverywhere>1</visibleEverywhere>
			<content><title>Note</title><content>Body</content></content>
		</box>
	</import>`)

	require.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 2, summary.Count(OutcomeInserted))

	welcome := f.box(t, "welcome")
	assert.Equal(t, storage.BoxRecord{
		BoxID:          welcome.BoxID,
		PackageID:      testPackageID,
		Identifier:     "welcome",
		Name:           "Welcome",
		BoxType:        "html",
		Position:       "contentTop",
		ShowOrder:      1,
		IsMultilingual: true,
		CSSClassName:   "boxWelcome",
		ShowHeader:     true,
		OriginIsSystem: true,
	}, welcome)

	content, err := f.store.ListBoxContent(context.Background(), welcome.BoxID)
	require.NoError(t, err)
	assert.Equal(t, []storage.ContentRecord{
		{Locale: "de", Title: "Hallo", Content: "Na"},
		{Locale: "en", Title: "Hello", Content: "Hi"},
	}, content)
	names, err := f.store.ListBoxNames(context.Background(), welcome.BoxID)
	require.NoError(t, err)
	assert.Equal(t, []storage.NameRecord{{Locale: "de", Name: "Willkommen"}, {Locale: "en", Name: "Welcome"}}, names)

	note := f.box(t, "note")
	assert.False(t, note.IsMultilingual)
	assert.True(t, note.VisibleEverywhere)
	content, err = f.store.ListBoxContent(context.Background(), note.BoxID)
	require.NoError(t, err)
	assert.Equal(t, []storage.ContentRecord{{Locale: "", Title: "Note", Content: "Body"}}, content)

	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.Items.WithLabelValues("inserted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Runs.WithLabelValues("ok")))
}

func TestRunAssignsShowOrderPerPosition(t *testing.T) {
	f := newFixture(t)
	for i, order := range []int{1, 3, 5} {
		box := storage.BoxRecord{
			PackageID:  testPackageID,
			Identifier: "existing-" + string(rune('a'+i)),
			Name:       "Existing",
			BoxType:    "html",
			Position:   "top",
			ShowOrder:  order,
		}
		f.seed(t, box)
	}

	summary := f.run(t, "<import>"+htmlBox("new-top", "top")+htmlBox("new-footer", "footer")+"</import>")

	require.Len(t, summary.Items, 2)
	assert.Equal(t, 6, summary.Items[0].ShowOrder)
	assert.Equal(t, 1, summary.Items[1].ShowOrder)
	assert.Equal(t, 6, f.box(t, "new-top").ShowOrder)
	assert.Equal(t, 1, f.box(t, "new-footer").ShowOrder)
}

func TestRunKeepsEditedNonSystemBoxes(t *testing.T) {
	f := newFixture(t)
	f.run(t, "<import>"+htmlBox("welcome", "top")+"</import>")
	before := f.box(t, "welcome")

	summary := f.run(t, "<import>"+htmlBox("welcome", "footer")+"</import>")

	require.Len(t, summary.Items, 1)
	assert.Equal(t, OutcomeSkipped, summary.Items[0].Outcome)
	assert.Equal(t, before, f.box(t, "welcome"))
}

func TestRunUpdatesSystemBoxes(t *testing.T) {
	f := newFixture(t)
	f.run(t, "<import>"+systemBox("stats", "OldController")+"</import>")
	before := f.box(t, "stats")
	assert.Equal(t, "OldController", before.Controller)

	summary := f.run(t, "<import>"+systemBox("stats", "NewController")+"</import>")

	require.Len(t, summary.Items, 1)
	assert.Equal(t, OutcomeUpdated, summary.Items[0].Outcome)
	after := f.box(t, "stats")
	assert.Equal(t, before.BoxID, after.BoxID)
	assert.Equal(t, "NewController", after.Controller)

	content, err := f.store.ListBoxContent(context.Background(), after.BoxID)
	require.NoError(t, err)
	assert.Equal(t, []storage.ContentRecord{{Locale: "en", Title: "Title"}}, content)
}

func TestRunScopesBoxesByPackage(t *testing.T) {
	f := newFixture(t)
	f.seed(t, storage.BoxRecord{
		PackageID:  testPackageID + 1,
		Identifier: "shared",
		Name:       "Other",
		BoxType:    "html",
		Position:   "top",
		ShowOrder:  1,
	})

	summary := f.run(t, "<import>"+htmlBox("shared", "top")+"</import>")

	require.Len(t, summary.Items, 1)
	assert.Equal(t, OutcomeInserted, summary.Items[0].Outcome)
	assert.Equal(t, 2, summary.Items[0].ShowOrder)
}

func TestRunDeletesBoxes(t *testing.T) {
	f := newFixture(t)
	f.run(t, "<import>"+htmlBox("a", "top")+htmlBox("b", "top")+"</import>")

	summary := f.run(t, `<delete><box identifier="a"/><box identifier="missing"/></delete>`)

	assert.EqualValues(t, 1, summary.Deleted)
	boxes, err := f.store.ListBoxes(context.Background(), testPackageID)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, "b", boxes[0].Identifier)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Deleted))
}

func TestRunDeleteBatchIsAtomic(t *testing.T) {
	f := newFixture(t)
	f.run(t, "<import>"+htmlBox("a", "top")+htmlBox("b", "top")+"</import>")
	_, err := f.store.DB().Exec(`CREATE TRIGGER fail_delete BEFORE DELETE ON box
		WHEN OLD.identifier = 'b' BEGIN SELECT RAISE(ABORT, 'boom'); END`)
	require.NoError(t, err)

	_, err = f.engine.Run(context.Background(), parseDoc(t, `<delete><box identifier="a"/><box identifier="b"/></delete>`))
	require.Error(t, err)

	boxes, err := f.store.ListBoxes(context.Background(), testPackageID)
	require.NoError(t, err)
	assert.Len(t, boxes, 2)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Runs.WithLabelValues("error")))
}

func TestRunWritesVisibilityExceptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pageA, err := f.store.PutPage(ctx, storage.PageRecord{Identifier: "pageA", PackageID: 1})
	require.NoError(t, err)
	pageB, err := f.store.PutPage(ctx, storage.PageRecord{Identifier: "pageB", PackageID: 1})
	require.NoError(t, err)

	summary := f.run(t, `<import>
		<box identifier="promo">
			<name language="en">Promo</name>
			<boxType>system</boxType>
			<controller>PromoController</controller>
			<position>hero</position>
			<visibleEverywhere>1</visibleEverywhere>
			<visibilityExceptions>
				<page>pageA</page>
				<page>pageB</page>
				<page>pageGone</page>
			</visibilityExceptions>
		</box>
	</import>`)

	assert.Equal(t, 2, summary.ExceptionRows)
	promo := f.box(t, "promo")
	pages, err := f.store.ListBoxPages(ctx, promo.BoxID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []storage.BoxPageRecord{
		{BoxID: promo.BoxID, PageID: pageA, Visible: false},
		{BoxID: promo.BoxID, PageID: pageB, Visible: false},
	}, pages)

	summary = f.run(t, `<import>
		<box identifier="promo">
			<name language="en">Promo</name>
			<boxType>system</boxType>
			<controller>PromoController</controller>
			<position>hero</position>
			<visibilityExceptions><page>pageB</page></visibilityExceptions>
		</box>
	</import>`)

	assert.Equal(t, 1, summary.ExceptionRows)
	pages, err = f.store.ListBoxPages(ctx, promo.BoxID)
	require.NoError(t, err)
	assert.Equal(t, []storage.BoxPageRecord{{BoxID: promo.BoxID, PageID: pageB, Visible: true}}, pages)
	assert.Equal(t, float64(3), testutil.ToFloat64(f.metrics.ExceptionRows))
}

func TestRunVisibilityExceptionsUseSkippedRowFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	page, err := f.store.PutPage(ctx, storage.PageRecord{Identifier: "pageA", PackageID: 1})
	require.NoError(t, err)
	f.seed(t, storage.BoxRecord{
		PackageID:         testPackageID,
		Identifier:        "edited",
		Name:              "Edited",
		BoxType:           "html",
		Position:          "top",
		ShowOrder:         1,
		VisibleEverywhere: false,
	})

	f.run(t, `<import>
		<box identifier="edited">
			<name language="en">Edited</name>
			<boxType>html</boxType>
			<position>top</position>
			<visibleEverywhere>1</visibleEverywhere>
			<content><title>T</title><content>C</content></content>
			<visibilityExceptions><page>pageA</page></visibilityExceptions>
		</box>
	</import>`)

	edited := f.box(t, "edited")
	pages, err := f.store.ListBoxPages(ctx, edited.BoxID)
	require.NoError(t, err)
	assert.Equal(t, []storage.BoxPageRecord{{BoxID: edited.BoxID, PageID: page, Visible: true}}, pages)
}

func TestRunValidationFailsBeforeWrites(t *testing.T) {
	tests := []struct {
		name string
		box  string
		code apperrors.Code
		msg  string
	}{
		{
			name: "unknown position",
			box:  `<box identifier="bad"><name language="en">Bad</name><boxType>html</boxType><position>nonexistent</position></box>`,
			code: apperrors.CodeBoxUnknownPosition,
			msg:  "Unknown box position 'nonexistent' for box 'bad'",
		},
		{
			name: "missing controller",
			box:  `<box identifier="bad"><name language="en">Bad</name><boxType>system</boxType><position>top</position></box>`,
			code: apperrors.CodeBoxMissingController,
			msg:  "Missing required element 'controller' for 'system'-type box 'bad'",
		},
		{
			name: "mixed content",
			box: `<box identifier="bad"><name language="en">Bad</name><boxType>tpl</boxType><position>top</position>
				<content><title>A</title><content>A</content></content>
				<content language="en"><title>B</title><content>B</content></content></box>`,
			code: apperrors.CodeBoxMixedContent,
			msg:  "Cannot mix 'content' elements with and without 'language' attribute for box 'bad'",
		},
		{
			name: "unknown type",
			box:  `<box identifier="bad"><name language="en">Bad</name><boxType>widget</boxType><position>top</position></box>`,
			code: apperrors.CodeBoxUnknownType,
			msg:  "Unknown type 'widget' for box 'bad'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			doc := parseDoc(t, "<import>"+htmlBox("good", "top")+tt.box+`</import><delete><box identifier="x"/></delete>`)
			f.seed(t, storage.BoxRecord{PackageID: testPackageID, Identifier: "x", Name: "X", BoxType: "html", Position: "top", ShowOrder: 1})

			_, err := f.engine.Run(context.Background(), doc)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.msg, err.Error())

			boxes, err := f.store.ListBoxes(context.Background(), testPackageID)
			require.NoError(t, err)
			require.Len(t, boxes, 1)
			assert.Equal(t, "x", boxes[0].Identifier)
		})
	}
}

func TestRunLogsRunID(t *testing.T) {
	f := newFixture(t)
	summary := f.run(t, "<import>"+htmlBox("a", "top")+"</import>")

	finished := f.logs.FilterMessage("box install finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.Equal(t, summary.RunID, fields["run_id"])
	assert.EqualValues(t, testPackageID, fields["package_id"])
	assert.EqualValues(t, 1, fields["inserted"])
}
