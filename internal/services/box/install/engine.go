// Package install reconciles parsed box manifests into the box store.
//
// A run validates every imported item before touching the database, applies
// the delete section in one transaction, imports each box in its own
// transaction, and finally rewrites the box-to-page visibility rows staged
// during validation.
package install

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/boxsync/internal/platform/i18n"
	"github.com/louisbranch/boxsync/internal/platform/logger"
	"github.com/louisbranch/boxsync/internal/services/box/domain"
	"github.com/louisbranch/boxsync/internal/services/box/manifest"
	"github.com/louisbranch/boxsync/internal/services/box/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/boxsync/internal/services/box/install"

// Config identifies the package whose boxes are installed.
type Config struct {
	PackageID int64
}

// Engine implements Plugin against a storage.Store.
type Engine struct {
	cfg       Config
	store     storage.Store
	localizer i18n.Localizer
	log       *logger.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

var _ Plugin = (*Engine)(nil)

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the run logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithMetrics records run outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// New builds an engine for one package.
func New(cfg Config, store storage.Store, localizer i18n.Localizer, opts ...Option) (*Engine, error) {
	if cfg.PackageID <= 0 {
		return nil, fmt.Errorf("package id must be positive, got %d", cfg.PackageID)
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	e := &Engine{
		cfg:       cfg,
		store:     store,
		localizer: localizer,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	return e, nil
}

// ItemResult is the persisted state of one imported box.
type ItemResult struct {
	Identifier string
	BoxID      int64
	ShowOrder  int
	Outcome    Outcome
}

// Summary reports what a run changed.
type Summary struct {
	RunID         string
	Items         []ItemResult
	Deleted       int64
	ExceptionRows int
}

// Count returns how many items ended with outcome.
func (s Summary) Count(outcome Outcome) int {
	n := 0
	for _, item := range s.Items {
		if item.Outcome == outcome {
			n++
		}
	}
	return n
}

// Run installs doc. Validation errors abort the run before any write; a
// storage error aborts the current transaction and is returned as is.
func (e *Engine) Run(ctx context.Context, doc manifest.Document) (summary Summary, err error) {
	start := time.Now()
	summary.RunID = uuid.NewString()
	log := e.log.With("run_id", summary.RunID, "package_id", e.cfg.PackageID)

	ctx, span := e.tracer.Start(ctx, "box.install.run", trace.WithAttributes(
		attribute.String("boxsync.run_id", summary.RunID),
		attribute.Int64("boxsync.package_id", e.cfg.PackageID),
		attribute.Int("boxsync.import_items", len(doc.Import)),
		attribute.Int("boxsync.delete_items", len(doc.Delete)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error("box install failed", "error", err)
		}
		e.metrics.observeRun(start, err)
		span.End()
	}()

	var acc Exceptions
	boxes := make([]domain.Box, 0, len(doc.Import))
	for _, item := range doc.Import {
		box, err := e.Prepare(item, &acc)
		if err != nil {
			return summary, err
		}
		boxes = append(boxes, box)
	}

	if len(doc.Delete) > 0 {
		deleted, err := e.deleteItems(ctx, doc.Delete)
		if err != nil {
			return summary, err
		}
		summary.Deleted = deleted
		log.Info("boxes deleted", "requested", len(doc.Delete), "deleted", deleted)
	}

	for _, box := range boxes {
		result, err := e.importOne(ctx, box)
		if err != nil {
			return summary, err
		}
		summary.Items = append(summary.Items, result)
		e.metrics.observeItem(result.Outcome)
		log.Debug("box imported",
			"identifier", result.Identifier,
			"box_id", result.BoxID,
			"show_order", result.ShowOrder,
			"outcome", string(result.Outcome),
		)
	}

	if acc.Len() > 0 {
		err := e.store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
			counted := &countingTx{Tx: tx}
			err := e.PostImport(ctx, counted, acc)
			summary.ExceptionRows = counted.pageRows
			return err
		})
		if err != nil {
			return summary, err
		}
		e.metrics.observeExceptionRows(summary.ExceptionRows)
	}

	log.Info("box install finished",
		"inserted", summary.Count(OutcomeInserted),
		"updated", summary.Count(OutcomeUpdated),
		"skipped", summary.Count(OutcomeSkipped),
		"deleted", summary.Deleted,
		"visibility_rows", summary.ExceptionRows,
	)
	return summary, nil
}

func (e *Engine) importOne(ctx context.Context, box domain.Box) (ItemResult, error) {
	ctx, span := e.tracer.Start(ctx, "box.install.import", trace.WithAttributes(
		attribute.String("boxsync.box", box.Identifier),
	))
	defer span.End()

	var result ItemResult
	err := e.store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		existing, found, err := e.FindExisting(ctx, tx, box)
		if err != nil {
			return err
		}
		var current *storage.BoxRecord
		if found {
			current = &existing
		}
		record, outcome, err := e.Import(ctx, tx, current, box)
		if err != nil {
			return err
		}
		result = ItemResult{
			Identifier: record.Identifier,
			BoxID:      record.BoxID,
			ShowOrder:  record.ShowOrder,
			Outcome:    outcome,
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ItemResult{}, err
	}
	span.SetAttributes(attribute.String("boxsync.outcome", string(result.Outcome)))
	return result, nil
}

// Prepare implements Plugin.
func (e *Engine) Prepare(item manifest.Item, acc *Exceptions) (domain.Box, error) {
	box, err := domain.Normalize(item, e.localizer)
	if err != nil {
		return domain.Box{}, err
	}
	if acc != nil {
		acc.Stage(box.Identifier, box.VisibilityExceptions)
	}
	return box, nil
}

// FindExisting implements Plugin.
func (e *Engine) FindExisting(ctx context.Context, tx storage.Tx, box domain.Box) (storage.BoxRecord, bool, error) {
	record, err := tx.FindBox(ctx, box.Identifier, e.cfg.PackageID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.BoxRecord{}, false, nil
		}
		return storage.BoxRecord{}, false, err
	}
	return record, true, nil
}

// Import implements Plugin. Existing rows are only overwritten when they are
// system boxes; any other type may carry end-user edits and is returned
// unchanged.
func (e *Engine) Import(ctx context.Context, tx storage.Tx, existing *storage.BoxRecord, box domain.Box) (storage.BoxRecord, Outcome, error) {
	if existing != nil && domain.Type(existing.BoxType) != domain.TypeSystem {
		return *existing, OutcomeSkipped, nil
	}

	showOrder, err := tx.NextShowOrder(ctx, string(box.Position))
	if err != nil {
		return storage.BoxRecord{}, "", err
	}
	box.ShowOrder = showOrder
	record := toRecord(box, e.cfg.PackageID)

	outcome := OutcomeInserted
	if existing == nil {
		boxID, err := tx.InsertBox(ctx, record)
		if err != nil {
			return storage.BoxRecord{}, "", err
		}
		record.BoxID = boxID
	} else {
		outcome = OutcomeUpdated
		record.BoxID = existing.BoxID
		if err := tx.UpdateBox(ctx, record); err != nil {
			return storage.BoxRecord{}, "", err
		}
	}

	if err := tx.ReplaceBoxNames(ctx, record.BoxID, nameRecords(box)); err != nil {
		return storage.BoxRecord{}, "", err
	}
	if err := tx.ReplaceBoxContent(ctx, record.BoxID, contentRecords(box)); err != nil {
		return storage.BoxRecord{}, "", err
	}
	return record, outcome, nil
}

// countingTx counts the visibility rows written through it.
type countingTx struct {
	storage.Tx
	pageRows int
}

func (t *countingTx) InsertBoxPage(ctx context.Context, row storage.BoxPageRecord) error {
	if err := t.Tx.InsertBoxPage(ctx, row); err != nil {
		return err
	}
	t.pageRows++
	return nil
}

// PostImport implements Plugin.
func (e *Engine) PostImport(ctx context.Context, tx storage.Tx, acc Exceptions) error {
	if acc.Len() == 0 {
		return nil
	}
	identifiers := acc.Identifiers()
	boxes, err := tx.ListBoxesByIdentifiers(ctx, e.cfg.PackageID, identifiers)
	if err != nil {
		return err
	}
	byIdentifier := make(map[string]storage.BoxRecord, len(boxes))
	for _, box := range boxes {
		byIdentifier[box.Identifier] = box
	}

	for _, identifier := range identifiers {
		box, ok := byIdentifier[identifier]
		if !ok {
			e.log.Warn("visibility exceptions for unknown box", "identifier", identifier)
			continue
		}
		if err := tx.DeleteBoxPages(ctx, box.BoxID); err != nil {
			return err
		}
		pages := acc.Pages(identifier)
		pageIDs, err := tx.ResolvePageIDs(ctx, pages)
		if err != nil {
			return err
		}
		if len(pageIDs) < len(pages) {
			e.log.Debug("unresolved visibility exception pages",
				"identifier", identifier, "requested", len(pages), "resolved", len(pageIDs))
		}
		for _, pageID := range pageIDs {
			row := storage.BoxPageRecord{BoxID: box.BoxID, PageID: pageID, Visible: !box.VisibleEverywhere}
			if err := tx.InsertBoxPage(ctx, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// HandleDelete implements Plugin.
func (e *Engine) HandleDelete(ctx context.Context, items []manifest.Item) error {
	_, err := e.deleteItems(ctx, items)
	return err
}

func (e *Engine) deleteItems(ctx context.Context, items []manifest.Item) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	ctx, span := e.tracer.Start(ctx, "box.install.delete", trace.WithAttributes(
		attribute.Int("boxsync.delete_items", len(items)),
	))
	defer span.End()

	var deleted int64
	err := e.store.RunInTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		deleted = 0
		for _, item := range items {
			n, err := tx.DeleteBox(ctx, item.Identifier, e.cfg.PackageID)
			if err != nil {
				return err
			}
			deleted += n
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	e.metrics.observeDeleted(deleted)
	return deleted, nil
}
