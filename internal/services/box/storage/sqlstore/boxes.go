package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/boxsync/internal/platform/storage/sqlmigrate"
	"github.com/louisbranch/boxsync/internal/services/box/storage"
)

const boxColumns = `box_id, package_id, identifier, name, box_type, position, show_order,
	visible_everywhere, is_multilingual, css_class_name, show_header, origin_is_system, controller`

// txStore implements storage.Tx over either a transaction or the raw pool.
type txStore struct {
	q       Querier
	dialect Dialect
}

func (t *txStore) rebind(query string) string {
	return sqlmigrate.Rebind(t.dialect.Placeholder, query)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBox(row rowScanner) (storage.BoxRecord, error) {
	var box storage.BoxRecord
	err := row.Scan(
		&box.BoxID,
		&box.PackageID,
		&box.Identifier,
		&box.Name,
		&box.BoxType,
		&box.Position,
		&box.ShowOrder,
		&box.VisibleEverywhere,
		&box.IsMultilingual,
		&box.CSSClassName,
		&box.ShowHeader,
		&box.OriginIsSystem,
		&box.Controller,
	)
	return box, err
}

func (t *txStore) FindBox(ctx context.Context, identifier string, packageID int64) (storage.BoxRecord, error) {
	row := t.q.QueryRowContext(ctx, t.rebind(`SELECT `+boxColumns+` FROM box WHERE identifier = ? AND package_id = ?`),
		identifier, packageID)
	box, err := scanBox(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.BoxRecord{}, storage.ErrNotFound
		}
		return storage.BoxRecord{}, fmt.Errorf("find box %s: %w", identifier, err)
	}
	return box, nil
}

func (t *txStore) NextShowOrder(ctx context.Context, position string) (int, error) {
	if t.dialect.LockPosition != nil {
		if err := t.dialect.LockPosition(ctx, t.q, position); err != nil {
			return 0, fmt.Errorf("lock position %s: %w", position, err)
		}
	}
	var current sql.NullInt64
	row := t.q.QueryRowContext(ctx, t.rebind(`SELECT MAX(show_order) FROM box WHERE position = ?`), position)
	if err := row.Scan(&current); err != nil {
		return 0, fmt.Errorf("max show order for %s: %w", position, err)
	}
	if !current.Valid || current.Int64 == 0 {
		return 1, nil
	}
	return int(current.Int64) + 1, nil
}

func (t *txStore) InsertBox(ctx context.Context, box storage.BoxRecord) (int64, error) {
	var boxID int64
	row := t.q.QueryRowContext(ctx, t.rebind(`
		INSERT INTO box (
			package_id, identifier, name, box_type, position, show_order,
			visible_everywhere, is_multilingual, css_class_name, show_header,
			origin_is_system, controller
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING box_id`),
		box.PackageID,
		box.Identifier,
		box.Name,
		box.BoxType,
		box.Position,
		box.ShowOrder,
		box.VisibleEverywhere,
		box.IsMultilingual,
		box.CSSClassName,
		box.ShowHeader,
		box.OriginIsSystem,
		box.Controller,
	)
	if err := row.Scan(&boxID); err != nil {
		return 0, fmt.Errorf("insert box %s: %w", box.Identifier, err)
	}
	return boxID, nil
}

func (t *txStore) UpdateBox(ctx context.Context, box storage.BoxRecord) error {
	result, err := t.q.ExecContext(ctx, t.rebind(`
		UPDATE box SET
			package_id = ?, identifier = ?, name = ?, box_type = ?, position = ?,
			show_order = ?, visible_everywhere = ?, is_multilingual = ?,
			css_class_name = ?, show_header = ?, origin_is_system = ?, controller = ?
		WHERE box_id = ?`),
		box.PackageID,
		box.Identifier,
		box.Name,
		box.BoxType,
		box.Position,
		box.ShowOrder,
		box.VisibleEverywhere,
		box.IsMultilingual,
		box.CSSClassName,
		box.ShowHeader,
		box.OriginIsSystem,
		box.Controller,
		box.BoxID,
	)
	if err != nil {
		return fmt.Errorf("update box %s: %w", box.Identifier, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update box %s: %w", box.Identifier, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (t *txStore) ReplaceBoxContent(ctx context.Context, boxID int64, content []storage.ContentRecord) error {
	if _, err := t.q.ExecContext(ctx, t.rebind(`DELETE FROM box_content WHERE box_id = ?`), boxID); err != nil {
		return fmt.Errorf("clear box content %d: %w", boxID, err)
	}
	insert := t.rebind(`INSERT INTO box_content (box_id, locale, title, content) VALUES (?, ?, ?, ?)`)
	for _, row := range content {
		if _, err := t.q.ExecContext(ctx, insert, boxID, row.Locale, row.Title, row.Content); err != nil {
			return fmt.Errorf("insert box content %d/%s: %w", boxID, row.Locale, err)
		}
	}
	return nil
}

func (t *txStore) ReplaceBoxNames(ctx context.Context, boxID int64, names []storage.NameRecord) error {
	if _, err := t.q.ExecContext(ctx, t.rebind(`DELETE FROM box_name WHERE box_id = ?`), boxID); err != nil {
		return fmt.Errorf("clear box names %d: %w", boxID, err)
	}
	insert := t.rebind(`INSERT INTO box_name (box_id, locale, name) VALUES (?, ?, ?)`)
	for _, row := range names {
		if _, err := t.q.ExecContext(ctx, insert, boxID, row.Locale, row.Name); err != nil {
			return fmt.Errorf("insert box name %d/%s: %w", boxID, row.Locale, err)
		}
	}
	return nil
}

func (t *txStore) DeleteBox(ctx context.Context, identifier string, packageID int64) (int64, error) {
	result, err := t.q.ExecContext(ctx, t.rebind(`DELETE FROM box WHERE identifier = ? AND package_id = ?`),
		identifier, packageID)
	if err != nil {
		return 0, fmt.Errorf("delete box %s: %w", identifier, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete box %s: %w", identifier, err)
	}
	return affected, nil
}

func (t *txStore) ListBoxesByIdentifiers(ctx context.Context, packageID int64, identifiers []string) ([]storage.BoxRecord, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}
	predicate, args := t.dialect.In("identifier", identifiers)
	args = append(args, packageID)
	query := `SELECT ` + boxColumns + ` FROM box WHERE ` + predicate + ` AND package_id = ? ORDER BY identifier`
	return t.queryBoxes(ctx, query, args...)
}

func (t *txStore) queryBoxes(ctx context.Context, query string, args ...any) ([]storage.BoxRecord, error) {
	rows, err := t.q.QueryContext(ctx, t.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query boxes: %w", err)
	}
	defer rows.Close()

	var boxes []storage.BoxRecord
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, fmt.Errorf("scan box: %w", err)
		}
		boxes = append(boxes, box)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read boxes: %w", err)
	}
	return boxes, nil
}

func (t *txStore) DeleteBoxPages(ctx context.Context, boxID int64) error {
	if _, err := t.q.ExecContext(ctx, t.rebind(`DELETE FROM box_to_page WHERE box_id = ?`), boxID); err != nil {
		return fmt.Errorf("delete box pages %d: %w", boxID, err)
	}
	return nil
}

func (t *txStore) ResolvePageIDs(ctx context.Context, identifiers []string) ([]int64, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}
	predicate, args := t.dialect.In("identifier", identifiers)
	rows, err := t.q.QueryContext(ctx, t.rebind(`SELECT page_id FROM page WHERE `+predicate+` ORDER BY page_id`), args...)
	if err != nil {
		return nil, fmt.Errorf("resolve pages: %w", err)
	}
	defer rows.Close()

	var pageIDs []int64
	for rows.Next() {
		var pageID int64
		if err := rows.Scan(&pageID); err != nil {
			return nil, fmt.Errorf("scan page id: %w", err)
		}
		pageIDs = append(pageIDs, pageID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read page ids: %w", err)
	}
	return pageIDs, nil
}

func (t *txStore) InsertBoxPage(ctx context.Context, row storage.BoxPageRecord) error {
	_, err := t.q.ExecContext(ctx, t.rebind(`
		INSERT INTO box_to_page (box_id, page_id, visible) VALUES (?, ?, ?)
		ON CONFLICT (box_id, page_id) DO NOTHING`),
		row.BoxID, row.PageID, row.Visible)
	if err != nil {
		return fmt.Errorf("insert box page %d/%d: %w", row.BoxID, row.PageID, err)
	}
	return nil
}
