package sqlstore

import (
	"context"
	"fmt"

	"github.com/louisbranch/boxsync/internal/services/box/storage"
)

// ListBoxes returns a package's boxes ordered by position and show order.
func (s *Store) ListBoxes(ctx context.Context, packageID int64) ([]storage.BoxRecord, error) {
	return s.reader().queryBoxes(ctx,
		`SELECT `+boxColumns+` FROM box WHERE package_id = ? ORDER BY position, show_order, box_id`, packageID)
}

// ListBoxContent returns the localized content rows of a box ordered by locale.
func (s *Store) ListBoxContent(ctx context.Context, boxID int64) ([]storage.ContentRecord, error) {
	r := s.reader()
	rows, err := r.q.QueryContext(ctx, r.rebind(`SELECT locale, title, content FROM box_content WHERE box_id = ? ORDER BY locale`), boxID)
	if err != nil {
		return nil, fmt.Errorf("list box content %d: %w", boxID, err)
	}
	defer rows.Close()

	var out []storage.ContentRecord
	for rows.Next() {
		var row storage.ContentRecord
		if err := rows.Scan(&row.Locale, &row.Title, &row.Content); err != nil {
			return nil, fmt.Errorf("scan box content: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListBoxNames returns the localized names of a box ordered by locale.
func (s *Store) ListBoxNames(ctx context.Context, boxID int64) ([]storage.NameRecord, error) {
	r := s.reader()
	rows, err := r.q.QueryContext(ctx, r.rebind(`SELECT locale, name FROM box_name WHERE box_id = ? ORDER BY locale`), boxID)
	if err != nil {
		return nil, fmt.Errorf("list box names %d: %w", boxID, err)
	}
	defer rows.Close()

	var out []storage.NameRecord
	for rows.Next() {
		var row storage.NameRecord
		if err := rows.Scan(&row.Locale, &row.Name); err != nil {
			return nil, fmt.Errorf("scan box name: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListBoxPages returns the visibility rows of a box ordered by page id.
func (s *Store) ListBoxPages(ctx context.Context, boxID int64) ([]storage.BoxPageRecord, error) {
	r := s.reader()
	rows, err := r.q.QueryContext(ctx, r.rebind(`SELECT box_id, page_id, visible FROM box_to_page WHERE box_id = ? ORDER BY page_id`), boxID)
	if err != nil {
		return nil, fmt.Errorf("list box pages %d: %w", boxID, err)
	}
	defer rows.Close()

	var out []storage.BoxPageRecord
	for rows.Next() {
		var row storage.BoxPageRecord
		if err := rows.Scan(&row.BoxID, &row.PageID, &row.Visible); err != nil {
			return nil, fmt.Errorf("scan box page: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PutPage inserts or re-owns a page by identifier and returns its id.
func (s *Store) PutPage(ctx context.Context, page storage.PageRecord) (int64, error) {
	r := s.reader()
	var pageID int64
	row := r.q.QueryRowContext(ctx, r.rebind(`
		INSERT INTO page (identifier, package_id) VALUES (?, ?)
		ON CONFLICT (identifier) DO UPDATE SET package_id = excluded.package_id
		RETURNING page_id`),
		page.Identifier, page.PackageID)
	if err := row.Scan(&pageID); err != nil {
		return 0, fmt.Errorf("put page %s: %w", page.Identifier, err)
	}
	return pageID, nil
}
