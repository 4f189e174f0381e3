// Package catalog reads the recommendation catalog: the base eventos
// table, the per-provider detail tables and the sayings collection. The
// catalog is read-only for the bot; scraping and imports populate it
// elsewhere.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sandevgo/caliando/internal/core"
)

// DB is satisfied by *pgxpool.Pool and *pgx.Conn.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repo struct {
	db DB
}

func NewRepo(db DB) *Repo {
	return &Repo{db: db}
}

// A source tag from the search backend may be a bare table name or the
// URL the item was scraped from. SourceTable folds both onto the detail
// table that holds the item's extras; "" means the item has no extras
// beyond the base record.
func SourceTable(sourceKind string) string {
	s := strings.ToLower(sourceKind)
	switch {
	case strings.Contains(s, "civitatis"):
		return "civitatis"
	case strings.Contains(s, "visitcali.travel"), strings.Contains(s, "museos"):
		return "museos"
	case strings.Contains(s, "imperdibles"):
		return "imperdibles"
	case s == "sheets_detalles":
		return "sheets_detalles"
	}
	return ""
}

// detailQuery loads one provider's extra columns into the detail.
// Having the per-provider shape in one table here keeps raw source
// strings out of the dispatcher handlers.
type detailQuery struct {
	sql  string
	scan func(row pgx.Row, d *core.Detail) error
}

var detailQueries = map[string]detailQuery{
	"civitatis": {
		sql: `SELECT COALESCE(precio, ''), COALESCE(fuente, '') FROM civitatis WHERE evento_id = $1`,
		scan: func(row pgx.Row, d *core.Detail) error {
			return row.Scan(&d.Price, &d.Link)
		},
	},
	"museos": {
		sql: `SELECT COALESCE(link, '') FROM museos WHERE evento_id = $1`,
		scan: func(row pgx.Row, d *core.Detail) error {
			return row.Scan(&d.Link)
		},
	},
	"imperdibles": {
		sql: `SELECT COALESCE(link, '') FROM imperdibles WHERE evento_id = $1`,
		scan: func(row pgx.Row, d *core.Detail) error {
			return row.Scan(&d.Link)
		},
	},
	"sheets_detalles": {
		sql: `SELECT COALESCE(tipo_de_lugar, ''), COALESCE(redes_sociales, ''),
		             COALESCE(pagina_web, ''), COALESCE(zona, ''), COALESCE(ingreso_permitido, '')
		        FROM sheets_detalles WHERE evento_id = $1`,
		scan: func(row pgx.Row, d *core.Detail) error {
			return row.Scan(&d.Category, &d.SocialLinks, &d.Website, &d.Zone, &d.AccessPolicy)
		},
	},
}

// Detail loads the full record for a candidate: the base name and
// description, plus whatever extras the item's provider table carries.
// Returns nil when the base record does not exist.
func (r *Repo) Detail(ctx context.Context, sourceKind string, referenceID int64) (*core.Detail, error) {
	d := &core.Detail{}
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(nombre, ''), COALESCE(descripcion, '') FROM eventos WHERE id = $1`,
		referenceID,
	).Scan(&d.Name, &d.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: base record %d: %w", referenceID, err)
	}

	q, ok := detailQueries[SourceTable(sourceKind)]
	if !ok {
		return d, nil
	}
	err = q.scan(r.db.QueryRow(ctx, q.sql, referenceID), d)
	if errors.Is(err, pgx.ErrNoRows) {
		// Base record without extras is still a valid detail.
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: %s extras for %d: %w", SourceTable(sourceKind), referenceID, err)
	}
	return d, nil
}

// Price fetches just the comparable price string for a civitatis item.
// Returns "" when the item has no stored price.
func (r *Repo) Price(ctx context.Context, referenceID int64) (string, error) {
	var price string
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(precio, '') FROM civitatis WHERE evento_id = $1`,
		referenceID,
	).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("catalog: price for %d: %w", referenceID, err)
	}
	return price, nil
}
