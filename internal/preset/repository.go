package preset

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tomgalvin.uk/imgarray/internal/bitmap"
)

//go:embed schema.sql
var schema string

type Repository struct {
	Db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and makes sure
// the schema exists. A sqlite3 database/sql driver must be registered.
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open database:\n%w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("Couldn't initialise database:\n%w", err)
	}
	return &Repository{Db: db}, nil
}

func (r *Repository) Close() error {
	return r.Db.Close()
}

const selectPreset = `
  SELECT id, uuid, name, created_at,
    threshold_red, threshold_green, threshold_blue, mode,
    invert, compact, flip_bits, print, auto_orient
  FROM preset`

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*Preset, error) {
	var p Preset
	var uuidString, mode string
	o := &p.Options
	if err := row.Scan(&p.Id, &uuidString, &p.Name, &p.CreatedAt,
		&o.Threshold.R, &o.Threshold.G, &o.Threshold.B, &mode,
		&o.Invert, &o.Compact, &o.FlipBits, &o.Print, &o.AutoOrient); err != nil {
		return nil, err
	}

	var err error
	if p.Uuid, err = uuid.Parse(uuidString); err != nil {
		return nil, fmt.Errorf("Preset %s has an invalid UUID:\n%w", p.Name, err)
	}
	if o.Mode, err = bitmap.ParseMode(mode); err != nil {
		return nil, fmt.Errorf("Preset %s has an invalid mode:\n%w", p.Name, err)
	}
	return &p, nil
}

// Get returns the named preset, or nil if there isn't one.
func (r *Repository) Get(name string) (*Preset, error) {
	row := r.Db.QueryRow(selectPreset+`
  WHERE name = ?`, name)

	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		} else {
			return nil, fmt.Errorf("Failed to read preset:\n%w", err)
		}
	}
	return p, nil
}

func (r *Repository) Exists(name string) (bool, error) {
	p, err := r.Get(name)
	if err != nil {
		return false, err
	}
	return (p != nil), nil
}

func (r *Repository) List() ([]Preset, error) {
	rows, err := r.Db.Query(selectPreset + `
  ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("Query execution failed:\n%w", err)
	}
	defer rows.Close()

	presets := []Preset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("Row scanning failed:\n%w", err)
		}
		presets = append(presets, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error iterating rows:\n%w", err)
	}

	return presets, nil
}

// Run operations in a transaction, committing afterward, or rolling back if the
// passed function returns an error
func (r *Repository) Transact(f func(*sql.Tx) error) error {
	tx, err := r.Db.Begin()
	if err != nil {
		return err
	}

	err = f(tx)
	if err != nil {
		err2 := tx.Rollback()
		if err2 != nil {
			return fmt.Errorf("Failed to roll back transaction: %w\n\nAfter handling: %v", err2, err)
		}
		return err
	} else {
		err2 := tx.Commit()
		if err2 != nil {
			return fmt.Errorf("Failed to commit transaction:\n%w", err2)
		}
		return nil
	}
}

func (r *Repository) Create(tx *sql.Tx, p *Preset) error {
	o := p.Options
	row := tx.QueryRow(`
    INSERT INTO preset(uuid, name, created_at,
      threshold_red, threshold_green, threshold_blue, mode,
      invert, compact, flip_bits, print, auto_orient)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    RETURNING id`, p.Uuid.String(), p.Name, p.CreatedAt,
		o.Threshold.R, o.Threshold.G, o.Threshold.B, o.Mode.String(),
		o.Invert, o.Compact, o.FlipBits, o.Print, o.AutoOrient)
	if err := row.Scan(&p.Id); err != nil {
		return fmt.Errorf("Failed to insert into preset:\n%w", err)
	}
	return nil
}

// Update overwrites the options of the preset with the same name, keeping its
// identity.
func (r *Repository) Update(tx *sql.Tx, p *Preset) error {
	o := p.Options
	row := tx.QueryRow(`
    UPDATE preset SET
      threshold_red = ?, threshold_green = ?, threshold_blue = ?, mode = ?,
      invert = ?, compact = ?, flip_bits = ?, print = ?, auto_orient = ?
    WHERE name = ?
    RETURNING id, uuid, created_at`,
		o.Threshold.R, o.Threshold.G, o.Threshold.B, o.Mode.String(),
		o.Invert, o.Compact, o.FlipBits, o.Print, o.AutoOrient, p.Name)

	var uuidString string
	if err := row.Scan(&p.Id, &uuidString, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("No preset named %s", p.Name)
		}
		return fmt.Errorf("Couldn't update preset:\n%w", err)
	}
	p.Uuid = uuid.MustParse(uuidString)
	return nil
}

// Save creates the preset or updates an existing one with the same name.
func (r *Repository) Save(p *Preset) error {
	return r.Transact(func(tx *sql.Tx) error {
		var id int
		err := tx.QueryRow(`SELECT id FROM preset WHERE name = ?`, p.Name).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return r.Create(tx, p)
		case err != nil:
			return fmt.Errorf("Failed to read preset:\n%w", err)
		default:
			return r.Update(tx, p)
		}
	})
}

// Delete removes the named preset and reports whether it existed.
func (r *Repository) Delete(tx *sql.Tx, name string) (bool, error) {
	res, err := tx.Exec(`DELETE FROM preset WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("Couldn't delete preset:\n%w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Couldn't delete preset:\n%w", err)
	}
	return n > 0, nil
}
