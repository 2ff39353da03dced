package dataset

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSnapshot loads a dataset from a SQLite snapshot file. Snapshots
// carry one table per regulatory table plus a single-row meta table,
// and are opened strictly read-only: this tool never persists anything.
func OpenSnapshot(path string) (*Dataset, error) {
	// sql.Open with mode=ro happily defers a missing file error until
	// the first query; check up front for a usable message.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	var d Dataset
	if err := readMeta(db, &d.Meta); err != nil {
		return nil, err
	}
	if err := readOccupantLoadFactors(db, &d); err != nil {
		return nil, err
	}
	if err := readMinExitRules(db, &d); err != nil {
		return nil, err
	}
	if err := readTravelDistances(db, &d); err != nil {
		return nil, err
	}
	if err := readDeadEndLimits(db, &d); err != nil {
		return nil, err
	}
	if err := readMinWidths(db, &d); err != nil {
		return nil, err
	}
	if err := readFunctionalClasses(db, &d); err != nil {
		return nil, err
	}
	if err := readHeightCategories(db, &d); err != nil {
		return nil, err
	}

	d.normalize()
	return &d, nil
}

func readMeta(db *sql.DB, m *Meta) error {
	row := db.QueryRow(`SELECT ordinance_id, version FROM meta LIMIT 1`)
	if err := row.Scan(&m.OrdinanceID, &m.Version); err != nil {
		return fmt.Errorf("snapshot meta: %w", err)
	}
	return nil
}

func readOccupantLoadFactors(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`
		SELECT functional_class, description, area_per_person, legal_ref
		FROM occupant_load_factors ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("snapshot occupant_load_factors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r OccupantLoadFactor
		if err := rows.Scan(&r.FunctionalClass, &r.Description, &r.AreaPerPerson, &r.LegalRef); err != nil {
			return fmt.Errorf("snapshot occupant_load_factors: %w", err)
		}
		d.OccupantLoadFactors = append(d.OccupantLoadFactors, r)
	}
	return rows.Err()
}

func readMinExitRules(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`
		SELECT class_group, fire_hazard_category, underground,
		       min_occupants, max_occupants, max_area, required_exits, legal_ref
		FROM min_exit_rules ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("snapshot min_exit_rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r MinExitRule
		var category sql.NullString
		var underground sql.NullBool
		var maxOcc sql.NullInt64
		var maxArea sql.NullFloat64
		if err := rows.Scan(&r.ClassGroup, &category, &underground,
			&r.MinOccupants, &maxOcc, &maxArea, &r.RequiredExits, &r.LegalRef); err != nil {
			return fmt.Errorf("snapshot min_exit_rules: %w", err)
		}
		r.FireHazardCategory = category.String
		if underground.Valid {
			v := underground.Bool
			r.Underground = &v
		}
		if maxOcc.Valid {
			v := int(maxOcc.Int64)
			r.MaxOccupants = &v
		}
		if maxArea.Valid {
			v := maxArea.Float64
			r.MaxArea = &v
		}
		d.MinExitRules = append(d.MinExitRules, r)
	}
	return rows.Err()
}

func readTravelDistances(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`
		SELECT evacuation_type, context, fire_hazard_category, conditions,
		       max_distance, legal_ref
		FROM travel_distances ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("snapshot travel_distances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r TravelDistanceRule
		var evac, ctx, category, cond sql.NullString
		if err := rows.Scan(&evac, &ctx, &category, &cond, &r.MaxDistance, &r.LegalRef); err != nil {
			return fmt.Errorf("snapshot travel_distances: %w", err)
		}
		r.EvacuationType = evac.String
		r.Context = ctx.String
		r.FireHazardCategory = category.String
		r.Conditions = cond.String
		d.TravelDistances = append(d.TravelDistances, r)
	}
	return rows.Err()
}

func readDeadEndLimits(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`
		SELECT context, max_length, legal_ref FROM dead_end_limits ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("snapshot dead_end_limits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r DeadEndLimit
		if err := rows.Scan(&r.Context, &r.MaxLength, &r.LegalRef); err != nil {
			return fmt.Errorf("snapshot dead_end_limits: %w", err)
		}
		d.DeadEndLimits = append(d.DeadEndLimits, r)
	}
	return rows.Err()
}

func readMinWidths(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`
		SELECT element_type, context, min_width, max_width, legal_ref
		FROM min_widths ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("snapshot min_widths: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r MinWidthRule
		var ctx sql.NullString
		var minW, maxW sql.NullFloat64
		if err := rows.Scan(&r.ElementType, &ctx, &minW, &maxW, &r.LegalRef); err != nil {
			return fmt.Errorf("snapshot min_widths: %w", err)
		}
		r.Context = ctx.String
		if minW.Valid {
			v := minW.Float64
			r.MinWidth = &v
		}
		if maxW.Valid {
			v := maxW.Float64
			r.MaxWidth = &v
		}
		d.MinWidths = append(d.MinWidths, r)
	}
	return rows.Err()
}

func readFunctionalClasses(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`SELECT code, name FROM functional_classes ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("snapshot functional_classes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r FunctionalClass
		if err := rows.Scan(&r.Code, &r.Name); err != nil {
			return fmt.Errorf("snapshot functional_classes: %w", err)
		}
		d.FunctionalClasses = append(d.FunctionalClasses, r)
	}
	return rows.Err()
}

func readHeightCategories(db *sql.DB, d *Dataset) error {
	rows, err := db.Query(`
		SELECT category, min, max FROM height_categories ORDER BY min`)
	if err != nil {
		return fmt.Errorf("snapshot height_categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r HeightCategoryBound
		var max sql.NullFloat64
		if err := rows.Scan(&r.Category, &r.Min, &max); err != nil {
			return fmt.Errorf("snapshot height_categories: %w", err)
		}
		if max.Valid {
			v := max.Float64
			r.Max = &v
		}
		d.HeightCategories = append(d.HeightCategories, r)
	}
	return rows.Err()
}
