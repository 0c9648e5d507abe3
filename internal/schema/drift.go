package schema

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// TableDrift lists how a live table differs from its model.
type TableDrift struct {
	Table          string
	Missing        bool
	MissingColumns []string
	ExtraColumns   []string
}

func (d TableDrift) IsEmpty() bool {
	return !d.Missing && len(d.MissingColumns) == 0 && len(d.ExtraColumns) == 0
}

// Drift compares the given tables with what the database currently holds.
// Column names are compared case-insensitively. Only tables with
// differences are returned.
func Drift(db *gorm.DB, tables []*Table) ([]TableDrift, error) {
	m := db.Migrator()

	var drifts []TableDrift
	for _, table := range tables {
		name := table.TableName()
		if !m.HasTable(name) {
			drifts = append(drifts, TableDrift{Table: name, Missing: true})
			continue
		}

		types, err := m.ColumnTypes(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
		}

		current := make(map[string]bool, len(types))
		for _, t := range types {
			current[strings.ToLower(t.Name())] = true
		}

		d := TableDrift{Table: name}
		target := make(map[string]bool, len(table.Columns))
		for _, column := range table.Columns {
			key := strings.ToLower(column.ColumnName())
			target[key] = true
			if !current[key] {
				d.MissingColumns = append(d.MissingColumns, column.ColumnName())
			}
		}
		for key := range current {
			if !target[key] {
				d.ExtraColumns = append(d.ExtraColumns, key)
			}
		}
		sort.Strings(d.ExtraColumns)

		if !d.IsEmpty() {
			drifts = append(drifts, d)
		}
	}
	return drifts, nil
}
