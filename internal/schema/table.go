package schema

import (
	"fmt"
	"sort"
	"sync"

	GORMSchema "gorm.io/gorm/schema"
)

// Table is the parsed layout of a gorm model.
type Table struct {
	*GORMSchema.Schema
	Columns []*Column
}

func (t *Table) TableName() string {
	return t.Table
}

func (t *Table) TableColumns() []*Column {
	return t.Columns
}

// CreateTableFromModel parses a model into its table layout. Relation
// fields without a column are skipped.
func CreateTableFromModel(model interface{}) (*Table, error) {
	modelSchema, err := GORMSchema.Parse(model, &sync.Map{}, GORMSchema.NamingStrategy{})
	if err != nil {
		return nil, err
	}

	columns := make([]*Column, 0, len(modelSchema.DBNames))
	for _, field := range modelSchema.Fields {
		if field.DBName == "" {
			continue
		}
		columns = append(columns, &Column{Field: field})
	}

	return &Table{Schema: modelSchema, Columns: columns}, nil
}

// TablesFromRegistry parses every registered model, sorted by table name.
func TablesFromRegistry(models map[string]interface{}) ([]*Table, error) {
	tables := make([]*Table, 0, len(models))
	for name, model := range models {
		table, err := CreateTableFromModel(model)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %s: %w", name, err)
		}
		tables = append(tables, table)
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].TableName() < tables[j].TableName()
	})
	return tables, nil
}
