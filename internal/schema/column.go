package schema

import (
	"fmt"

	GORMSchema "gorm.io/gorm/schema"
)

// Column represents a gorm field
type Column struct {
	*GORMSchema.Field
}

// Type prefers an explicit type tag over the inferred data type.
func (c *Column) Type() string {
	if t, ok := c.TagSettings["TYPE"]; ok {
		return t
	}
	if c.Size > 0 && c.DataType == GORMSchema.String {
		return fmt.Sprintf("string(%d)", c.Size)
	}
	return string(c.DataType)
}

func (c *Column) ColumnName() string {
	return c.DBName
}

func (c *Column) Nullable() bool {
	return !c.NotNull && !c.PrimaryKey
}
