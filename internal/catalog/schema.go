package catalog

// Field type names used in table schemas.
const (
	TypeInt    = "int"
	TypeString = "string"
	TypeDate   = "date"
)

// FieldInfo describes a single column: its type and nullability.
type FieldInfo struct {
	fieldType string
	nullable  bool
}

// Type returns the field's type name.
func (f FieldInfo) Type() string {
	return f.fieldType
}

// Nullable returns true if the field admits NULL.
func (f FieldInfo) Nullable() bool {
	return f.nullable
}

// Schema is the ordered set of columns of a table.
type Schema struct {
	fields    []string
	fieldInfo map[string]FieldInfo
}

// NewSchema creates a new empty schema.
func NewSchema() *Schema {
	return &Schema{
		fields:    make([]string, 0),
		fieldInfo: make(map[string]FieldInfo),
	}
}

// AddField adds a column with an explicit type and nullability.
func (s *Schema) AddField(name string, fieldType string, nullable bool) {
	if _, exists := s.fieldInfo[name]; !exists {
		s.fields = append(s.fields, name)
	}
	s.fieldInfo[name] = FieldInfo{
		fieldType: fieldType,
		nullable:  nullable,
	}
}

// AddIntField adds a non-nullable integer column.
func (s *Schema) AddIntField(name string) {
	s.AddField(name, TypeInt, false)
}

// AddStringField adds a non-nullable string column.
func (s *Schema) AddStringField(name string) {
	s.AddField(name, TypeString, false)
}

// AddDateField adds a non-nullable date column.
func (s *Schema) AddDateField(name string) {
	s.AddField(name, TypeDate, false)
}

// Fields returns a copy of the field names slice in declaration order.
func (s *Schema) Fields() []string {
	fields := make([]string, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Type returns the type of a field, or "" for an unknown field.
func (s *Schema) Type(fieldName string) string {
	if info, exists := s.fieldInfo[fieldName]; exists {
		return info.fieldType
	}
	return ""
}

// Nullable returns whether a field admits NULL.
func (s *Schema) Nullable(fieldName string) bool {
	if info, exists := s.fieldInfo[fieldName]; exists {
		return info.nullable
	}
	return false
}

// HasField checks if the schema contains the specified field.
func (s *Schema) HasField(fieldName string) bool {
	_, exists := s.fieldInfo[fieldName]
	return exists
}

// Table pairs a table name with its schema and primary key.
type Table struct {
	name       string
	schema     *Schema
	primaryKey []string
}

// NewTable creates a new table definition.
func NewTable(name string, schema *Schema, primaryKey []string) *Table {
	return &Table{
		name:       name,
		schema:     schema,
		primaryKey: primaryKey,
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Schema returns the table's schema.
func (t *Table) Schema() *Schema {
	return t.schema
}

// PrimaryKey returns the ordered primary key columns.
func (t *Table) PrimaryKey() []string {
	result := make([]string, len(t.primaryKey))
	copy(result, t.primaryKey)
	return result
}
