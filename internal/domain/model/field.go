package model

// Field names a column of the participation table.
type Field string

// Participation table columns.
const (
	FieldYear              Field = "year"
	FieldType              Field = "type"
	FieldNOC               Field = "noc"
	FieldGender            Field = "gender"
	FieldAge               Field = "age"
	FieldHeight            Field = "height_cm"
	FieldWeight            Field = "weight_kg"
	FieldMedal             Field = "medal"
	FieldName              Field = "name"
	FieldEvent             Field = "event"
	FieldDiscipline        Field = "discipline"
	FieldDisciplineGrouped Field = "discipline_grouped"
	FieldBornDate          Field = "born_date"
)

// Coordinate table columns.
const (
	ColumnNOC       = "noc"
	ColumnCountry   = "country"
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"
)

// RequiredFields must be present in the participation table header.
var RequiredFields = []Field{
	FieldYear, FieldType, FieldNOC, FieldMedal, FieldAge,
	FieldGender, FieldDisciplineGrouped, FieldName, FieldDiscipline,
}

// RequiredCoordinateColumns must be present in the coordinate table header.
var RequiredCoordinateColumns = []string{ColumnNOC, ColumnCountry, ColumnLatitude, ColumnLongitude}

var categorical = map[Field]bool{
	FieldYear:              true,
	FieldType:              true,
	FieldNOC:               true,
	FieldGender:            true,
	FieldMedal:             true,
	FieldName:              true,
	FieldEvent:             true,
	FieldDiscipline:        true,
	FieldDisciplineGrouped: true,
}

var numeric = map[Field]bool{
	FieldYear:   true,
	FieldAge:    true,
	FieldHeight: true,
	FieldWeight: true,
}

// Categorical reports whether rows can be grouped by f.
func (f Field) Categorical() bool { return categorical[f] }

// Numeric reports whether f holds numbers that can be averaged.
func (f Field) Numeric() bool { return numeric[f] }

// String implements fmt.Stringer.
func (f Field) String() string { return string(f) }
