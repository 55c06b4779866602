package driver

// TypeCode classifies a source column's native type. Drivers translate
// their engine-specific type names into these codes during introspection;
// the Hive statement builders treat the codes as opaque lookup keys.
type TypeCode int

const (
	TypeUnknown TypeCode = iota
	TypeBit
	TypeBoolean
	TypeTinyInt
	TypeSmallInt
	TypeInteger
	TypeBigInt
	TypeReal
	TypeFloat
	TypeDouble
	TypeNumeric
	TypeDecimal
	TypeChar
	TypeVarchar
	TypeLongVarchar
	TypeDate
	TypeTime
	TypeTimestamp
	TypeClob
	TypeBinary
	TypeVarBinary
)

var typeCodeNames = map[TypeCode]string{
	TypeUnknown:     "UNKNOWN",
	TypeBit:         "BIT",
	TypeBoolean:     "BOOLEAN",
	TypeTinyInt:     "TINYINT",
	TypeSmallInt:    "SMALLINT",
	TypeInteger:     "INTEGER",
	TypeBigInt:      "BIGINT",
	TypeReal:        "REAL",
	TypeFloat:       "FLOAT",
	TypeDouble:      "DOUBLE",
	TypeNumeric:     "NUMERIC",
	TypeDecimal:     "DECIMAL",
	TypeChar:        "CHAR",
	TypeVarchar:     "VARCHAR",
	TypeLongVarchar: "LONGVARCHAR",
	TypeDate:        "DATE",
	TypeTime:        "TIME",
	TypeTimestamp:   "TIMESTAMP",
	TypeClob:        "CLOB",
	TypeBinary:      "BINARY",
	TypeVarBinary:   "VARBINARY",
}

// String returns the SQL-style name of the type code.
func (c TypeCode) String() string {
	if name, ok := typeCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// ToHiveType resolves a type code to its Hive type name.
// Returns false when Hive has no representation for the source type.
func ToHiveType(code TypeCode) (string, bool) {
	switch code {
	case TypeInteger, TypeSmallInt:
		return "INT", true
	case TypeVarchar, TypeChar, TypeLongVarchar, TypeDate, TypeTime,
		TypeTimestamp, TypeClob:
		return "STRING", true
	case TypeNumeric, TypeDecimal, TypeFloat, TypeDouble, TypeReal:
		return "DOUBLE", true
	case TypeBit, TypeBoolean:
		return "BOOLEAN", true
	case TypeTinyInt:
		return "TINYINT", true
	case TypeBigInt:
		return "BIGINT", true
	default:
		return "", false
	}
}

// HiveTypeImprovised reports whether the Hive mapping for code loses
// precision relative to the source type. Hive stores dates and times as
// strings and fixed-point numerics as doubles.
func HiveTypeImprovised(code TypeCode) bool {
	switch code {
	case TypeDate, TypeTime, TypeTimestamp, TypeNumeric, TypeDecimal:
		return true
	default:
		return false
	}
}
