package postgres

import (
	"strings"

	"github.com/EungsopYoo/sqoop/internal/driver"
)

// typeCodeFor maps a PostgreSQL type name to its classification code.
// Handles both information_schema data_type values and the internal
// names (int4, bpchar, ...) pgx reports for query results.
func typeCodeFor(name string) driver.TypeCode {
	switch strings.ToLower(name) {
	case "boolean", "bool":
		return driver.TypeBoolean
	case "bit", "bit varying", "varbit":
		return driver.TypeBit
	case "smallint", "int2", "smallserial":
		return driver.TypeSmallInt
	case "integer", "int", "int4", "serial":
		return driver.TypeInteger
	case "bigint", "int8", "bigserial":
		return driver.TypeBigInt
	case "numeric", "decimal":
		return driver.TypeNumeric
	case "real", "float4":
		return driver.TypeReal
	case "double precision", "float8":
		return driver.TypeDouble
	case "money":
		return driver.TypeNumeric
	case "character", "char", "bpchar":
		return driver.TypeChar
	case "character varying", "varchar", "uuid":
		return driver.TypeVarchar
	case "text", "json", "jsonb", "xml":
		return driver.TypeLongVarchar
	case "date":
		return driver.TypeDate
	case "time", "time without time zone", "time with time zone", "timetz":
		return driver.TypeTime
	case "timestamp", "timestamp without time zone",
		"timestamp with time zone", "timestamptz":
		return driver.TypeTimestamp
	case "bytea":
		return driver.TypeVarBinary
	default:
		return driver.TypeUnknown
	}
}
