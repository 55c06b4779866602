package mysql

import (
	"strings"

	"github.com/EungsopYoo/sqoop/internal/driver"
)

// typeCodeFor maps a MySQL type name to its classification code.
// Handles both information_schema DATA_TYPE values and the uppercase
// names the driver reports for query results.
func typeCodeFor(name string) driver.TypeCode {
	switch strings.ToLower(name) {
	case "bit":
		return driver.TypeBit
	case "tinyint", "bool", "boolean":
		return driver.TypeTinyInt
	case "smallint", "year":
		return driver.TypeSmallInt
	case "mediumint", "int", "integer":
		return driver.TypeInteger
	case "bigint":
		return driver.TypeBigInt
	case "decimal":
		return driver.TypeDecimal
	case "numeric":
		return driver.TypeNumeric
	case "float":
		return driver.TypeReal
	case "double", "double precision":
		return driver.TypeDouble
	case "char":
		return driver.TypeChar
	case "varchar", "enum", "set":
		return driver.TypeVarchar
	case "tinytext", "text", "mediumtext", "longtext", "json":
		return driver.TypeLongVarchar
	case "date":
		return driver.TypeDate
	case "time":
		return driver.TypeTime
	case "datetime", "timestamp":
		return driver.TypeTimestamp
	case "binary":
		return driver.TypeBinary
	case "varbinary", "tinyblob", "blob", "mediumblob", "longblob":
		return driver.TypeVarBinary
	default:
		return driver.TypeUnknown
	}
}
