package mssql

import (
	"strings"

	"github.com/EungsopYoo/sqoop/internal/driver"
)

// typeCodeFor maps a SQL Server type name to its classification code.
func typeCodeFor(name string) driver.TypeCode {
	switch strings.ToLower(name) {
	case "bit":
		return driver.TypeBit
	case "tinyint":
		return driver.TypeTinyInt
	case "smallint":
		return driver.TypeSmallInt
	case "int":
		return driver.TypeInteger
	case "bigint":
		return driver.TypeBigInt
	case "decimal", "money", "smallmoney":
		return driver.TypeDecimal
	case "numeric":
		return driver.TypeNumeric
	case "real":
		return driver.TypeReal
	case "float":
		return driver.TypeDouble
	case "char", "nchar":
		return driver.TypeChar
	case "varchar", "nvarchar", "uniqueidentifier":
		return driver.TypeVarchar
	case "text", "ntext", "xml":
		return driver.TypeLongVarchar
	case "date":
		return driver.TypeDate
	case "time":
		return driver.TypeTime
	case "datetime", "datetime2", "smalldatetime", "datetimeoffset":
		return driver.TypeTimestamp
	case "binary":
		return driver.TypeBinary
	case "varbinary", "image":
		return driver.TypeVarBinary
	default:
		return driver.TypeUnknown
	}
}
