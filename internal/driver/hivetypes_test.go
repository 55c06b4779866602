package driver

import "testing"

func TestToHiveType(t *testing.T) {
	tests := []struct {
		name     string
		code     TypeCode
		expected string
		ok       bool
	}{
		{"integer to INT", TypeInteger, "INT", true},
		{"smallint to INT", TypeSmallInt, "INT", true},
		{"tinyint to TINYINT", TypeTinyInt, "TINYINT", true},
		{"bigint to BIGINT", TypeBigInt, "BIGINT", true},
		{"varchar to STRING", TypeVarchar, "STRING", true},
		{"char to STRING", TypeChar, "STRING", true},
		{"longvarchar to STRING", TypeLongVarchar, "STRING", true},
		{"clob to STRING", TypeClob, "STRING", true},
		{"date to STRING", TypeDate, "STRING", true},
		{"time to STRING", TypeTime, "STRING", true},
		{"timestamp to STRING", TypeTimestamp, "STRING", true},
		{"numeric to DOUBLE", TypeNumeric, "DOUBLE", true},
		{"decimal to DOUBLE", TypeDecimal, "DOUBLE", true},
		{"float to DOUBLE", TypeFloat, "DOUBLE", true},
		{"double to DOUBLE", TypeDouble, "DOUBLE", true},
		{"real to DOUBLE", TypeReal, "DOUBLE", true},
		{"bit to BOOLEAN", TypeBit, "BOOLEAN", true},
		{"boolean to BOOLEAN", TypeBoolean, "BOOLEAN", true},
		{"binary unsupported", TypeBinary, "", false},
		{"varbinary unsupported", TypeVarBinary, "", false},
		{"unknown unsupported", TypeUnknown, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToHiveType(tt.code)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("ToHiveType(%v) = (%q, %v), want (%q, %v)",
					tt.code, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestHiveTypeImprovised(t *testing.T) {
	improvised := []TypeCode{TypeDate, TypeTime, TypeTimestamp, TypeNumeric, TypeDecimal}
	for _, code := range improvised {
		if !HiveTypeImprovised(code) {
			t.Errorf("expected %v to be an approximated mapping", code)
		}
	}

	exact := []TypeCode{TypeInteger, TypeBigInt, TypeVarchar, TypeBoolean, TypeDouble}
	for _, code := range exact {
		if HiveTypeImprovised(code) {
			t.Errorf("expected %v to be an exact mapping", code)
		}
	}
}
