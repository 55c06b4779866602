package hive

import "strings"

// QualifyFunc resolves scheme and authority for an unqualified warehouse
// path against the active filesystem context.
type QualifyFunc func(path string) (string, error)

// FinalPath computes the qualified location of the imported data files.
// The path is the warehouse directory joined with the target directory if
// one was specified, otherwise with the input table name. A nil qualify
// function leaves the path unqualified.
func FinalPath(warehouseDir, targetDir, inputTable string, qualify QualifyFunc) (string, error) {
	if warehouseDir != "" && !strings.HasSuffix(warehouseDir, "/") {
		warehouseDir += "/"
	}

	tablePath := warehouseDir + inputTable
	if targetDir != "" {
		tablePath = warehouseDir + targetDir
	}

	if qualify == nil {
		return tablePath, nil
	}
	qualified, err := qualify(tablePath)
	if err != nil {
		return "", &ResolutionError{Path: tablePath, Err: err}
	}
	return qualified, nil
}
