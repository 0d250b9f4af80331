package fwfcsv

import (
	"strconv"
	"strings"
)

// parseColumnDef splits a column definition of the form
// "name:length[:type]" into its parts. If the definition is not valid,
// ok will be false.
func parseColumnDef(def string) (name string, length int, typ string, ok bool) {
	parts := strings.Split(def, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return name, length, typ, false
	}

	name = parts[0]
	if name == "" || strings.TrimSpace(name) != name {
		return "", 0, "", false
	}
	var err error
	if length, err = strconv.Atoi(parts[1]); err != nil || length <= 0 {
		return "", 0, "", false
	}
	typ = StringType
	if len(parts) == 3 {
		if parts[2] == "" {
			return "", 0, "", false
		}
		typ = parts[2]
	}

	return name, length, typ, true
}

// ParseColumnDefs builds a FixedWidthSpec from column definitions of the
// form "name:length[:type]", e.g. "id:3", "name:5:str". It is a compact
// alternative to a payload file.
func ParseColumnDefs(defs []string, hasHeader bool, encodingName string) (*FixedWidthSpec, error) {
	names := make([]string, 0, len(defs))
	lengths := make([]int, 0, len(defs))
	types := make([]string, 0, len(defs))
	for _, def := range defs {
		name, length, typ, ok := parseColumnDef(def)
		if !ok {
			return nil, specErrorf("ColumnNames", "invalid column definition %q, want name:length[:type]", def)
		}
		names = append(names, name)
		lengths = append(lengths, length)
		types = append(types, typ)
	}
	return NewFixedWidthSpec(names, lengths, types, hasHeader, encodingName)
}
