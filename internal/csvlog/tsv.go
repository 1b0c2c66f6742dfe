package csvlog

// AppendTSV appends one tab-delimited row, bootstrapping the header when the
// file does not exist yet.
func AppendTSV(path string, header, row []string) error {
	if err := ensureHeader(path, header, '\t'); err != nil {
		return err
	}
	return appendRow(path, row, '\t')
}

// TSVColumn returns the values of the named column, or nil when the file
// does not exist. Used to de-duplicate appends against prior runs.
func TSVColumn(path, column string) (map[string]bool, error) {
	rows, err := readAll(path, '\t')
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	idx := -1
	for i, name := range rows[0] {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	values := make(map[string]bool)
	for _, row := range rows[1:] {
		if idx < len(row) && row[idx] != "" {
			values[row[idx]] = true
		}
	}
	return values, nil
}
