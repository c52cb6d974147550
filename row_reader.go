package go_cubrid

// Row is one result row in declared column order. Null columns are nil.
type Row []any

// NamedRow is one result row keyed by column name.
type NamedRow map[string]any

// readRow materializes the fetched row in column order. The caller must have
// already positioned the server cursor on a valid row.
func readRow(cu *Cursor, st *cursorState) (Row, error) {
	row := make(Row, len(st.columns))
	for i, col := range st.columns {
		v, err := decodeColumn(cu, st, i+1, col)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

// readNamedRow materializes the fetched row keyed by column name. Columns
// are visited in declared order, so when two share a name the later one
// wins.
func readNamedRow(cu *Cursor, st *cursorState) (NamedRow, error) {
	row := make(NamedRow, len(st.columns))
	for i, col := range st.columns {
		v, err := decodeColumn(cu, st, i+1, col)
		if err != nil {
			return nil, err
		}
		row[col.Name] = v
	}
	return row, nil
}
