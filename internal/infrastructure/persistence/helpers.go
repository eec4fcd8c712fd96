package persistence

import "github.com/sltrack/backend/internal/infrastructure/database"

// Optional-field binding: nil pointers bind as SQL NULL.

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func i64OrNil(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func f64OrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Partial-update merging: a nil pointer keeps the stored column value,
// whatever it is, including NULL.

func mergeStr(p *string, row database.Row, col string) any {
	if p != nil {
		return *p
	}
	return row[col]
}

func mergeInt64(p *int64, row database.Row, col string) any {
	if p != nil {
		return *p
	}
	return row[col]
}

func mergeFloat64(p *float64, row database.Row, col string) any {
	if p != nil {
		return *p
	}
	return row[col]
}

func mergeBool(p *bool, row database.Row, col string) any {
	if p != nil {
		if *p {
			return int64(1)
		}
		return int64(0)
	}
	return row[col]
}
