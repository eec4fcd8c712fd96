package database

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// rewritePlaceholders replaces each ? in the query with @p1..@pN in source
// order, which is how SQL Server names positional arguments. The N-th
// caller argument binds to the N-th placeholder occurrence; callers rely on
// that ordering. Question marks inside single-quoted literals are left
// alone.
func rewritePlaceholders(query string) (string, int) {
	var b strings.Builder
	b.Grow(len(query) + 16)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			b.WriteByte(ch)
		case ch == '?' && !inLiteral:
			n++
			b.WriteString("@p")
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), n
}

// coerceArgs applies the remote backend's value coercion to every argument.
// The embedded backend binds native types directly and never calls this.
func coerceArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = coerceValue(a)
	}
	return out
}

// coerceValue maps a Go value onto the fixed SQL Server binding types:
// nil stays NULL, integral numbers become int64, non-integral numbers
// become decimal(18,2), times pass through, everything else becomes text.
// Keeping this mapping total is what stops callers from observing type
// mismatches between backends.
func coerceValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return coerceFloat(float64(x))
	case float64:
		return coerceFloat(x)
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x
	case decimal.Decimal:
		return x.Round(2)
	default:
		return fmt.Sprint(x)
	}
}

func coerceFloat(f float64) any {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return int64(f)
	}
	return decimal.NewFromFloat(f).Round(2)
}
