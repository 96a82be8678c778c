package invoice

import (
	"encoding/json"
	"strconv"
)

// ScalarKind discriminates the forms a loose payload value can take.
type ScalarKind int

const (
	ScalarAbsent ScalarKind = iota
	ScalarNumber
	ScalarText
)

// Scalar is a loosely typed payload value. The upstream client sends monetary
// and date fields interchangeably as JSON numbers, formatted strings, or null;
// Scalar keeps the received form so the formatter can apply its own coercion
// rules instead of losing information at decode time.
type Scalar struct {
	Kind ScalarKind
	Num  float64
	Str  string
}

// Number builds a numeric Scalar.
func Number(n float64) Scalar { return Scalar{Kind: ScalarNumber, Num: n} }

// Text builds a textual Scalar.
func Text(s string) Scalar { return Scalar{Kind: ScalarText, Str: s} }

// Absent reports whether no value was supplied.
func (s Scalar) Absent() bool { return s.Kind == ScalarAbsent }

// Display renders the value as received: numbers without forced decimals,
// text verbatim, absent as empty.
func (s Scalar) Display() string {
	switch s.Kind {
	case ScalarNumber:
		return strconv.FormatFloat(s.Num, 'f', -1, 64)
	case ScalarText:
		return s.Str
	default:
		return ""
	}
}

// UnmarshalJSON accepts null, numbers and strings. Any other JSON shape
// (array, object, bool) degrades to absent rather than failing the decode.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*s = Scalar{}
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Text(str)
		return nil
	}
	if n, err := strconv.ParseFloat(string(b), 64); err == nil {
		*s = Number(n)
		return nil
	}
	*s = Scalar{}
	return nil
}

// MarshalJSON emits the value in its received form.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ScalarNumber:
		return json.Marshal(s.Num)
	case ScalarText:
		return json.Marshal(s.Str)
	default:
		return []byte("null"), nil
	}
}
