package domain

// BadgeTone is the semantic color class of a badge
type BadgeTone int

const (
	BadgeToneNeutral BadgeTone = iota
	BadgeToneInfo
	BadgeToneSuccess
	BadgeToneWarning
	BadgeToneDanger
)

func (t BadgeTone) String() string {
	switch t {
	case BadgeToneInfo:
		return "info"
	case BadgeToneSuccess:
		return "success"
	case BadgeToneWarning:
		return "warning"
	case BadgeToneDanger:
		return "danger"
	default:
		return "neutral"
	}
}

type Badge struct {
	Text string
	Tone BadgeTone
}

// Row is one table line: display cells in column order plus an optional badge
type Row struct {
	Cells []string
	Badge *Badge
}

// Column describes a table column. Auto columns absorb the width left over by
// the fixed ones.
type Column struct {
	Header string
	Width  float64 // ignored when Auto
	Auto   bool
}

// Stat is one derived figure of a section, e.g. "Neurology" -> 4
type Stat struct {
	Label string
	Value float64
}

// Section is a titled group of rows with derived statistics
type Section struct {
	Title   string
	Kind    RecordKind // empty for statistical sections
	Columns []Column
	Rows    []Row
	Stats   []Stat // ordered label -> value
}

// Stat returns the value stored under label
func (s Section) Stat(label string) (float64, bool) {
	for _, st := range s.Stats {
		if st.Label == label {
			return st.Value, true
		}
	}
	return 0, false
}

func (s Section) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.Header
	}
	return headers
}
