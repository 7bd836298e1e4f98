package output

// Entry is one folded stack: a ';'-joined path and the number of bytes the
// leaves under that exact path weigh.
type Entry struct {
	Path   string `json:"path"`
	Weight int64  `json:"weight"`
}

// Row is an Entry annotated with its share of the total weight.
type Row struct {
	Entry
	Share float64 `json:"share"`
}

// Summary describes a whole set of entries.
type Summary struct {
	Paths       int   `json:"paths"`
	TotalWeight int64 `json:"totalWeight"`
}
