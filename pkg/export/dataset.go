package export

// Dataset defines column-ordered tabular export content. Rows carry values
// in header order so rendered output is byte-stable across runs.
type Dataset struct {
	Headers []string
	Rows    [][]string
}
