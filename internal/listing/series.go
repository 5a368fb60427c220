package listing

// Others labels the synthetic group that absorbs everything past a top-N cut.
const Others = "Others"

// Point is one (label, value) pair of a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered sequence of points.
type Series []Point

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Total returns the sum of all values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Lookup returns the value for label.
func (s Series) Lookup(label string) (float64, bool) {
	for _, p := range s {
		if p.Label == label {
			return p.Value, true
		}
	}
	return 0, false
}

// Bin is one fixed-width histogram bin, [Lower, Lower+width).
type Bin struct {
	Lower float64 `json:"lower"`
	Count int     `json:"count"`
}

// Histogram holds the bins for one group, bins ascending.
type Histogram struct {
	Group string `json:"group"`
	Bins  []Bin  `json:"bins"`
}
