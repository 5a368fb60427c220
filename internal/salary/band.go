package salary

// Band is one of the fixed salary bands used for the categorical salary chart.
type Band string

// Band values. BandNone marks records with no band at all (sentinel or
// malformed annual text); BandOther marks non-annual salary text.
const (
	BandNone     Band = ""
	BandUnder50  Band = "<50k"
	Band50to75   Band = "50k-75k"
	Band75to100  Band = "75k-100k"
	Band100to125 Band = "100k-125k"
	Band125to150 Band = "125k-150k"
	Band150to175 Band = "150k-175k"
	Band175to200 Band = "175k-200k"
	Band200Plus  Band = "200k+"
	BandOther    Band = "Other"
)

// bandFloors holds the inclusive lower bound of each band after BandUnder50.
var bandFloors = []struct {
	floor float64
	band  Band
}{
	{200000, Band200Plus},
	{175000, Band175to200},
	{150000, Band150to175},
	{125000, Band125to150},
	{100000, Band100to125},
	{75000, Band75to100},
	{50000, Band50to75},
}

// Bands returns the eight annual bands in chart order. BandOther and BandNone
// are not included.
func Bands() []Band {
	return []Band{
		BandUnder50, Band50to75, Band75to100, Band100to125,
		Band125to150, Band150to175, Band175to200, Band200Plus,
	}
}

// BandFor maps an annual average to its band. Boundaries are lower-inclusive,
// so exactly 50000 is Band50to75.
func BandFor(avg float64) Band {
	for _, b := range bandFloors {
		if avg >= b.floor {
			return b.band
		}
	}
	return BandUnder50
}

// String returns the chart label for the band.
func (b Band) String() string {
	return string(b)
}

// Annual reports whether b is one of the eight annual bands.
func (b Band) Annual() bool {
	return b != BandNone && b != BandOther
}
