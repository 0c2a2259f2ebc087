package fields

import (
	"strconv"
)

// Rating is a derived mean of review scores. It marshals with a single
// decimal place so an integral mean renders as "8.0" rather than "8".
type Rating float64

func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(r), 'f', 1, 64)), nil
}
