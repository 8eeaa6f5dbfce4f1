package claimmeta

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chainclaims/hub/internal/huberr"
)

// gpsPrecision is the micro-degree scale attrs.py's Location stores
// latitude/longitude at (10^7).
var gpsPrecision = decimal.New(1, 7)

// Location is a claim's geographic metadata, the Go analogue of Location
// in attrs.py. Latitude/longitude are stored as micro-degree integers
// (degrees * 10^7) and exposed as decimal strings.
type Location struct {
	Country string
	State   string
	City    string
	Code    string

	LatitudeMicro  int64
	LongitudeMicro int64
}

// Latitude returns the stored value as a decimal degree string, or "" if
// unset.
func (l Location) Latitude() string {
	if l.LatitudeMicro == 0 {
		return ""
	}
	return decimal.New(l.LatitudeMicro, 0).Div(gpsPrecision).String()
}

// SetLatitude parses a decimal degree string and stores it micro-degree
// scaled, rejecting anything outside [-90, 90] per the original's assert.
func (l *Location) SetLatitude(latitude string) error {
	d, err := decimal.NewFromString(latitude)
	if err != nil {
		return huberr.Invalid("location latitude %q: %v", latitude, err)
	}
	if d.LessThan(decimal.New(-90, 0)) || d.GreaterThan(decimal.New(90, 0)) {
		return huberr.Invalid("latitude must be between -90 and 90 degrees")
	}
	l.LatitudeMicro = d.Mul(gpsPrecision).IntPart()
	return nil
}

func (l Location) Longitude() string {
	if l.LongitudeMicro == 0 {
		return ""
	}
	return decimal.New(l.LongitudeMicro, 0).Div(gpsPrecision).String()
}

// SetLongitude parses a decimal degree string and stores it micro-degree
// scaled, rejecting anything outside [-180, 180].
func (l *Location) SetLongitude(longitude string) error {
	d, err := decimal.NewFromString(longitude)
	if err != nil {
		return huberr.Invalid("location longitude %q: %v", longitude, err)
	}
	if d.LessThan(decimal.New(-180, 0)) || d.GreaterThan(decimal.New(180, 0)) {
		return huberr.Invalid("longitude must be between -180 and 180 degrees")
	}
	l.LongitudeMicro = d.Mul(gpsPrecision).IntPart()
	return nil
}

// FromValue parses either a dict-shaped map[string]string (country/state/
// city/code/latitude/longitude keys set directly) or a colon-delimited
// string, matching Location.from_value's two input shapes. The
// colon-delimited form is "country:state:city:code:latitude:longitude",
// with the leading segments present only when there are more than two
// colon-separated parts or the first part starts with a letter — matching
// the original's heuristic for distinguishing "12.34:56.78" (bare
// lat:long) from a full location string.
func (l *Location) FromValue(value map[string]string, rawString string) error {
	if value != nil {
		for key, val := range value {
			if err := l.setField(key, val); err != nil {
				return err
			}
		}
		return nil
	}

	parts := strings.Split(rawString, ":")
	hasPlaceParts := len(parts) > 2 || (len(parts[0]) > 0 && isLetter(parts[0][0]))
	if hasPlaceParts {
		fields := []*string{&l.Country, &l.State, &l.City, &l.Code}
		for _, field := range fields {
			if len(parts) == 0 {
				break
			}
			v := parts[0]
			parts = parts[1:]
			if v != "" {
				*field = v
			}
		}
	}
	if len(parts) > 0 && parts[0] != "" {
		if err := l.SetLatitude(parts[0]); err != nil {
			return err
		}
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[0] != "" {
		if err := l.SetLongitude(parts[0]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Location) setField(key, val string) error {
	switch key {
	case "country":
		l.Country = val
	case "state":
		l.State = val
	case "city":
		l.City = val
	case "code":
		l.Code = val
	case "latitude":
		return l.SetLatitude(val)
	case "longitude":
		return l.SetLongitude(val)
	default:
		return huberr.Invalid("location: unknown field %q", key)
	}
	return nil
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
