package tools

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

const (
	FloatMin = 0.000001
)

func IsFloatEqual(f1, f2 float64) bool {
	return math.Abs(f1-f2) < FloatMin
}

// Parses a vector written as "x,y,z". A single value "v" is expanded to "v,v,v".
func ParseVector(value string) (r3.Vector, error) {
	parts := strings.Split(value, ",")
	if len(parts) == 1 {
		parts = []string{parts[0], parts[0], parts[0]}
	}
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("invalid vector %q, expected x,y,z", value)
	}

	var coords [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "invalid vector %q", value)
		}
		coords[i] = f
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func FormatVector(v r3.Vector) string {
	return strconv.FormatFloat(v.X, 'g', -1, 64) + "," +
		strconv.FormatFloat(v.Y, 'g', -1, 64) + "," +
		strconv.FormatFloat(v.Z, 'g', -1, 64)
}
