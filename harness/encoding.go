package harness

import (
	"math"
	"strconv"
	"time"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/stats"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// value carries one result through JSON. Non-finite floats have no JSON number form, so
// they are written as the strings "NaN", "+Inf" and "-Inf".
type value[N preduce.Number] struct {
	v N
}

func (x value[N]) MarshalJSON() ([]byte, error) {
	switch v := any(x.v).(type) {
	case float32:
		return formatFloat(float64(v), 32), nil
	case float64:
		return formatFloat(v, 64), nil
	case uint, uint32, uint64:
		return strconv.AppendUint(nil, uint64(x.v), 10), nil
	default:
		return strconv.AppendInt(nil, int64(x.v), 10), nil
	}
}

func (x *value[N]) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	switch any(x.v).(type) {
	case float32, float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		x.v = N(f)
	case uint, uint32, uint64:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		x.v = N(u)
	default:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		x.v = N(i)
	}
	return nil
}

func formatFloat(f float64, bitSize int) []byte {
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`)
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`)
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`)
	}
	return strconv.AppendFloat(nil, f, 'g', -1, bitSize)
}

func wrapValues[N preduce.Number](values []N) []value[N] {
	return lo.Map(values, func(v N, _ int) value[N] { return value[N]{v} })
}

func unwrapValues[N preduce.Number](values []value[N]) []N {
	return lo.Map(values, func(x value[N], _ int) N { return x.v })
}

type sampleJSON[N preduce.Number] struct {
	Elapsed int64    `json:"elapsed"`
	Allocs  uint64   `json:"allocs"`
	Result  value[N] `json:"result"`
}

// MarshalJSON writes non-finite results as strings
func (s Sample[N]) MarshalJSON() ([]byte, error) {
	return json.Marshal(sampleJSON[N]{Elapsed: int64(s.Elapsed), Allocs: s.Allocs, Result: value[N]{s.Result}})
}

// UnmarshalJSON is the inverse of MarshalJSON
func (s *Sample[N]) UnmarshalJSON(data []byte) error {
	var decoded sampleJSON[N]
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	s.Elapsed = time.Duration(decoded.Elapsed)
	s.Allocs = decoded.Allocs
	s.Result = decoded.Result.v
	return nil
}

type reportJSON[N preduce.Number] struct {
	ID          string              `json:"id"`
	Strategy    preduce.StrategyTag `json:"strategy"`
	Workers     int                 `json:"workers"`
	Repetitions int                 `json:"repetitions"`
	Warmup      int                 `json:"warmup"`
	InputLength int                 `json:"input_length"`
	InputDigest uint64              `json:"input_digest,omitempty"`
	StartTime   time.Time           `json:"start_time"`
	Runtime     int64               `json:"runtime"`
	Elapsed     stats.Summary       `json:"elapsed"`
	MeanAllocs  float64             `json:"mean_allocs"`
	Results     []value[N]          `json:"results"`
	Samples     []Sample[N]         `json:"samples"`
}

// MarshalJSON writes non-finite results as strings
func (r Report[N]) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON[N]{
		ID:          r.ID,
		Strategy:    r.Strategy,
		Workers:     r.Workers,
		Repetitions: r.Repetitions,
		Warmup:      r.Warmup,
		InputLength: r.InputLength,
		InputDigest: r.InputDigest,
		StartTime:   r.StartTime,
		Runtime:     int64(r.Runtime),
		Elapsed:     r.Elapsed,
		MeanAllocs:  r.MeanAllocs,
		Results:     wrapValues(r.Results),
		Samples:     r.Samples,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON
func (r *Report[N]) UnmarshalJSON(data []byte) error {
	var decoded reportJSON[N]
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = Report[N]{
		ID:          decoded.ID,
		Strategy:    decoded.Strategy,
		Workers:     decoded.Workers,
		Repetitions: decoded.Repetitions,
		Warmup:      decoded.Warmup,
		InputLength: decoded.InputLength,
		InputDigest: decoded.InputDigest,
		StartTime:   decoded.StartTime,
		Runtime:     time.Duration(decoded.Runtime),
		Elapsed:     decoded.Elapsed,
		MeanAllocs:  decoded.MeanAllocs,
		Results:     unwrapValues(decoded.Results),
		Samples:     decoded.Samples,
	}
	return nil
}
