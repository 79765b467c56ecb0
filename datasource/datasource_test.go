package datasource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadJSONL(t *testing.T) {
	data := `# exported readings
{"id": 1, "reading": {"value": 1.5}}

{"id": 2, "reading": {"value": -2}}
{"id": 3, "reading": {"value": 4e2}}
`
	values, err := LoadJSONL(strings.NewReader(data), &JSONLConf{Path: "reading.value", Comment: '#'})
	require.Nil(t, err)
	require.Equal(t, []float64{1.5, -2, 400}, values)
}

func TestLoadJSONLHeaderLines(t *testing.T) {
	data := "not json at all\n{\"v\": 3}\n"
	values, err := LoadJSONL(strings.NewReader(data), &JSONLConf{Path: "v", HeaderLines: 1})
	require.Nil(t, err)
	require.Equal(t, []float64{3}, values)
}

func TestLoadJSONLMissingValue(t *testing.T) {
	data := "{\"v\": 3}\n{\"v\": \"three\"}\n{\"w\": 1}\n{\"v\": 4}\n"
	_, err := LoadJSONL(strings.NewReader(data), &JSONLConf{Path: "v"})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Line 2")

	values, err := LoadJSONL(strings.NewReader(data), &JSONLConf{Path: "v", SkipMissing: true})
	require.Nil(t, err)
	require.Equal(t, []float64{3, 4}, values)
}

func TestLoadJSONLInvalid(t *testing.T) {
	_, err := LoadJSONL(strings.NewReader("{\"v\": 3\n"), &JSONLConf{Path: "v"})
	require.NotNil(t, err)
	_, err = LoadJSONL(strings.NewReader("{}\n"), &JSONLConf{})
	require.NotNil(t, err)
}

func TestGenerate(t *testing.T) {
	seq, err := Generate(Sequence, 4, 0)
	require.Nil(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, seq)

	a, err := Generate(Uniform, 100, 7)
	require.Nil(t, err)
	b, err := Generate(Uniform, 100, 7)
	require.Nil(t, err)
	require.Equal(t, a, b)
	for _, v := range a {
		require.True(t, v >= -100 && v < 100)
	}

	skewed, err := Generate(Skewed, 1000, 7)
	require.Nil(t, err)
	for _, v := range skewed {
		require.GreaterOrEqual(t, v, 1.0)
	}

	_, err = Generate(Kind("gaussian"), 10, 0)
	require.NotNil(t, err)
	_, err = Generate(Uniform, -1, 0)
	require.NotNil(t, err)
}

func TestDigest(t *testing.T) {
	a, _ := Generate(Uniform, 100, 1)
	b, _ := Generate(Uniform, 100, 1)
	c, _ := Generate(Uniform, 100, 2)
	require.Equal(t, Digest(a), Digest(b))
	require.NotEqual(t, Digest(a), Digest(c))
	require.NotEqual(t, Digest([]float64{1, 2}), Digest([]float64{2, 1}))
}
