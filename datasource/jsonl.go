package datasource

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// JSONLConf configures the loading of JSON lines data
type JSONLConf struct {
	Path          string // [REQUIRED] gjson path of the numeric value within each line
	HeaderLines   int    // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Comment       rune   // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int    // Maximum size in bytes of the buffer used to read lines. Defaults to bufio.MaxScanTokenSize.
	SkipMissing   bool   // iff true, lines without a numeric value at Path are skipped instead of failing
}

// LoadJSONL reads one numeric value from each line of JSON lines data, selected by the
// gjson path conf.Path. Blank lines are ignored.
func LoadJSONL(r io.Reader, conf *JSONLConf) ([]float64, error) {
	if len(conf.Path) == 0 {
		return nil, fmt.Errorf("JSONLConf.Path must be a gjson path")
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), conf.MaxBufferSize)
	values := make([]float64, 0)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= conf.HeaderLines {
			continue
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 || (conf.Comment != 0 && strings.HasPrefix(trimmed, string(conf.Comment))) {
			continue
		}
		if !gjson.Valid(trimmed) {
			return nil, fmt.Errorf("Line %d is not valid JSON:\n\t%s", lineNum, line)
		}
		res := gjson.Get(trimmed, conf.Path)
		if !res.Exists() || res.Type != gjson.Number {
			if conf.SkipMissing {
				continue
			}
			return nil, fmt.Errorf("Line %d has no numeric value at %s. Was: %s", lineNum, conf.Path, res.Raw)
		}
		values = append(values, res.Float())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
