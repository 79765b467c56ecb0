package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/accumulators"
	"github.com/go-sif/preduce/datasource"
)

func loadInput(c *runConfig) ([]float64, error) {
	if len(c.Input) == 0 {
		return datasource.Generate(datasource.Kind(c.Generate), c.N, c.Seed)
	}
	f, err := os.Open(c.Input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return datasource.LoadJSONL(f, &datasource.JSONLConf{Path: c.Path})
}

func transformByName(name string) (preduce.Transform[float64, float64], error) {
	switch name {
	case "identity":
		return preduce.Identity[float64](), nil
	case "square":
		return func(v float64) (float64, error) { return v * v, nil }, nil
	case "sqrt":
		return func(v float64) (float64, error) {
			if v < 0 {
				return 0, fmt.Errorf("cannot take the square root of %g", v)
			}
			return math.Sqrt(v), nil
		}, nil
	case "spin":
		// cost grows with the magnitude of the value
		return func(v float64) (float64, error) {
			acc := 0.0
			for i := 0; i < int(math.Min(math.Abs(v), 1e4)); i++ {
				acc += math.Sin(float64(i))
			}
			if math.IsNaN(acc) {
				return 0, fmt.Errorf("spin diverged on %g", v)
			}
			return v, nil
		}, nil
	default:
		return nil, fmt.Errorf("%s is an unknown transform", name)
	}
}

var accumulatorFactories = map[string]preduce.AccumulatorFactory[float64]{
	"sum":   accumulators.Adder[float64],
	"count": accumulators.Counter[float64],
	"max":   accumulators.Maximizer[float64],
}

func accumulatorByName(name string) (preduce.Accumulator[float64], error) {
	factory, ok := accumulatorFactories[name]
	if !ok {
		return nil, fmt.Errorf("%s is an unknown accumulator", name)
	}
	return factory(), nil
}

func buildJob(c *runConfig) (*preduce.Job[float64, float64], error) {
	input, err := loadInput(c)
	if err != nil {
		return nil, err
	}
	transform, err := transformByName(c.Transform)
	if err != nil {
		return nil, err
	}
	acc, err := accumulatorByName(c.Accumulator)
	if err != nil {
		return nil, err
	}
	return &preduce.Job[float64, float64]{Input: input, Transform: transform, Accumulator: acc}, nil
}
