package hmm

import (
	"context"
	"math"
)

// Path is the result of decoding: the most probable label sequence and its
// natural log probability.
type Path struct {
	LogProb float64  `json:"log_prob"`
	Labels  []string `json:"labels"`
}

// Decoder runs Viterbi decoding with floor substitution for absent
// probabilities.
type Decoder struct {
	floor float64
}

// NewDecoder returns a Decoder using floor for every missing start,
// transition or emission probability.
func NewDecoder(floor float64) *Decoder {
	return &Decoder{floor: floor}
}

// Floor returns the smoothing floor of the decoder.
func (d *Decoder) Floor() float64 {
	return d.floor
}

// Decode returns the most probable label sequence for observations.
//
// labels is the alphabet searched at every time step; on equal scores the
// label appearing first in labels wins.
func (d *Decoder) Decode(ctx context.Context, observations []string, labels []string, m *Model) (Path, error) {
	c, err := d.Compile(labels, m)
	if err != nil {
		return Path{}, err
	}
	return c.Decode(ctx, observations)
}

// Compiled is a model laid out densely over a fixed label alphabet. It is
// read only and can be used by concurrent Decode calls.
type Compiled struct {
	labels   []string
	logFloor float64

	// start[k]
	start []float64

	// trans[j*L+k] is the log probability of k following j
	trans []float64

	// emission[k] maps an observation to its log probability under label k
	emission []map[string]float64
}

// Compile converts the model tables into log space over labels.
func (d *Decoder) Compile(labels []string, m *Model) (*Compiled, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if !validFloor(d.floor) {
		return nil, ErrInvalidFloor
	}

	n := len(labels)
	c := &Compiled{
		labels:   append([]string(nil), labels...),
		logFloor: math.Log(d.floor),
		start:    make([]float64, n),
		trans:    make([]float64, n*n),
		emission: make([]map[string]float64, n),
	}

	for k, label := range labels {
		c.start[k] = logOr(m.Start, label, c.logFloor)

		row := m.Emission[label]
		logs := make(map[string]float64, len(row))
		for obs, p := range row {
			logs[obs] = math.Log(p)
		}
		c.emission[k] = logs
	}

	for j, from := range labels {
		row := m.Transition[from]
		for k, to := range labels {
			c.trans[j*n+k] = logOr(row, to, c.logFloor)
		}
	}

	return c, nil
}

// Labels returns the alphabet the model was compiled for.
func (c *Compiled) Labels() []string {
	return c.labels
}

func (c *Compiled) emit(k int, obs string) float64 {
	if p, ok := c.emission[k][obs]; ok {
		return p
	}
	return c.logFloor
}

// Decode runs Viterbi over observations. The context is checked once per
// time step.
func (c *Compiled) Decode(ctx context.Context, observations []string) (Path, error) {
	if len(observations) == 0 {
		return Path{}, ErrEmptyObservations
	}

	n := len(c.labels)
	steps := len(observations)

	// lattice: score[t*n+k] and back[t*n+k]
	score := make([]float64, steps*n)
	back := make([]int, steps*n)

	for k := 0; k < n; k++ {
		score[k] = c.start[k] + c.emit(k, observations[0])
		back[k] = k
	}

	for t := 1; t < steps; t++ {
		if err := ctx.Err(); err != nil {
			return Path{}, err
		}

		prev := score[(t-1)*n : t*n]
		cur := score[t*n : (t+1)*n]
		ptr := back[t*n : (t+1)*n]
		obs := observations[t]

		for k := 0; k < n; k++ {
			best, arg := math.Inf(-1), 0
			for j := 0; j < n; j++ {
				s := prev[j] + c.trans[j*n+k]
				if s > best || j == 0 {
					best, arg = s, j
				}
			}
			cur[k] = best + c.emit(k, obs)
			ptr[k] = arg
		}
	}

	last := score[(steps-1)*n:]
	final := 0
	for k := 1; k < n; k++ {
		if last[k] > last[final] {
			final = k
		}
	}

	path := make([]string, steps)
	k := final
	for t := steps - 1; t >= 0; t-- {
		path[t] = c.labels[k]
		k = back[t*n+k]
	}

	return Path{LogProb: last[final], Labels: path}, nil
}
