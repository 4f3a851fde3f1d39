package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-speaker/speaker/sim"
)

// WAVBitDepth is the sample resolution of exported step responses.
const WAVBitDepth = 24

// ErrNoStep is returned when the results carry no step response.
var ErrNoStep = errors.New("export: results have no step response")

// WAV writes the causal half of the step response as a mono PCM file at
// the response's sample rate. Samples are scaled so that the peak sits at
// -1 dBFS.
func WAV(w io.WriteSeeker, step *sim.StepResponse) error {
	if step == nil || len(step.X) == 0 {
		return ErrNoStep
	}
	rate := int(math.Round(step.SampleRate))
	if rate <= 0 {
		return fmt.Errorf("export: invalid step sample rate %g", step.SampleRate)
	}

	x := step.X[:len(step.X)/2]
	if len(x) == 0 {
		x = step.X
	}
	full := float64(int(1)<<(WAVBitDepth-1) - 1)
	gain := full * math.Pow(10, -1.0/20)

	data := make([]int, len(x))
	for i, v := range x {
		if math.IsNaN(v) {
			continue
		}
		s := math.Round(v * gain)
		data[i] = int(math.Max(-full, math.Min(full, s)))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: WAVBitDepth,
	}
	enc := wav.NewEncoder(w, rate, WAVBitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("export: writing wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: closing wav encoder: %w", err)
	}
	return nil
}
