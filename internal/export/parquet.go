package export

import (
	"fmt"
	"io"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/cwbudde/algo-speaker/speaker/sim"
)

// Row is the parquet record of one frequency. Unreliable values are NaN.
type Row struct {
	Freq           float64 `parquet:"freq_hz"`
	ZRe            float64 `parquet:"z_re"`
	ZIm            float64 `parquet:"z_im"`
	ZMag           float64 `parquet:"z_mag"`
	ZPhaseDeg      float64 `parquet:"z_phase_deg"`
	SPL            float64 `parquet:"spl_db"`
	SPLPhaseDeg    float64 `parquet:"spl_phase_deg"`
	DisplacementMM float64 `parquet:"displacement_mm"`
	Velocity       float64 `parquet:"velocity_m_s"`
	GroupDelayMS   float64 `parquet:"group_delay_ms"`
	Reliable       bool    `parquet:"reliable"`
	OutOfModel     bool    `parquet:"out_of_model"`
}

// Rows flattens res into one Row per frequency.
func Rows(res *sim.Results) []Row {
	rows := make([]Row, len(res.Freq))
	for i := range rows {
		rows[i] = Row{
			Freq:           res.Freq[i],
			ZRe:            real(res.Z[i]),
			ZIm:            imag(res.Z[i]),
			ZMag:           res.ZMag[i],
			ZPhaseDeg:      res.ZPhaseDeg[i],
			SPL:            res.SPL[i],
			SPLPhaseDeg:    res.SPLPhaseDeg[i],
			DisplacementMM: res.DisplacementMM[i],
			Velocity:       res.Velocity[i],
			GroupDelayMS:   res.GroupDelayMS[i],
			Reliable:       res.Reliable[i],
			OutOfModel:     res.OutOfModel[i],
		}
	}
	return rows
}

// Parquet writes res as a snappy-compressed parquet file.
func Parquet(w io.Writer, res *sim.Results) error {
	pw := parquet.NewGenericWriter[Row](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(Rows(res)); err != nil {
		return fmt.Errorf("export: writing parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("export: closing parquet writer: %w", err)
	}
	return nil
}
