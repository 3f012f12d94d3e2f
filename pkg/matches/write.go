package matches

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/cfoust/courtelo/pkg/config"
	"github.com/cfoust/courtelo/pkg/ratings"

	"github.com/fxamacker/cbor/v2"
	"github.com/repeale/fp-go"
)

// Names of the computed columns.
const (
	ColumnAElo                 = "A_Elo"
	ColumnBElo                 = "B_Elo"
	ColumnASurfaceElo          = "A_Surface_Elo"
	ColumnBSurfaceElo          = "B_Surface_Elo"
	ColumnEloPrediction        = "Elo_Prediction"
	ColumnSurfaceEloPrediction = "Surface_Elo_Prediction"
)

// Row is the serialized form of a rated match.
type Row struct {
	PlayerA              string  `json:"playerA"`
	PlayerB              string  `json:"playerB"`
	Surface              string  `json:"surface"`
	Date                 string  `json:"date"`
	AWon                 bool    `json:"aWon"`
	AElo                 float64 `json:"A_Elo"`
	BElo                 float64 `json:"B_Elo"`
	ASurfaceElo          float64 `json:"A_Surface_Elo"`
	BSurfaceElo          float64 `json:"B_Surface_Elo"`
	EloPrediction        float64 `json:"Elo_Prediction"`
	SurfaceEloPrediction float64 `json:"Surface_Elo_Prediction"`
}

// Writer serializes rated matches in the configured format, naming input
// columns the same way they were read.
type Writer struct {
	format  config.OutputFormat
	columns config.Columns
	layout  string
}

func NewWriter(format config.OutputFormat, input config.InputSettings) *Writer {
	return &Writer{
		format:  format,
		columns: input.Columns,
		layout:  input.DateLayout,
	}
}

func (w *Writer) Rows(rated []ratings.RatedMatch) []Row {
	return fp.Map(func(match ratings.RatedMatch) Row {
		return Row{
			PlayerA:              match.PlayerA,
			PlayerB:              match.PlayerB,
			Surface:              match.Surface,
			Date:                 match.Date.Format(w.layout),
			AWon:                 match.AWon,
			AElo:                 match.AElo,
			BElo:                 match.BElo,
			ASurfaceElo:          match.ASurfaceElo,
			BSurfaceElo:          match.BSurfaceElo,
			EloPrediction:        match.EloPrediction,
			SurfaceEloPrediction: match.SurfaceEloPrediction,
		}
	})(rated)
}

func (w *Writer) Write(out io.Writer, rated []ratings.RatedMatch) error {
	err := w.format.Validate()
	if err != nil {
		return err
	}

	rows := w.Rows(rated)

	switch w.format {
	case config.OutputFormatCSV:
		return w.writeCSV(out, rows)
	case config.OutputFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case config.OutputFormatCBOR:
		return cbor.NewEncoder(out).Encode(rows)
	}

	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (w *Writer) writeCSV(out io.Writer, rows []Row) error {
	table := csv.NewWriter(out)

	err := table.Write([]string{
		w.columns.PlayerA,
		w.columns.PlayerB,
		w.columns.Surface,
		w.columns.Date,
		w.columns.AWon,
		ColumnAElo,
		ColumnBElo,
		ColumnASurfaceElo,
		ColumnBSurfaceElo,
		ColumnEloPrediction,
		ColumnSurfaceEloPrediction,
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = table.Write([]string{
			row.PlayerA,
			row.PlayerB,
			row.Surface,
			row.Date,
			strconv.FormatBool(row.AWon),
			formatFloat(row.AElo),
			formatFloat(row.BElo),
			formatFloat(row.ASurfaceElo),
			formatFloat(row.BSurfaceElo),
			formatFloat(row.EloPrediction),
			formatFloat(row.SurfaceEloPrediction),
		})
		if err != nil {
			return err
		}
	}

	table.Flush()
	return table.Error()
}
