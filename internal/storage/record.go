package storage

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/splitbox/internal/frame"
)

// Record is one row of frames.csv.
type Record struct {
	Time     float64 `json:"time"`
	Nodes    int     `json:"nodes"`
	Leaves   int     `json:"leaves"`
	Depth    int     `json:"depth"`
	Vertices int     `json:"vertices"`
	Replaced bool    `json:"replaced"`
	Lost     bool    `json:"lost"`
}

func RecordOf(f *frame.Frame) Record {
	return Record{
		Time:     f.Time,
		Nodes:    f.Tree.Nodes,
		Leaves:   f.Tree.Leaves,
		Depth:    f.Tree.MaxDepth,
		Vertices: f.Vertices,
		Replaced: f.Replaced,
		Lost:     f.Lost,
	}
}

// Recorder is a frame.Observer that keeps one Record per frame.
type Recorder struct {
	Records []Record
}

func (r *Recorder) OnFrame(f *frame.Frame) {
	r.Records = append(r.Records, RecordOf(f))
}

func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.FormatFloat(rec.Time, 'f', 3, 64),
			strconv.Itoa(rec.Nodes),
			strconv.Itoa(rec.Leaves),
			strconv.Itoa(rec.Depth),
			strconv.Itoa(rec.Vertices),
			strconv.FormatBool(rec.Replaced),
			strconv.FormatBool(rec.Lost),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
