/*
 * report.go, part of hbocc.
 *
 * Copyright 2024 The hbocc Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package report writes the results of an occupancy run as CSV tables, a ranked
// text listing, or JSON.
package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rmera/hbocc"
)

// PairHeader and ResidueHeader are the column names of the pair and residue tables.
var (
	PairHeader    = []string{"Protein_Chain", "Protein_ResName", "Protein_ResID", "Protein_Atom", "Ligand_ResName", "Ligand_ResID", "Ligand_Atom", "Occupancy_Percent"}
	ResidueHeader = []string{"Protein_Chain", "Protein_ResName", "Protein_ResID", "Occupancy_Percent"}
)

// FormatOccupancy returns the shortest representation of occ that reads back
// to the same value, always with a decimal point: 50 gives "50.0".
func FormatOccupancy(occ float64) string {
	s := strconv.FormatFloat(occ, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WritePairsCSV writes the pair rows as a CSV table with a header line.
func WritePairsCSV(w io.Writer, rows []hbocc.PairRow) error {
	c := csv.NewWriter(w)
	if err := c.Write(PairHeader); err != nil {
		return fmt.Errorf("writing pair table header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.ProteinChain),
			r.ProteinResName,
			strconv.Itoa(r.ProteinResID),
			r.ProteinAtom,
			r.LigandResName,
			strconv.Itoa(r.LigandResID),
			r.LigandAtom,
			FormatOccupancy(r.Occupancy),
		}
		if err := c.Write(rec); err != nil {
			return fmt.Errorf("writing pair table: %w", err)
		}
	}
	c.Flush()
	return c.Error()
}

// WriteResiduesCSV writes the residue rows as a CSV table with a header line.
func WriteResiduesCSV(w io.Writer, rows []hbocc.ResidueRow) error {
	c := csv.NewWriter(w)
	if err := c.Write(ResidueHeader); err != nil {
		return fmt.Errorf("writing residue table header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.ProteinChain),
			r.ProteinResName,
			strconv.Itoa(r.ProteinResID),
			FormatOccupancy(r.Occupancy),
		}
		if err := c.Write(rec); err != nil {
			return fmt.Errorf("writing residue table: %w", err)
		}
	}
	c.Flush()
	return c.Error()
}

// WriteRanked writes one "Asp12 - 50.0%" line per residue row, in order.
func WriteRanked(w io.Writer, rows []hbocc.ResidueRow) error {
	b := bufio.NewWriter(w)
	for _, l := range hbocc.RankedLines(rows) {
		if _, err := fmt.Fprintln(b, l); err != nil {
			return fmt.Errorf("writing ranked residues: %w", err)
		}
	}
	return b.Flush()
}

// Run is the JSON form of a finished run.
type Run struct {
	ID              string             `json:"run_id"`
	Created         time.Time          `json:"created"`
	Topology        string             `json:"topology,omitempty"`
	HBonds          string             `json:"hbonds,omitempty"`
	Ligand          string             `json:"ligand"`
	Mode            string             `json:"mode"`
	StartFrame      int                `json:"start_frame"`
	FramesProcessed int                `json:"frames_processed"`
	PairSummary     *hbocc.Summary     `json:"pair_summary,omitempty"`
	ResidueSummary  *hbocc.Summary     `json:"residue_summary,omitempty"`
	Pairs           []hbocc.PairRow    `json:"pairs,omitempty"`
	Residues        []hbocc.ResidueRow `json:"residues,omitempty"`
	Ranked          []string           `json:"ranked,omitempty"`
	Extra           map[string]string  `json:"extra,omitempty"`
}

// NewRun builds the JSON form of res, with a new random id. The source file names
// and the ligand marker are only recorded.
func NewRun(res *hbocc.Result, ligand, topology, hbonds string) *Run {
	R := &Run{
		ID:              uuid.NewString(),
		Created:         time.Now().UTC(),
		Topology:        topology,
		HBonds:          hbonds,
		Ligand:          ligand,
		Mode:            res.Mode.String(),
		StartFrame:      res.StartFrame,
		FramesProcessed: res.FramesProcessed,
	}
	if res.Mode.Pair() {
		s := hbocc.Summarize(hbocc.PairOccupancies(res.Pairs))
		R.PairSummary = &s
		R.Pairs = res.Pairs
	}
	if res.Mode.Residue() {
		s := hbocc.Summarize(hbocc.ResidueOccupancies(res.Residues))
		R.ResidueSummary = &s
		R.Residues = res.Residues
		R.Ranked = hbocc.RankedLines(res.Residues)
	}
	return R
}

// WriteJSON writes R, indented, to w.
func WriteJSON(w io.Writer, R *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(R); err != nil {
		return fmt.Errorf("encoding run %s: %w", R.ID, err)
	}
	return nil
}

// Files are the names of the report files for a prefix.
type Files struct {
	Pairs    string
	Residues string
	Ranked   string
	JSON     string
}

// FileNames returns the report file names for prefix, e.g. "protein_ligand_hbonds.csv".
func FileNames(prefix string) Files {
	return Files{
		Pairs:    prefix + "_hbonds.csv",
		Residues: prefix + "_residues.csv",
		Ranked:   prefix + "_residues.txt",
		JSON:     prefix + ".json",
	}
}

// WriteFiles writes the reports of res that its mode calls for, with names built
// from prefix (see FileNames). If run is not nil, it is also written as JSON.
// It returns the names of the files written.
func WriteFiles(prefix string, res *hbocc.Result, run *Run) ([]string, error) {
	names := FileNames(prefix)
	var written []string
	write := func(name string, f func(io.Writer) error) error {
		out, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := f(out); err != nil {
			out.Close()
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	}
	if res.Mode.Pair() {
		err := write(names.Pairs, func(w io.Writer) error { return WritePairsCSV(w, res.Pairs) })
		if err != nil {
			return written, err
		}
	}
	if res.Mode.Residue() {
		err := write(names.Residues, func(w io.Writer) error { return WriteResiduesCSV(w, res.Residues) })
		if err != nil {
			return written, err
		}
		err = write(names.Ranked, func(w io.Writer) error { return WriteRanked(w, res.Residues) })
		if err != nil {
			return written, err
		}
	}
	if run != nil {
		err := write(names.JSON, func(w io.Writer) error { return WriteJSON(w, run) })
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
