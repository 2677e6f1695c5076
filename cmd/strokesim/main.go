// Command strokesim replays a pointer trace through the intensity grid and
// prints the resulting 784-element vector. It exists so classifier pipelines
// can be fed without opening a window.
//
// Trace format, one event per line:
//
//	down <x> <y>
//	move <x> <y>
//	up
//	cancel
//	clear
//
// Coordinates are surface pixels; blank lines and #-comments are skipped.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"inkpad/grid"
)

func main() {
	var (
		cell   = flag.Float64("cell", grid.DefaultCellSize, "Cell size in pixels.")
		radius = flag.Float64("radius", 0, "Brush radius in pixels (0 = cell size * sqrt(2)/2).")
		format = flag.String("format", "json", "Output format: json or text.")
		in     = flag.String("f", "-", "Trace file (- = stdin).")
	)
	flag.Parse()

	r := io.Reader(os.Stdin)
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	g := grid.New(grid.Config{CellSize: *cell, Radius: *radius})
	if err := replay(r, g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := emit(os.Stdout, g.Values(), *format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// replay feeds the trace into the grid line by line.
func replay(r io.Reader, g *grid.Grid) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "down", "move":
			if len(fields) != 3 {
				return fmt.Errorf("line %d: %q wants 2 coordinates", lineNo, fields[0])
			}
			x, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad x %q", lineNo, fields[1])
			}
			y, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad y %q", lineNo, fields[2])
			}
			if fields[0] == "down" {
				g.Begin(x, y)
			} else {
				g.Move(x, y)
			}
		case "up", "cancel":
			g.End()
		case "clear":
			g.Clear()
		default:
			return fmt.Errorf("line %d: unknown event %q", lineNo, fields[0])
		}
	}
	return sc.Err()
}

// emit writes the vector: "json" as {"values":[...]}, "text" as 28 rows of
// space-separated intensities.
func emit(w io.Writer, vals []float64, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(map[string][]float64{"values": vals})
	case "text":
		for row := 0; row < grid.Rows; row++ {
			for col := 0; col < grid.Cols; col++ {
				if col > 0 {
					if _, err := fmt.Fprint(w, " "); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, "%.3f", vals[row*grid.Cols+col]); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
