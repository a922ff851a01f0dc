package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"

	"github.com/leftmike/colfilter/filter"
)

type ReadOptions struct {
	// Separator splits cells; empty means runs of white space.
	Separator    string
	HumanNumbers bool
}

func splitLine(line, sep string) []string {
	if sep == "" {
		return strings.Fields(line)
	}
	cells := strings.Split(line, sep)
	for cdx := range cells {
		cells[cdx] = strings.TrimSpace(cells[cdx])
	}
	return cells
}

// Read reads a table from r. The first non-empty line is the header; a header cell of the form
// NAME:type gives the column a type. With white space separators, extra cells at the end of a
// row are joined into the last column.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	var t *Table

	scnr := bufio.NewScanner(r)
	scnr.Buffer(nil, 1024*1024)
	lineNum := 0
	for scnr.Scan() {
		lineNum += 1
		line := scnr.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitLine(line, opts.Separator)

		if t == nil {
			var cols []Column
			for _, cell := range cells {
				col := Column{Name: cell}
				if cdx := strings.LastIndexByte(cell, ':'); cdx > 0 {
					dt, ok := filter.ParseDataType(cell[cdx+1:])
					if !ok {
						return nil, fmt.Errorf("table: line %d: unknown column type: %s",
							lineNum, cell[cdx+1:])
					}
					col = Column{Name: cell[:cdx], Type: dt}
				}
				cols = append(cols, col)
			}
			t = New(cols, opts.HumanNumbers)
			continue
		}

		if opts.Separator == "" && len(cells) > len(t.Columns) && len(t.Columns) > 0 {
			last := len(t.Columns) - 1
			cells = append(cells[:last], strings.Join(cells[last:], " "))
		}
		err := t.Append(cells)
		if err != nil {
			return nil, fmt.Errorf("table: line %d: %s", lineNum, err)
		}
	}
	if err := scnr.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("table: missing header")
	}

	log.WithFields(log.Fields{
		"columns": len(t.Columns),
		"rows":    len(t.Rows),
	}).Debug("table read")
	return t, nil
}

// Open reads a table from a file; "-" is standard input. Files ending in .gz or .zst are
// decompressed.
func Open(path string, opts ReadOptions) (*Table, error) {
	if path == "-" {
		return Read(os.Stdin, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch filepath.Ext(path) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("table: %s: %s", path, err)
		}
		defer gr.Close()
		r = gr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("table: %s: %s", path, err)
		}
		defer zr.Close()
		r = zr
	}

	log.WithField("path", path).Debug("opening table")
	return Read(r, opts)
}
