package knowledge

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// The vector blob is a NumPy v1/v2 .npy file holding a C-ordered little-endian float32 matrix
// of shape (N, D), the format the corpus tooling has always produced.

var npyMagic = []byte("\x93NUMPY")

var (
	npyDescrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']+)'`)
	npyFortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(\s*(\d+)\s*,\s*(\d+)\s*,?\s*\)`)
)

// maxNPYElements bounds what a header may ask for (1 GiB of float32).
const maxNPYElements = 1 << 28

// ReadNPY decodes a 2-D float32 matrix. When r can report its size (files, bytes and strings
// readers) the header shape must fit in it.
func ReadNPY(r io.Reader) ([][]float32, error) {
	size := readerSize(r)
	br := bufio.NewReader(r)

	magic := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read npy magic: %w", err)
	}
	if !bytes.Equal(magic[:len(npyMagic)], npyMagic) {
		return nil, errors.New("not an npy file")
	}

	var headerLen int
	switch major := magic[len(npyMagic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("read npy header length: %w", err)
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("read npy header length: %w", err)
		}
		headerLen = int(n)
	default:
		return nil, fmt.Errorf("unsupported npy version %d", major)
	}

	if headerLen > 1<<20 {
		return nil, fmt.Errorf("npy header length %d is too large", headerLen)
	}
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("read npy header: %w", err)
	}
	h := string(header)

	descr := npyDescrRe.FindStringSubmatch(h)
	if descr == nil || (descr[1] != "<f4" && descr[1] != "|f4") {
		return nil, fmt.Errorf("npy dtype must be little-endian float32, got header %q", strings.TrimSpace(h))
	}
	if m := npyFortranRe.FindStringSubmatch(h); m != nil && m[1] == "True" {
		return nil, errors.New("fortran-ordered npy arrays are not supported")
	}
	shape := npyShapeRe.FindStringSubmatch(h)
	if shape == nil {
		return nil, fmt.Errorf("npy array must be 2-D, got header %q", strings.TrimSpace(h))
	}
	rows, errRows := strconv.Atoi(shape[1])
	cols, errCols := strconv.Atoi(shape[2])
	if errRows != nil || errCols != nil || rows > maxNPYElements || cols > maxNPYElements ||
		(cols > 0 && rows > maxNPYElements/cols) {
		return nil, fmt.Errorf("npy shape (%s, %s) is too large", shape[1], shape[2])
	}
	if size >= 0 {
		prefix := int64(len(magic)) + int64(headerLen)
		if major := magic[len(npyMagic)]; major == 1 {
			prefix += 2
		} else {
			prefix += 4
		}
		if want := 4 * int64(rows) * int64(cols); want > size-prefix {
			return nil, fmt.Errorf("npy shape (%d, %d) needs %d bytes, file has %d", rows, cols, want, size-prefix)
		}
	}

	buf := make([]byte, 4*cols)
	out := make([][]float32, 0, min(rows, 4096))
	for i := 0; i < rows; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("read npy row %d: %w", i, err)
		}
		row := make([]float32, cols)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
		}
		out = append(out, row)
	}
	return out, nil
}

// readerSize returns the total byte size of r, or -1 when it cannot tell.
func readerSize(r io.Reader) int64 {
	switch v := r.(type) {
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := v.Stat(); err == nil && fi.Mode().IsRegular() {
			return fi.Size()
		}
	case interface{ Size() int64 }:
		return v.Size()
	}
	return -1
}

// WriteNPY encodes rows as a version 1.0 .npy file. Every row must have the same length.
func WriteNPY(w io.Writer, rows [][]float32) error {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	for i, r := range rows {
		if len(r) != cols {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(r), cols)
		}
	}

	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d, %d), }", len(rows), cols)
	// magic(6) + version(2) + len(2) + header + '\n' must be a multiple of 64.
	total := len(npyMagic) + 2 + 2 + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	header += "\n"

	bw := bufio.NewWriter(w)
	bw.Write(npyMagic)
	bw.Write([]byte{1, 0})
	if err := binary.Write(bw, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	bw.WriteString(header)

	buf := make([]byte, 4)
	for _, r := range rows {
		for _, v := range r {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
