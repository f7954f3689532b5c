package terrain

import "hash/crc32"

// fingerprinter accumulates one generation's active-cell bitmap into a CRC-32
// digest. Rows are fed top to bottom; within a row, active columns are packed
// LSB-first into a fixed-width byte vector, so the digest is a pure function
// of the bitmap and two identical patterns always hash identically.
type fingerprinter struct {
	sum uint32
	row []byte
}

func newFingerprinter(size int) *fingerprinter {
	return &fingerprinter{row: make([]byte, (size+7)/8)}
}

func (f *fingerprinter) reset() { f.sum = 0 }

func (f *fingerprinter) beginRow() {
	for i := range f.row {
		f.row[i] = 0
	}
}

func (f *fingerprinter) mark(col int) {
	f.row[col>>3] |= 1 << (col & 7)
}

func (f *fingerprinter) endRow() {
	f.sum = crc32.Update(f.sum, crc32.IEEETable, f.row)
}

func (f *fingerprinter) value() uint32 { return f.sum }
