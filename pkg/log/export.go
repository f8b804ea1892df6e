package log

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Export writes entries to w as zstd-compressed JSON lines.
func Export(w io.Writer, entries []Entry) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd: failed to initialize encoder: %w", err)
	}
	for _, e := range entries {
		if _, err := io.WriteString(enc, e.LogData); err != nil {
			_ = enc.Close()
			return fmt.Errorf("export: failed to write entry %d: %w", e.ID, err)
		}
		if len(e.LogData) == 0 || e.LogData[len(e.LogData)-1] != '\n' {
			if _, err := io.WriteString(enc, "\n"); err != nil {
				_ = enc.Close()
				return fmt.Errorf("export: failed to write entry %d: %w", e.ID, err)
			}
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: failed to close writer: %w", err)
	}
	return nil
}

// ReadExport decompresses a stream written by Export.
func ReadExport(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: failed to initialize decoder: %w", err)
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("export: failed to read data: %w", err)
	}
	return data, nil
}
