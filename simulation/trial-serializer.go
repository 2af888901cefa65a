package simulation

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// TrialSeries is the accumulated outcome of a repeated experiment: one
// purchase rate per (trial, policy), with the policy order recorded once.
type TrialSeries struct {
	Policies []string
	// Rates is indexed (trial, policy).
	Rates [][]float64
}

// SaveTrialSeries writes the series as an lz4-compressed binary file:
// dimensions first, then length-prefixed policy names, then the rate
// matrix row by row in little-endian float64.
func SaveTrialSeries(path string, s *TrialSeries) error {
	trials := int32(len(s.Rates))
	policies := int32(len(s.Policies))
	if policies == 0 {
		return fmt.Errorf("empty policy list")
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, trials)
	binary.Write(&buf, binary.LittleEndian, policies)

	for _, name := range s.Policies {
		binary.Write(&buf, binary.LittleEndian, int32(len(name)))
		buf.WriteString(name)
	}

	for _, row := range s.Rates {
		if int32(len(row)) != policies {
			return fmt.Errorf("ragged rate row: got %d values, want %d", len(row), policies)
		}
		binary.Write(&buf, binary.LittleEndian, row)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trial series file: %w", err)
	}
	defer file.Close()

	zw := lz4.NewWriter(file)
	if _, err := io.Copy(zw, &buf); err != nil {
		return fmt.Errorf("failed to compress trial series: %w", err)
	}
	return zw.Close()
}

// LoadTrialSeries reads a file written by SaveTrialSeries.
func LoadTrialSeries(path string) (*TrialSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trial series file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(lz4.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress trial series: %w", err)
	}
	buf := bytes.NewReader(raw)

	var trials, policies int32
	if err := binary.Read(buf, binary.LittleEndian, &trials); err != nil {
		return nil, fmt.Errorf("failed to read trial count: %w", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &policies); err != nil {
		return nil, fmt.Errorf("failed to read policy count: %w", err)
	}
	if trials < 0 || policies < 0 {
		return nil, fmt.Errorf("invalid dimensions: %d trials, %d policies", trials, policies)
	}

	s := &TrialSeries{
		Policies: make([]string, policies),
		Rates:    make([][]float64, trials),
	}
	for i := range s.Policies {
		var n int32
		if err := binary.Read(buf, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("failed to read policy name length: %w", err)
		}
		if n < 0 || int(n) > buf.Len() {
			return nil, fmt.Errorf("invalid policy name length %d", n)
		}
		name := make([]byte, n)
		if _, err := io.ReadFull(buf, name); err != nil {
			return nil, fmt.Errorf("failed to read policy name: %w", err)
		}
		s.Policies[i] = string(name)
	}
	for t := range s.Rates {
		row := make([]float64, policies)
		if err := binary.Read(buf, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("failed to read rate row %d: %w", t, err)
		}
		s.Rates[t] = row
	}

	return s, nil
}
