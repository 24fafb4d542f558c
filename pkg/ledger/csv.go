package ledger

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Header is the first line written by Save.
const Header = "accountNumber,holderName,balance"

const maxLineSize = 1 << 20

// Load reads a ledger from the delimited file at path.
//
// A missing file yields an empty ledger. Malformed, invalid and duplicate rows are
// skipped; the first occurrence of a number wins. If the file cannot be read at all
// the failure is logged as a warning and the ledger is empty. Load never fails.
func Load(path string, logger *slog.Logger) *Ledger {
	l := New(logger)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("ledger file not found, starting empty", "path", path)
		} else {
			l.logger.Warn("Failed to read ledger file", "path", path, "error", err)
		}
		return l
	}
	defer f.Close() //nolint:errcheck

	loaded, err := Read(f, l.logger)
	if err != nil {
		l.logger.Warn("Failed to read ledger file", "path", path, "error", err)
		return l
	}
	l.logger.Info("Ledger loaded", "path", path, "accounts", loaded.Len())
	return loaded
}

// Read parses delimited rows from r. Only a failure of r itself is returned;
// bad rows are skipped, including rows longer than maxLineSize.
func Read(r io.Reader, logger *slog.Logger) (*Ledger, error) {
	l := New(logger)
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, oversized, err := readRow(br)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		switch {
		case oversized:
			l.logger.Debug("skipping ledger row", "line", lineNo, "error", "line too long")
		case !skipLine(line):
			if perr := l.parseRow(line); perr != nil {
				l.logger.Debug("skipping ledger row", "line", lineNo, "error", perr)
			}
		}
		if err != nil {
			return l, nil
		}
	}
}

// readRow returns the next line without its line ending. A line longer than
// maxLineSize is consumed and reported as oversized instead of being buffered.
func readRow(br *bufio.Reader) (string, bool, error) {
	var (
		buf       []byte
		oversized bool
	)
	for {
		frag, err := br.ReadSlice('\n')
		if !oversized && len(buf)+len(frag) > maxLineSize {
			oversized, buf = true, nil
		}
		if !oversized {
			buf = append(buf, frag...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		line := strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r")
		return line, oversized, err
	}
}

// Save writes the ledger to path, creating parent directories and replacing any
// existing file.
func (l *Ledger) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	var buf bytes.Buffer
	if err := l.Write(&buf); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	l.logger.Info("Ledger saved", "path", path, "accounts", l.Len())
	return nil
}

// Write renders the header and one row per account, in ledger order.
func (l *Ledger) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, a := range l.accounts {
		if _, err := bw.WriteString(a.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func skipLine(line string) bool {
	return strings.TrimSpace(line) == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "accountNumber")
}

// parseRow splits naively on commas; quoting is not supported, so holder names
// containing a comma do not survive a round trip.
func (l *Ledger) parseRow(line string) error {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return fmt.Errorf("expected 3 fields, got %d", len(parts))
	}
	number := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	balance, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return err
	}
	return l.restore(number, name, balance)
}
