package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/verte-zerg/ultramac/internal/model"
)

var csvHeader = []string{"Username", "DateTime", "Score"}

var safeUsername = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// CSV keeps one append-only file per user, <dir>/<username>.csv, with the
// columns Username, DateTime and Score.
type CSV struct {
	dir string
	mu  sync.Mutex
}

// OpenCSV creates dir if needed and returns a CSV store rooted there.
func OpenCSV(dir string) (*CSV, error) {
	if dir == "" {
		return nil, fmt.Errorf("csv store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &CSV{dir: dir}, nil
}

// Close implements ScoreStore; files are opened per call.
func (s *CSV) Close() error {
	return nil
}

func (s *CSV) path(username string) (string, error) {
	if err := CheckUsername(BackendCSV, username); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, username+".csv"), nil
}

// Append adds one row to the user's file, writing the header first if the
// file is new.
func (s *CSV) Append(_ context.Context, rec model.ScoreRecord) error {
	path, err := s.path(rec.Username)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return err
	}

	w := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = file.Close()
			return err
		}
	}
	if err := w.Write([]string{rec.Username, rec.Timestamp(), strconv.Itoa(rec.Score)}); err != nil {
		_ = file.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Query reads every row of the user's file. A missing file means no games.
func (s *CSV) Query(_ context.Context, username string) ([]model.ScoreRecord, error) {
	path, err := s.path(username)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only score file.
			_ = cerr
		}
	}()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)
	r.TrimLeadingSpace = true

	var records []model.ScoreRecord
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if line == 1 && row[0] == csvHeader[0] {
			continue
		}
		// Rows for other users are tolerated and skipped.
		if row[0] != username {
			continue
		}
		playedAt, err := model.ParseTimestamp(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		score, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		records = append(records, model.ScoreRecord{
			Username: row[0],
			PlayedAt: playedAt,
			Score:    score,
		})
	}
	return records, nil
}

// Users lists the users that have a score file.
func (s *CSV) Users(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	users := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		users = append(users, strings.TrimSuffix(entry.Name(), ".csv"))
	}
	sort.Strings(users)
	return users, nil
}
