package service

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// CsvStore — append-only запись в именованные csv-хранилища.
// Файл создаётся с заголовком, если его ещё нет; существующие строки
// никогда не перезаписываются и не обрезаются.
type CsvStore struct {
	mu sync.Mutex
}

func NewCsvStore() *CsvStore {
	return &CsvStore{}
}

func (s *CsvStore) Append(path string, header []string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir logs dir")
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open csv")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "stat csv")
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(header); err != nil {
			return errors.Wrap(err, "write csv header")
		}
	}
	if err := w.Write(row); err != nil {
		return errors.Wrap(err, "write csv row")
	}
	w.Flush()

	return errors.Wrap(w.Error(), "flush csv")
}
