package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jvs-project/helpdesk/pkg/fsutil"
	"github.com/jvs-project/helpdesk/pkg/logging"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// FileStore keeps tickets in a CSV file.
type FileStore struct {
	path string
	log  *logging.Logger
}

// NewFileStore returns a store backed by path. An empty path means
// DefaultFile in the working directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	return &FileStore{
		path: path,
		log:  logging.WithFields(map[string]any{"component": "store", "file": path}),
	}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads every ticket from the file.
func (s *FileStore) Load() ([]model.Ticket, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.log.Debug("ticket file missing, starting empty")
		return []model.Ticket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open tickets: %w", err)
	}
	defer f.Close()

	tickets, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.log.Debug("tickets loaded", map[string]any{"count": len(tickets)})
	return tickets, nil
}

// Append adds one row, writing the header first when the file is new or
// empty. Rows follow the column order of the existing header; a header the
// store cannot read is rejected before anything is written.
func (s *FileStore) Append(t model.Ticket) error {
	return fsutil.WithLock(s.path, func() error {
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open tickets: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat tickets: %w", err)
		}

		columns, withHeader := Columns, info.Size() == 0
		if !withHeader {
			columns, err = readHeader(csv.NewReader(io.NewSectionReader(f, 0, info.Size())))
			if err == io.EOF {
				columns, withHeader = Columns, true
			} else if err != nil {
				return fmt.Errorf("append ticket: %w", err)
			}
			if err := terminateLastLine(f, info.Size()); err != nil {
				return err
			}
		}

		if err := encode(f, []model.Ticket{t}, columns, withHeader); err != nil {
			return fmt.Errorf("append ticket: %w", err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync tickets: %w", err)
		}
		s.log.Info("ticket appended", map[string]any{"ticket_id": t.ID})
		return nil
	})
}

// terminateLastLine adds a newline when the file does not end with one, so
// the appended row starts on its own line.
func terminateLastLine(f *os.File, size int64) error {
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return fmt.Errorf("read tickets: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err := f.Write([]byte("\n")); err != nil {
		return fmt.Errorf("append ticket: %w", err)
	}
	return nil
}

// SaveAll rewrites the file from tickets.
func (s *FileStore) SaveAll(tickets []model.Ticket) error {
	var buf bytes.Buffer
	if err := encode(&buf, tickets, Columns, true); err != nil {
		return fmt.Errorf("encode tickets: %w", err)
	}
	return fsutil.WithLock(s.path, func() error {
		if err := fsutil.AtomicWrite(s.path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("save tickets: %w", err)
		}
		s.log.Info("tickets saved", map[string]any{"count": len(tickets)})
		return nil
	})
}
