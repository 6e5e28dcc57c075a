// Package audit keeps a tamper-evident history of ticket events.
//
// Each line of the history file is a JSON record carrying the hash of the
// previous record, so editing or dropping a line breaks the chain.
package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/fsutil"
	"github.com/jvs-project/helpdesk/pkg/model"
)

// FileAppender appends ticket events to a JSONL file with a hash chain.
type FileAppender struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileAppender creates a new FileAppender.
func NewFileAppender(path string) *FileAppender {
	return &FileAppender{path: path, now: time.Now}
}

// Path returns the history file.
func (a *FileAppender) Path() string {
	return a.path
}

// Append records one event for ticketID.
func (a *FileAppender) Append(eventType model.TicketEventType, ticketID string, details map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return fsutil.WithLock(a.path, func() error {
		records, err := a.read()
		if err != nil {
			return err
		}
		var prevHash model.HashValue
		if n := len(records); n > 0 {
			prevHash = records[n-1].RecordHash
		}

		record := &model.TicketEvent{
			Timestamp: a.now().UTC(),
			EventType: eventType,
			TicketID:  ticketID,
			Details:   details,
			PrevHash:  prevHash,
		}
		record.RecordHash, err = computeRecordHash(record)
		if err != nil {
			return fmt.Errorf("compute record hash: %w", err)
		}

		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal history record: %w", err)
		}

		f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer f.Close()
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write history record: %w", err)
		}
		return f.Sync()
	})
}

// Records returns every event in file order. A missing file has none.
func (a *FileAppender) Records() ([]model.TicketEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.read()
}

// ForTicket returns the events recorded for one ticket.
func (a *FileAppender) ForTicket(ticketID string) ([]model.TicketEvent, error) {
	all, err := a.Records()
	if err != nil {
		return nil, err
	}
	var out []model.TicketEvent
	for _, r := range all {
		if r.TicketID == ticketID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Verify recomputes every record hash and checks each link to the previous
// record.
func (a *FileAppender) Verify() error {
	records, err := a.Records()
	if err != nil {
		return err
	}
	var prev model.HashValue
	for i := range records {
		r := &records[i]
		if r.PrevHash != prev {
			return errclass.ErrAuditChainBroken.WithMessagef("record %d: prev_hash does not match record %d", i+1, i)
		}
		want, err := computeRecordHash(r)
		if err != nil {
			return fmt.Errorf("compute record hash: %w", err)
		}
		if r.RecordHash != want {
			return errclass.ErrAuditChainBroken.WithMessagef("record %d: content does not match record_hash", i+1)
		}
		prev = r.RecordHash
	}
	return nil
}

func (a *FileAppender) read() ([]model.TicketEvent, error) {
	f, err := os.Open(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	var records []model.TicketEvent
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var r model.TicketEvent
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, errclass.ErrAuditChainBroken.WithMessagef("line %d: %v", line, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}
	return records, nil
}

// computeRecordHash hashes the record without its own RecordHash.
// encoding/json sorts map keys, so Details hashes deterministically.
func computeRecordHash(record *model.TicketEvent) (model.HashValue, error) {
	hashRecord := *record
	hashRecord.RecordHash = ""

	data, err := json.Marshal(hashRecord)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return model.HashValue(hex.EncodeToString(sum[:])), nil
}
