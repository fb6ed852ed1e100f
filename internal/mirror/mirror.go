package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Kind identifies one mirrored entity and its spreadsheet file.
type Kind string

const (
	KindStudents Kind = "students"
	KindContacts Kind = "contact_messages"
	KindAbout    Kind = "about_inquiries"
)

type sheetSpec struct {
	file    string
	sheet   string
	headers []string
}

var sheets = map[Kind]sheetSpec{
	KindStudents: {
		file:    "students.xlsx",
		sheet:   "Students",
		headers: []string{"ID", "Name", "Email", "Phone", "Course", "Amount", "Payment ID", "Order ID", "Payment Status", "Registration Date"},
	},
	KindContacts: {
		file:    "contact_messages.xlsx",
		sheet:   "Contact Messages",
		headers: []string{"ID", "Name", "Email", "Phone", "Subject", "Message", "Submitted At"},
	},
	KindAbout: {
		file:    "about_inquiries.xlsx",
		sheet:   "About Inquiries",
		headers: []string{"ID", "Name", "Email", "Subject", "Message", "Submitted At"},
	},
}

// Store keeps one spreadsheet file per entity under a base directory.
// Every append is a whole-file read-modify-rewrite, serialized per entity
// so concurrent requests cannot lose each other's rows.
type Store struct {
	dir   string
	locks map[Kind]*sync.Mutex
}

// NewStore ensures the mirror directory exists and returns a handle.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "./exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror directory: %w", err)
	}
	locks := make(map[Kind]*sync.Mutex, len(sheets))
	for kind := range sheets {
		locks[kind] = &sync.Mutex{}
	}
	return &Store{dir: dir, locks: locks}, nil
}

// AppendRow appends one labeled row to the entity's sheet and rewrites the
// file. I/O errors and corrupt workbooks propagate to the caller, which
// uses them to abort the surrounding transaction.
func (s *Store) AppendRow(kind Kind, row []string) error {
	spec, ok := sheets[kind]
	if !ok {
		return fmt.Errorf("unknown mirror kind %q", kind)
	}
	mu := s.locks[kind]
	mu.Lock()
	defer mu.Unlock()

	path := filepath.Join(s.dir, spec.file)

	var f *excelize.File
	nextRow := 2
	if _, statErr := os.Stat(path); statErr == nil {
		var err error
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("open mirror file %s: %w", spec.file, err)
		}
		rows, err := f.GetRows(spec.sheet)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("read mirror sheet %s: %w", spec.sheet, err)
		}
		nextRow = len(rows) + 1
	} else if os.IsNotExist(statErr) {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", spec.sheet); err != nil {
			_ = f.Close()
			return fmt.Errorf("name mirror sheet %s: %w", spec.sheet, err)
		}
		if err := writeRow(f, spec.sheet, 1, spec.headers); err != nil {
			_ = f.Close()
			return err
		}
	} else {
		return fmt.Errorf("stat mirror file %s: %w", spec.file, statErr)
	}
	defer f.Close() //nolint:errcheck

	if err := writeRow(f, spec.sheet, nextRow, row); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write mirror file %s: %w", spec.file, err)
	}
	return nil
}

// Open returns a read handle for a mirror file by its exact base name.
// Unknown names report os.ErrNotExist so callers can answer 404.
func (s *Store) Open(name string) (*os.File, error) {
	for _, spec := range sheets {
		if spec.file == name {
			return os.Open(filepath.Join(s.dir, name))
		}
	}
	return nil, os.ErrNotExist
}

func writeRow(f *excelize.File, sheet string, rowIndex int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return fmt.Errorf("locate mirror row %d: %w", rowIndex, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("append mirror row: %w", err)
	}
	return nil
}
