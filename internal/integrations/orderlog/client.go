package orderlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

// Client журнал заказов в табличном файле (xlsx), только дозапись
// Книга держится в памяти после первого открытия; файл принадлежит сервису целиком,
// правки со стороны между записями будут перезаписаны
type Client struct {
	path  string
	sheet string

	mu   sync.Mutex
	file *excelize.File
	next int
}

// NewClient создает клиент журнала заказов
func NewClient(path, sheet string) *Client {
	if len(sheet) > maxSheetNameLen {
		sheet = sheet[:maxSheetNameLen]
	}
	return &Client{path: path, sheet: sheet}
}

// Append дописывает строку в конец листа; файл и лист создаются при первой записи
func (c *Client) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return err
	}

	err := writeRow(c.file, c.sheet, c.next, entry.row())
	if err == nil {
		err = c.save()
	}
	if err != nil {
		// Книга в памяти могла разойтись с файлом, следующая запись перечитает его
		c.reset()
		return err
	}
	c.next++
	return nil
}

// Close закрывает книгу в памяти
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

// load открывает книгу один раз и запоминает номер следующей строки
func (c *Client) load() error {
	if c.file != nil {
		return nil
	}

	f, err := c.open()
	if err != nil {
		return err
	}

	rows, err := f.GetRows(c.sheet)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: read rows: %v", ErrWriteRow, err)
	}

	next := len(rows) + 1
	if len(rows) == 0 {
		if err := writeRow(f, c.sheet, 1, toRow(header)); err != nil {
			f.Close()
			return err
		}
		next = 2
	}

	c.file = f
	c.next = next
	return nil
}

// save пишет книгу во временный файл рядом и атомарно подменяет им журнал
func (c *Client) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(c.path), "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrSaveWorkbook, err)
	}
	tmpName := tmp.Name()

	if _, err := c.file.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveWorkbook, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync: %v", ErrSaveWorkbook, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveWorkbook, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrSaveWorkbook, err)
	}
	return nil
}

func (c *Client) reset() {
	if c.file != nil {
		c.file.Close()
	}
	c.file = nil
	c.next = 0
}

func (c *Client) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create dir: %v", ErrOpenWorkbook, err)
		}
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", c.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: rename sheet: %v", ErrOpenWorkbook, err)
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenWorkbook, err)
	}

	idx, err := f.GetSheetIndex(c.sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: lookup sheet: %v", ErrOpenWorkbook, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(c.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: create sheet: %v", ErrOpenWorkbook, err)
		}
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteRow, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteRow, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
