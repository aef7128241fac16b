// Package patch writes generated files without clobbering existing ones and
// patches shared engine files after taking a .bak copy.
package patch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Outcome tells whether WriteIfAbsent wrote the file.
type Outcome int

const (
	Created Outcome = iota
	Skipped
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// FileError is a filesystem failure during a write or patch.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

func fileErr(op, path string, err error) error {
	return errors.WithStack(&FileError{Op: op, Path: path, Err: err})
}

// WriteIfAbsent writes content to path unless path already exists.
// Parent directories are created as needed.
func WriteIfAbsent(path, content string) (Outcome, error) {
	if _, err := os.Stat(path); err == nil {
		return Skipped, nil
	} else if !os.IsNotExist(err) {
		return 0, fileErr("stat", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fileErr("mkdir", filepath.Dir(path), err)
	}
	// O_EXCL keeps a file created after the Stat above.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return Skipped, nil
		}
		return 0, fileErr("create", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return 0, fileErr("write", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fileErr("close", path, err)
	}
	return Created, nil
}

// BackupPath returns path with its extension replaced by ".bak".
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".bak"
}

// Backup copies path to BackupPath(path), replacing any previous backup,
// and returns the backup path. The original is never touched, so a path
// that is already a .bak file is refused.
func Backup(path string) (string, error) {
	dst := BackupPath(path)
	if filepath.Clean(dst) == filepath.Clean(path) {
		return "", fileErr("backup", path, errors.New("file is its own backup"))
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fileErr("backup", path, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fileErr("backup", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fileErr("backup", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", fileErr("backup", dst, err)
	}
	return dst, nil
}

// BackupAndAppend backs up path, then appends content to it.
func BackupAndAppend(path, content string) error {
	if _, err := Backup(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fileErr("append", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fileErr("append", path, err)
	}
	if err := f.Close(); err != nil {
		return fileErr("append", path, err)
	}
	return nil
}

// BackupAndInsertAfterSentinel backs up path, then rewrites it with content
// placed by InsertAfterSentinel.
func BackupAndInsertAfterSentinel(path, content, sentinel string) error {
	if _, err := Backup(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fileErr("read", path, err)
	}
	patched := InsertAfterSentinel(string(data), content, sentinel)
	if err := os.WriteFile(path, []byte(patched), 0644); err != nil {
		return fileErr("rewrite", path, err)
	}
	return nil
}

// InsertAfterSentinel inserts content as new lines after the first line of
// text that contains sentinel. When that line is the last line, or no line
// matches, content becomes the new last line. A trailing newline in text is
// kept, and inserted lines use CRLF when text does.
func InsertAfterSentinel(text, content, sentinel string) string {
	eol := "\n"
	if strings.Contains(text, "\r\n") {
		eol = "\r\n"
	}
	trailingNewline := strings.HasSuffix(text, eol)

	var lines []string
	if text != "" {
		lines = strings.Split(strings.TrimSuffix(text, eol), eol)
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	insert := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	at := len(lines)
	for i, line := range lines {
		if strings.Contains(line, sentinel) {
			at = i + 1
			break
		}
	}

	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)

	result := strings.Join(out, eol)
	if trailingNewline {
		result += eol
	}
	return result
}
