package printer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"Dyed Diesel (Off-Road Use Only)", 16, []string{"Dyed Diesel", "(Off-Road Use", "Only)"}},
		{"short", 32, []string{"short"}},
		{"ABCDEFGHIJ", 4, []string{"ABCD", "EFGH", "IJ"}},
		{"   ", 10, nil},
	}
	for _, tt := range tests {
		got := WrapText(tt.in, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("WrapText(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestKeyValue(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total:", "$15.25")
	if !bytes.Contains(doc.Bytes(), []byte("Total:        $15.25\n")) {
		t.Errorf("KeyValue() = %q", doc.Bytes())
	}

	doc = NewDocument(10)
	doc.KeyValue("Customer:", "Lewis County")
	if !bytes.Contains(doc.Bytes(), []byte("Customer:\nLewis County\n")) {
		t.Errorf("KeyValue() overflow = %q", doc.Bytes())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{Type: TypeNone}, false},
		{Config{}, false},
		{Config{Type: TypeUSB}, true},
		{Config{Type: TypeUSB, USBPath: "/dev/usb/lp0"}, false},
		{Config{Type: TypeNetwork}, true},
		{Config{Type: TypeFile}, true},
		{Config{Type: "bluetooth"}, true},
	}
	for _, tt := range tests {
		_, err := New(tt.cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%+v) error = %v, wantErr %v", tt.cfg, err, tt.wantErr)
		}
	}
}

func TestFilePrinterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spool", "tickets.bin")
	p, err := New(Config{Type: TypeFile, FilePath: path})
	if err != nil {
		t.Fatal(err)
	}
	for _, job := range []string{"one", "two"} {
		if err := p.Print([]byte(job)); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "onetwo" {
		t.Errorf("spool = %q, want onetwo", got)
	}
}
