package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("10023\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Enter employee id", &out)
	if err != nil || got != "10023" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleText_TrimsWhitespace(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  10023  \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Enter employee id", &out)
	if err != nil || got != "10023" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleText_EOFReturnsPartialLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Enter employee id", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}
