package errors

import (
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := E(Op("catalog.Fetch"), KindNetwork, "request failed", fmt.Errorf("connection refused"))
	want := "catalog.Fetch: request failed: connection refused"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestErrorStringWithoutMsg(t *testing.T) {
	err := E(Op("store.Open"), fmt.Errorf("no such file"))
	want := "store.Open: no such file"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(Op("noop"), nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if WrapMsg(Op("noop"), "msg", nil) != nil {
		t.Error("WrapMsg(nil) should return nil")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNetwork:    "network",
		KindParse:      "parse",
		KindValidation: "validation",
		KindDatabase:   "database",
		KindIO:         "io",
		KindConfig:     "config",
		KindUnknown:    "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}

func TestIsKind(t *testing.T) {
	err := E(Op("catalog.Parse"), KindParse, "field count mismatch")
	if !IsKind(err, KindParse) {
		t.Error("expected IsKind to match KindParse")
	}
	if IsKind(err, KindNetwork) {
		t.Error("IsKind should not match KindNetwork")
	}
	if IsKind(fmt.Errorf("plain"), KindParse) {
		t.Error("plain errors have no kind")
	}
}

func TestIsKindWrapped(t *testing.T) {
	inner := E(Op("catalog.Fetch"), KindNetwork, fmt.Errorf("HTTP 503"))
	outer := Wrap(Op("pipeline.Run"), inner)
	if !IsKind(outer, KindNetwork) {
		t.Error("expected kind to be found through wrapping")
	}
	if GetKind(outer) != KindNetwork {
		t.Errorf("GetKind = %v, want network", GetKind(outer))
	}
}

func TestSkipCounter(t *testing.T) {
	s := NewSkipCounter("download")
	if s.Count != 0 {
		t.Fatalf("new counter should start at 0, got %d", s.Count)
	}
	s.Skip(fmt.Errorf("HTTP 404"), "ENCFF000AAA")
	s.Skip(fmt.Errorf("HTTP 500"), "ENCFF000BBB")
	if s.Count != 2 {
		t.Errorf("expected 2 skips, got %d", s.Count)
	}
	if s.LastDetail != "ENCFF000BBB" {
		t.Errorf("expected last detail ENCFF000BBB, got %s", s.LastDetail)
	}
}
