package pgerr

import "testing"

func TestMsgDoesNotMutateOriginal(t *testing.T) {
	e := New(409, CodeConflict, "request conflicts with existing data")
	changed := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("expected original message untouched, got %q", e.Message)
	}
	if changed.Message != "changed" {
		t.Errorf("expected derived message %q, got %q", "changed", changed.Message)
	}
	if changed.StatusCode != 409 || changed.ErrorCode != CodeConflict {
		t.Errorf("expected status and code carried over, got %d %s", changed.StatusCode, changed.ErrorCode)
	}
}

func TestWithExtrasDoesNotMutateOriginal(t *testing.T) {
	e := ErrInvalidReq.WithExtras(Extras{"field": "week_start"})
	if ErrInvalidReq.Extras != nil {
		t.Error("expected shared sentinel to stay extras-free")
	}
	if e.Extras == nil || (*e.Extras)["field"] != "week_start" {
		t.Errorf("expected extras on derived error, got %v", e.Extras)
	}
}
