package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisSelectionStoreRoundTrip(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSelectionStore(redis.Addr(), "", time.Hour)

	sid := NewSessionID()
	if _, found, err := s.Get(sid); err != nil || found {
		t.Fatalf("fresh session: found=%v err=%v", found, err)
	}

	sel := Selection{PersonaID: 1, CategoryID: 2, ThreadID: 3, QuestionID: 4, AnswerID: 5}
	if err := s.Put(sid, sel); err != nil {
		t.Fatalf("put selection: %v", err)
	}
	got, found, err := s.Get(sid)
	if err != nil || !found {
		t.Fatalf("get selection: found=%v err=%v", found, err)
	}
	if got != sel {
		t.Fatalf("selection = %+v, want %+v", got, sel)
	}

	if err := s.Delete(sid); err != nil {
		t.Fatalf("delete selection: %v", err)
	}
	if _, found, _ := s.Get(sid); found {
		t.Fatalf("selection should be gone after delete")
	}
}

func TestRedisSelectionStoreExpires(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSelectionStore(redis.Addr(), "", time.Minute)

	sid := NewSessionID()
	if err := s.Put(sid, Selection{PersonaID: 9}); err != nil {
		t.Fatalf("put selection: %v", err)
	}
	redis.FastForward(2 * time.Minute)
	if _, found, _ := s.Get(sid); found {
		t.Fatalf("selection should expire with the session TTL")
	}
}

func TestMemorySelectionStore(t *testing.T) {
	s := NewMemorySelectionStore()
	sid := NewSessionID()

	if err := s.Put(sid, Selection{ThreadID: 11}); err != nil {
		t.Fatalf("put selection: %v", err)
	}
	got, found, err := s.Get(sid)
	if err != nil || !found {
		t.Fatalf("get selection: found=%v err=%v", found, err)
	}
	if got.ThreadID != 11 {
		t.Fatalf("threadId = %d, want 11", got.ThreadID)
	}
	if err := s.Delete(sid); err != nil {
		t.Fatalf("delete selection: %v", err)
	}
	if _, found, _ := s.Get(sid); found {
		t.Fatalf("selection should be gone after delete")
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Fatalf("session ids should be unique")
	}
}
