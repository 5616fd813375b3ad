// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"sync"
	"testing"
)

func TestStoreNormalizesTokenlessSession(t *testing.T) {
	st := NewStore()
	st.Set(Session{UserID: 7, DisplayName: "Ada", LoginHandle: "ada@kavio.io", Token: ""})

	cur := st.Current()
	if !cur.Anonymous() {
		t.Fatalf("session without token should be anonymous, got %+v", cur)
	}
	if cur.UserID != 0 || cur.DisplayName != "" || cur.LoginHandle != "" {
		t.Errorf("anonymous session should be the zero value, got %+v", cur)
	}
}

func TestStoreSetAndClear(t *testing.T) {
	st := NewStore()
	st.Set(Session{UserID: 1, DisplayName: "Ada", LoginHandle: "ada@kavio.io", Token: "tok-1"})

	if st.Current().Anonymous() {
		t.Fatal("expected authenticated session after Set")
	}
	if got := st.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, want %q", got, "tok-1")
	}

	st.Clear()
	if !st.Current().Anonymous() {
		t.Error("expected anonymous session after Clear")
	}
	if got := st.Token(); got != "" {
		t.Errorf("Token() after Clear = %q, want empty", got)
	}

	// clearing again must be harmless
	st.Clear()
	if !st.Current().Anonymous() {
		t.Error("second Clear changed the outcome")
	}
}

func TestStoreWatchersObserveChanges(t *testing.T) {
	st := NewStore()
	var seen []Session
	st.Watch(func(s Session) { seen = append(seen, s) })

	st.Set(Session{UserID: 1, Token: "tok"})
	st.Clear()

	if len(seen) != 2 {
		t.Fatalf("expected 2 watcher calls, got %d", len(seen))
	}
	if seen[0].Token != "tok" {
		t.Errorf("first change carried token %q, want %q", seen[0].Token, "tok")
	}
	if !seen[1].Anonymous() {
		t.Errorf("second change should be anonymous, got %+v", seen[1])
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			st.Set(Session{UserID: 1, Token: "tok"})
		}()
		go func() {
			defer wg.Done()
			_ = st.Token()
			_ = st.Current()
		}()
	}
	wg.Wait()

	cur := st.Current()
	if cur.Anonymous() != (cur.Token == "") {
		t.Errorf("anonymous flag and token disagree: %+v", cur)
	}
}
