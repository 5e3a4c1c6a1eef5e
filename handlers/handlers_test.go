// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sync"
	"testing"

	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/resolver"
	"github.com/danielhkuo/setlist/store"
	"github.com/danielhkuo/setlist/testutil"
)

// sentMail records one queued notification
type sentMail struct {
	To, Subject, Template string
	Data                  any
}

// recordingNotifier captures notifications instead of mailing them
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) SendEmail(to, subject, template string, data any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Template: template, Data: data})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type testEnv struct {
	store    *store.Store
	resolver *resolver.Resolver
	notifier *recordingNotifier
	cfg      cliparse.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := testutil.SetupTestStore(t)
	return &testEnv{
		store:    s,
		resolver: resolver.New(s),
		notifier: &recordingNotifier{},
		cfg:      testutil.GetTestConfig(t),
	}
}

func (e *testEnv) songs() *SongHandler {
	return NewSongHandler(e.store, e.resolver, e.notifier, e.cfg)
}
