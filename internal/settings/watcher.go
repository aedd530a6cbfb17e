package settings

import (
	"context"
	"time"

	"github.com/lib/pq"

	"darna-backend/internal/logger"
)

// NotifyChannel is the Postgres NOTIFY channel fired after every settings
// upsert.
const NotifyChannel = "settings_changed"

// Watcher subscribes to settings change notifications and triggers a full
// snapshot re-fetch on every event. It replaces the original system's
// realtime channel subscription with LISTEN/NOTIFY.
type Watcher struct {
	listener *pq.Listener
	store    *Store
	stop     chan struct{}
	done     chan struct{}
}

func NewWatcher(connStr string, store *Store) *Watcher {
	listener := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("Settings listener event", "event", ev, "error", err)
		}
	})
	return &Watcher{
		listener: listener,
		store:    store,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins listening. Reload failures are logged and retried on the
// next notification; the previous snapshot stays in effect meanwhile.
func (w *Watcher) Start() error {
	if err := w.listener.Listen(NotifyChannel); err != nil {
		return err
	}

	go func() {
		defer close(w.done)
		for {
			select {
			case <-w.stop:
				return
			case n := <-w.listener.Notify:
				// n is nil after a reconnect; re-fetch either way since
				// notifications may have been missed while disconnected.
				key := ""
				if n != nil {
					key = n.Extra
				}
				logger.Debug("Settings change notification", "key", key)
				if err := w.store.Load(context.Background()); err != nil {
					logger.Error("Settings reload failed", "error", err)
				}
			case <-time.After(90 * time.Second):
				if err := w.listener.Ping(); err != nil {
					logger.Warn("Settings listener ping failed", "error", err)
				}
			}
		}
	}()
	return nil
}

// Stop tears the listener down and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	close(w.stop)
	_ = w.listener.Close()
	<-w.done
}
