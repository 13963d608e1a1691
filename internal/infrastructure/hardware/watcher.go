package hardware

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
)

const eventQueueMaxSize = 100

// Event is emitted whenever the observed device changes state.
type Event struct {
	ID       string
	State    ports.DeviceState
	Previous ports.DeviceState
	At       time.Time
}

// Watcher polls a device transport at a fixed interval and publishes an
// event on every state change. Use Start and Stop to manage it.
type Watcher struct {
	transport ports.DeviceTransport
	interval  time.Duration

	eventChan chan Event
	mutex     *sync.Mutex
	done      chan struct{}
	started   bool
	lastState ports.DeviceState
}

// Opts defines the parameters needed for creating a watcher with NewWatcher.
type Opts struct {
	Transport              ports.DeviceTransport
	IntervalInMilliseconds int
}

// NewWatcher is a constructor function for Watcher.
func NewWatcher(opts Opts) *Watcher {
	interval := time.Duration(opts.IntervalInMilliseconds) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		transport: opts.Transport,
		interval:  interval,
		eventChan: make(chan Event, eventQueueMaxSize),
		mutex:     &sync.Mutex{},
		lastState: ports.DeviceAbsent,
	}
}

// Start begins polling. Calling it twice is a no-op. Restarting a stopped
// watcher opens a fresh event channel, the previous one was closed by the
// exiting poller.
func (w *Watcher) Start() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.started {
		return
	}
	if w.done != nil {
		w.eventChan = make(chan Event, eventQueueMaxSize)
	}
	w.done = make(chan struct{})
	w.started = true
	go w.poll(w.done, w.eventChan)
}

// Stop halts polling and closes the event channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
}

// GetEventChannel returns the channel the current run publishes state
// changes on. Grab it again after a restart.
func (w *Watcher) GetEventChannel() <-chan Event {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.eventChan
}

func (w *Watcher) poll(done chan struct{}, events chan Event) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(events)

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			w.detectOnce(events)
		}
	}
}

func (w *Watcher) detectOnce(events chan Event) {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	state, err := w.transport.Detect(ctx)
	if err != nil {
		log.WithError(err).Debug("device detection failed")
		state = ports.DeviceAbsent
	}

	w.mutex.Lock()
	previous := w.lastState
	w.lastState = state
	w.mutex.Unlock()

	if state == previous {
		return
	}

	event := Event{
		ID:       uuid.New().String(),
		State:    state,
		Previous: previous,
		At:       time.Now(),
	}
	select {
	case events <- event:
	default:
		// dropped when the consumer lags, the next change supersedes it
	}
}
