package input

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"astra/internal/action"
	"astra/internal/keys"
	"astra/internal/translate"
)

type span struct {
	call       string
	start, end time.Time
}

// recordingDevice records every call with its start and end times.
type recordingDevice struct {
	mu       sync.Mutex
	calls    []string
	spans    []span
	active   int
	overlaps int
	hold     time.Duration
	failOn   string
}

func (d *recordingDevice) record(call string) error {
	d.mu.Lock()
	d.active++
	if d.active > 1 {
		d.overlaps++
	}
	start := time.Now()
	d.mu.Unlock()

	if d.hold > 0 {
		time.Sleep(d.hold)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.active--
	d.calls = append(d.calls, call)
	d.spans = append(d.spans, span{call: call, start: start, end: time.Now()})
	if call == d.failOn {
		return errors.New("injection failed")
	}
	return nil
}

func (d *recordingDevice) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *recordingDevice) MoveRelative(dx, dy int) error {
	return d.record(fmt.Sprintf("move %d %d", dx, dy))
}
func (d *recordingDevice) Click(b Button) error { return d.record("click " + b.String()) }
func (d *recordingDevice) Scroll(axis action.Axis, amount int) error {
	return d.record(fmt.Sprintf("scroll %s %d", axis, amount))
}
func (d *recordingDevice) KeyDown(k keys.KeyID) error { return d.record("down " + k.String()) }
func (d *recordingDevice) KeyUp(k keys.KeyID) error   { return d.record("up " + k.String()) }
func (d *recordingDevice) KeyTap(k keys.KeyID) error  { return d.record("tap " + k.String()) }
func (d *recordingDevice) TypeText(s string) error    { return d.record("type " + s) }

type fakeLauncher struct {
	opened  chan string
	release chan struct{}
	err     error
}

func (l *fakeLauncher) Open(ctx context.Context, name string) error {
	if l.opened != nil {
		l.opened <- name
	}
	if l.release != nil {
		<-l.release
	}
	return l.err
}

func TestApplyBasicActions(t *testing.T) {
	dev := &recordingDevice{}
	a := NewActuator(dev, nil, Options{})
	ctx := context.Background()

	steps := []action.Action{
		action.MouseMove{DX: 5, DY: -3},
		action.Click{Kind: action.ClickLeft},
		action.Click{Kind: action.ClickRight},
		action.Scroll{Axis: action.Vertical, Amount: 30},
		action.TypeText{Text: "hello"},
	}
	for _, s := range steps {
		if err := a.Apply(ctx, s); err != nil {
			t.Fatalf("Apply(%v): %v", s, err)
		}
	}

	want := []string{"move 5 -3", "click left", "click right", "scroll vertical 30", "type hello"}
	if got := dev.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected calls %v, got %v", want, got)
	}
}

func TestDoubleClickDelay(t *testing.T) {
	dev := &recordingDevice{}
	a := NewActuator(dev, nil, Options{})

	if err := a.Apply(context.Background(), action.Click{Kind: action.ClickDouble}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(dev.spans) != 2 || dev.spans[0].call != "click left" || dev.spans[1].call != "click left" {
		t.Fatalf("Expected two left clicks, got %v", dev.Calls())
	}
	gap := dev.spans[1].start.Sub(dev.spans[0].end)
	if gap < DefaultDoubleClickDelay {
		t.Errorf("Expected at least %v between clicks, got %v", DefaultDoubleClickDelay, gap)
	}
}

func TestKeyPressModifierOrder(t *testing.T) {
	dev := &recordingDevice{}
	a := NewActuator(dev, nil, Options{})

	kp := action.KeyPress{Key: keys.LetterT, Modifiers: []keys.KeyID{keys.Control, keys.Shift}}
	if err := a.Apply(context.Background(), kp); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"down ctrl", "down shift", "tap t", "up ctrl", "up shift"}
	if got := dev.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestKeyPressReverseRelease(t *testing.T) {
	dev := &recordingDevice{}
	a := NewActuator(dev, nil, Options{ReverseModifierRelease: true})

	kp := action.KeyPress{Key: keys.LetterT, Modifiers: []keys.KeyID{keys.Control, keys.Shift}}
	if err := a.Apply(context.Background(), kp); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"down ctrl", "down shift", "tap t", "up shift", "up ctrl"}
	if got := dev.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestKeyPressLiteralFallback(t *testing.T) {
	dev := &recordingDevice{}
	a := NewActuator(dev, nil, Options{})

	kp := action.KeyPress{Literal: "Hello World", Unresolved: true, Modifiers: []keys.KeyID{keys.Alt}}
	if err := a.Apply(context.Background(), kp); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"down alt", "type Hello World", "up alt"}
	if got := dev.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestKeyPressEmptyLiteralIsNoop(t *testing.T) {
	dev := &recordingDevice{}
	a := NewActuator(dev, nil, Options{})

	if err := a.Apply(context.Background(), translate.Key("", nil)); err != nil {
		t.Fatalf("Empty key must succeed, got %v", err)
	}
	if got := dev.Calls(); len(got) != 0 {
		t.Errorf("Expected no device calls, got %v", got)
	}

	if err := a.Apply(context.Background(), translate.Key("", []string{"shift"})); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []string{"down shift", "up shift"}
	if got := dev.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestKeyPressEmptyKeyWithXdotool(t *testing.T) {
	var calls [][]string
	x := &Xdotool{run: func(args ...string) error {
		calls = append(calls, args)
		return nil
	}}
	a := NewActuator(x, nil, Options{})

	if err := a.Apply(context.Background(), translate.Key("", nil)); err != nil {
		t.Fatalf("Empty key must succeed, got %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("Expected no xdotool calls, got %v", calls)
	}
}

func TestKeyPressReleasesOnFailure(t *testing.T) {
	dev := &recordingDevice{failOn: "tap f5"}
	a := NewActuator(dev, nil, Options{})

	kp := action.KeyPress{Key: keys.F5, Modifiers: []keys.KeyID{keys.Control}}
	err := a.Apply(context.Background(), kp)
	if err == nil {
		t.Fatal("Expected error from failing device")
	}
	if action.KindOf(err) != action.ExecutionFailure {
		t.Errorf("Expected ExecutionFailure, got %v", action.KindOf(err))
	}

	want := []string{"down ctrl", "tap f5", "up ctrl"}
	if got := dev.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestConcurrentMovesDoNotOverlap(t *testing.T) {
	dev := &recordingDevice{hold: 20 * time.Millisecond}
	a := NewActuator(dev, nil, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := a.Apply(context.Background(), action.MouseMove{DX: n, DY: n}); err != nil {
				t.Errorf("Apply: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if dev.overlaps != 0 {
		t.Errorf("Expected no overlapping device calls, got %d", dev.overlaps)
	}
	for i := 1; i < len(dev.spans); i++ {
		if dev.spans[i].start.Before(dev.spans[i-1].end) {
			t.Errorf("Action %d started before action %d finished", i, i-1)
		}
	}
	if len(dev.spans) != 8 {
		t.Errorf("Expected 8 applied moves, got %d", len(dev.spans))
	}
}

func TestOpenAppDoesNotHoldLock(t *testing.T) {
	dev := &recordingDevice{}
	launcher := &fakeLauncher{opened: make(chan string, 1), release: make(chan struct{})}
	a := NewActuator(dev, launcher, Options{})

	done := make(chan error, 1)
	go func() {
		done <- a.Apply(context.Background(), action.OpenApp{Name: "spotify"})
	}()

	if name := <-launcher.opened; name != "spotify" {
		t.Errorf("Expected launcher to open spotify, got %q", name)
	}

	// The launch is still pending; device actions must proceed.
	moved := make(chan error, 1)
	go func() { moved <- a.Apply(context.Background(), action.MouseMove{DX: 1, DY: 1}) }()
	select {
	case err := <-moved:
		if err != nil {
			t.Errorf("Apply: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Mouse move blocked behind app launch")
	}

	close(launcher.release)
	if err := <-done; err != nil {
		t.Errorf("Open: %v", err)
	}
}

func TestOpenAppFailure(t *testing.T) {
	launcher := &fakeLauncher{err: errors.New("exit code 4")}
	a := NewActuator(&recordingDevice{}, launcher, Options{})

	err := a.Apply(context.Background(), action.OpenApp{Name: "nothing"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if action.KindOf(err) != action.ExecutionFailure {
		t.Errorf("Expected ExecutionFailure, got %v", action.KindOf(err))
	}
	if err.Error() != "Failed to open nothing: exit code 4" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestOpenAppWithoutLauncher(t *testing.T) {
	a := NewActuator(&recordingDevice{}, nil, Options{})
	err := a.Apply(context.Background(), action.OpenApp{Name: "x"})
	if action.KindOf(err) != action.ExecutionFailure {
		t.Errorf("Expected ExecutionFailure, got %v", err)
	}
}
