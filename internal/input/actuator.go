package input

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"astra/internal/action"
	"astra/internal/keys"
)

// DefaultDoubleClickDelay is the pause between the two clicks of a double click.
const DefaultDoubleClickDelay = 50 * time.Millisecond

// Launcher opens an application or URI with the platform default handler.
type Launcher interface {
	Open(ctx context.Context, name string) error
}

// Options tune the actuator
type Options struct {
	// DoubleClickDelay defaults to DefaultDoubleClickDelay when zero.
	DoubleClickDelay time.Duration

	// ReverseModifierRelease releases chord modifiers last-pressed first.
	// By default they are released in the order they were pressed.
	ReverseModifierRelease bool
}

// Actuator owns the input device and applies one action at a time.
type Actuator struct {
	mu       sync.Mutex
	dev      Device
	launcher Launcher
	opts     Options
}

// NewActuator creates the actuator. It is meant to be created once per process
// and shared by every request handler.
func NewActuator(dev Device, launcher Launcher, opts Options) *Actuator {
	if opts.DoubleClickDelay <= 0 {
		opts.DoubleClickDelay = DefaultDoubleClickDelay
	}
	return &Actuator{
		dev:      dev,
		launcher: launcher,
		opts:     opts,
	}
}

// Apply performs act. Device actions hold the actuator lock for their whole
// duration; OpenApp runs without it. Failures are returned as
// action.ExecutionFailure errors and never retried.
func (a *Actuator) Apply(ctx context.Context, act action.Action) error {
	if o, ok := act.(action.OpenApp); ok {
		return a.open(ctx, o.Name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.apply(act); err != nil {
		log.Printf("Actuator: %s failed: %v", act, err)
		return action.Failed(err, "Failed to apply %s", act)
	}
	return nil
}

func (a *Actuator) apply(act action.Action) error {
	switch v := act.(type) {
	case action.MouseMove:
		return a.dev.MoveRelative(v.DX, v.DY)
	case action.Click:
		return a.click(v.Kind)
	case action.Scroll:
		return a.dev.Scroll(v.Axis, v.Amount)
	case action.KeyPress:
		return a.keyPress(v)
	case action.TypeText:
		return a.dev.TypeText(v.Text)
	}
	return fmt.Errorf("unsupported action %T", act)
}

func (a *Actuator) click(kind action.ClickKind) error {
	switch kind {
	case action.ClickLeft:
		return a.dev.Click(ButtonLeft)
	case action.ClickRight:
		return a.dev.Click(ButtonRight)
	case action.ClickDouble:
		if err := a.dev.Click(ButtonLeft); err != nil {
			return err
		}
		time.Sleep(a.opts.DoubleClickDelay)
		return a.dev.Click(ButtonLeft)
	}
	return fmt.Errorf("unsupported click kind %d", kind)
}

// keyPress holds the modifiers around the main key. Modifiers that were
// pressed are released even if a later step fails.
func (a *Actuator) keyPress(kp action.KeyPress) error {
	pressed := make([]keys.KeyID, 0, len(kp.Modifiers))
	var err error
	for _, m := range kp.Modifiers {
		if err = a.dev.KeyDown(m); err != nil {
			break
		}
		pressed = append(pressed, m)
	}

	if err == nil {
		switch {
		case !kp.Unresolved:
			err = a.dev.KeyTap(kp.Key)
		case kp.Literal != "":
			err = a.dev.TypeText(kp.Literal)
		}
	}

	if rerr := a.release(pressed); err == nil {
		err = rerr
	}
	return err
}

func (a *Actuator) release(mods []keys.KeyID) error {
	var first error
	for i := range mods {
		m := mods[i]
		if a.opts.ReverseModifierRelease {
			m = mods[len(mods)-1-i]
		}
		if err := a.dev.KeyUp(m); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *Actuator) open(ctx context.Context, name string) error {
	if a.launcher == nil {
		return action.Failed(nil, "Failed to run open command: no launcher configured")
	}
	log.Printf("Actuator: opening %q", name)
	// A dropped client connection must not kill the launched process.
	if err := a.launcher.Open(context.WithoutCancel(ctx), name); err != nil {
		log.Printf("Actuator: open %q failed: %v", name, err)
		return action.Failed(err, "Failed to open %s", name)
	}
	return nil
}
