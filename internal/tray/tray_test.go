package tray

import (
	"errors"
	"testing"
	"time"

	"astra/internal/activity"
)

func TestServerTrayMenu(t *testing.T) {
	tr := NewServerTray([]string{"http://10.0.0.2:44828", "http://192.168.1.5:44828"}, nil, nil)

	var titles []string
	for _, it := range tr.items {
		if it == nil {
			titles = append(titles, "-")
			continue
		}
		titles = append(titles, it.Title)
	}
	want := []string{
		"http://10.0.0.2:44828",
		"http://192.168.1.5:44828",
		"Copy server address",
		"-",
		"No commands yet",
		"-",
		"Quit",
	}
	if len(titles) != len(want) {
		t.Fatalf("Expected %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("Item %d: expected %q, got %q", i, want[i], titles[i])
		}
	}
	if !tr.items[0].Disabled || tr.items[2].Disabled {
		t.Error("Addresses must be informational and the copy action enabled")
	}
}

func TestServerTrayNoAddress(t *testing.T) {
	tr := NewServerTray(nil, nil, nil)
	if tr.items[0].Title != "No network address" {
		t.Errorf("Unexpected first item %q", tr.items[0].Title)
	}
	for _, it := range tr.items {
		if it != nil && it.Title == "Copy server address" {
			t.Error("Copy action must be absent without an address")
		}
	}
}

func TestCopyAction(t *testing.T) {
	orig := writeClipboard
	defer func() { writeClipboard = orig }()
	var copied string
	writeClipboard = func(s string) error { copied = s; return nil }

	tr := NewServerTray([]string{"http://10.0.0.2:44828"}, nil, nil)
	for _, it := range tr.items {
		if it != nil && it.Title == "Copy server address" {
			it.Callback()
		}
	}
	if copied != "http://10.0.0.2:44828" {
		t.Errorf("Expected primary address to be copied, got %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	copyAddress("x") // logs, must not panic
}

func TestLastActivityUpdates(t *testing.T) {
	recent := activity.New(activity.DefaultCapacity)
	tr := NewServerTray(nil, recent, nil)
	defer close(tr.quitCh)

	// "No network address", separator, then the last-activity item
	const lastID = 2
	if tr.ItemTitle(lastID) != "No commands yet" {
		t.Fatalf("Unexpected item %q", tr.ItemTitle(lastID))
	}
	recent.Add(activity.Entry{Command: "click(left)", Status: "success"})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tr.ItemTitle(lastID) == "Last: click(left) (success)" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("Last activity item was not updated")
}
