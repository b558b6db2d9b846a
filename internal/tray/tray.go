// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"fmt"
	"log"
	"sync"

	"astra/internal/activity"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"
)

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// MenuItem represents a menu item
type MenuItem struct {
	ID       int
	Title    string
	Disabled bool
	Callback func()
	item     *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	items   []*MenuItem
	tooltip string
	readyCh chan struct{}
	quitCh  chan struct{}
}

// New creates a new system tray
func New(tooltip string) *Tray {
	return &Tray{
		items:   make([]*MenuItem, 0),
		tooltip: tooltip,
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a menu item to the tray
func (t *Tray) AddMenuItem(title string, callback func()) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{ID: id, Title: title, Callback: callback})
	return id
}

// AddInfo adds a disabled, informational menu item
func (t *Tray) AddInfo(title string) int {
	id := len(t.items)
	t.items = append(t.items, &MenuItem{ID: id, Title: title, Disabled: true})
	return id
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil) // nil indicates separator
}

// SetItemTitle changes the title of a menu item. Before the tray is ready
// only the stored title changes.
func (t *Tray) SetItemTitle(id int, title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	t.items[id].Title = title
	if t.items[id].item != nil {
		t.items[id].item.SetTitle(title)
	}
}

// ItemTitle returns the current title of a menu item
func (t *Tray) ItemTitle(id int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return ""
	}
	return t.items[id].Title
}

// Ready is closed once the menu has been built
func (t *Tray) Ready() <-chan struct{} {
	return t.readyCh
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle("Astra")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(getIcon())

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, menuItem := range t.items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(menuItem.Title, "")
		menuItem.item = item
		if menuItem.Disabled {
			item.Disable()
		}

		// Handle clicks in goroutine
		if menuItem.Callback != nil {
			go func(mi *MenuItem) {
				for {
					select {
					case <-mi.item.ClickedCh:
						mi.Callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem)
		}
	}
	close(t.readyCh)
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// NewServerTray builds the server menu: reachable addresses, a copy action
// for the first one, the most recent command, and Quit.
func NewServerTray(urls []string, recent *activity.Log, onQuit func()) *Tray {
	t := New("Astra remote input server")

	if len(urls) == 0 {
		t.AddInfo("No network address")
	}
	for _, u := range urls {
		t.AddInfo(u)
	}
	if len(urls) > 0 {
		primary := urls[0]
		t.AddMenuItem("Copy server address", func() { copyAddress(primary) })
	}

	t.AddSeparator()
	lastID := t.AddInfo("No commands yet")
	if recent != nil {
		entries, cancel := recent.Subscribe(16)
		go func() {
			defer cancel()
			for {
				select {
				case e, ok := <-entries:
					if !ok {
						return
					}
					t.SetItemTitle(lastID, lastActivityTitle(e))
				case <-t.quitCh:
					return
				}
			}
		}()
	}

	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		if onQuit != nil {
			onQuit()
		}
		t.Stop()
	})
	return t
}

func copyAddress(addr string) {
	if err := writeClipboard(addr); err != nil {
		log.Printf("Tray: Failed to copy address: %v", err)
		return
	}
	log.Printf("Tray: Copied %s to clipboard", addr)
}

func lastActivityTitle(e activity.Entry) string {
	return fmt.Sprintf("Last: %s (%s)", e.Command, e.Status)
}

// getIcon returns a placeholder icon (valid 16x16 ICO)
func getIcon() []byte {
	// A valid 16x16 32-bit ICO file with correct size and DIB header
	icon := make([]byte, 1118)
	// ICO Header
	copy(icon[0:6], []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00})
	// Icon Directory
	copy(icon[6:22], []byte{
		0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		0x48, 0x04, 0x00, 0x00, // Size: 1024 (pixels) + 40 (header) + 32 (mask) = 1096 bytes
		0x16, 0x00, 0x00, 0x00, // Offset
	})
	// DIB Header
	copy(icon[22:62], []byte{
		0x28, 0x00, 0x00, 0x00, // Size
		0x10, 0x00, 0x00, 0x00, // Width
		0x20, 0x00, 0x00, 0x00, // Height (16 * 2 for icon)
		0x01, 0x00, // Planes
		0x20, 0x00, // BPP
		0x00, 0x00, 0x00, 0x00, // Compression
		0x00, 0x04, 0x00, 0x00, // Image Size
	})
	// The rest (pixels and mask) can stay 0 for transparency
	return icon
}
