package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"astra/internal/action"
	"astra/internal/activity"
	"astra/internal/protocol"
	"astra/internal/translate"
)

// Actuator applies canonical actions to the host
type Actuator interface {
	Apply(ctx context.Context, act action.Action) error
}

// UDPListener is the server-side trackpad channel. It receives binary pointer
// packets and applies them through the shared actuator.
type UDPListener struct {
	actuator Actuator
	activity *activity.Log // optional; clicks and scrolls are recorded
	conn     *net.UDPConn
	done     chan struct{}
	stopOnce sync.Once

	// per-sender dedup of redundant packets, only touched by readLoop
	senders *senderTable
}

// Sender table limits
const (
	maxUDPSenders   = 64
	senderIdleAfter = 30 * time.Second
	sweepInterval   = 10 * time.Second
	readErrBackoff  = 10 * time.Millisecond
)

type senderState struct {
	dedup    *seqDedup
	lastSeen time.Time
}

// senderTable holds one dedup ring per sender address. Idle senders are
// swept, and at capacity the least recently seen sender is evicted.
type senderTable struct {
	entries   map[string]*senderState
	max       int
	idle      time.Duration
	lastSweep time.Time
}

func newSenderTable(limit int, idle time.Duration) *senderTable {
	return &senderTable{entries: make(map[string]*senderState), max: limit, idle: idle}
}

// dedupFor returns the dedup ring for key, creating it when needed.
func (t *senderTable) dedupFor(key string, now time.Time) *seqDedup {
	if s, ok := t.entries[key]; ok {
		s.lastSeen = now
		return s.dedup
	}

	if len(t.entries) >= t.max {
		t.sweep(now)
	}
	if len(t.entries) >= t.max {
		t.evictOldest()
	}
	s := &senderState{dedup: newSeqDedup(), lastSeen: now}
	t.entries[key] = s
	return s.dedup
}

// sweep drops senders idle for longer than the idle timeout
func (t *senderTable) sweep(now time.Time) {
	t.lastSweep = now
	for key, s := range t.entries {
		if now.Sub(s.lastSeen) > t.idle {
			delete(t.entries, key)
		}
	}
}

func (t *senderTable) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, s := range t.entries {
		if oldestKey == "" || s.lastSeen.Before(oldest) {
			oldestKey, oldest = key, s.lastSeen
		}
	}
	delete(t.entries, oldestKey)
}

func (t *senderTable) size() int {
	return len(t.entries)
}

// seqDedup tracks recently seen sequence numbers to discard redundant packets.
// Uses a fixed-size ring buffer, no allocation, O(1) lookup.
type seqDedup struct {
	ring [512]uint32
	pos  int
	seen map[uint32]struct{}
}

func newSeqDedup() *seqDedup {
	return &seqDedup{seen: make(map[uint32]struct{}, 512)}
}

func (d *seqDedup) isDuplicate(seq uint32) bool {
	if _, ok := d.seen[seq]; ok {
		return true
	}
	// Evict oldest entry
	old := d.ring[d.pos]
	if old != 0 {
		delete(d.seen, old)
	}
	d.ring[d.pos] = seq
	d.seen[seq] = struct{}{}
	d.pos = (d.pos + 1) % len(d.ring)
	return false
}

// NewUDPListener creates a listener applying packets through act.
func NewUDPListener(act Actuator, recent *activity.Log) *UDPListener {
	return &UDPListener{
		actuator: act,
		activity: recent,
		done:     make(chan struct{}),
		senders:  newSenderTable(maxUDPSenders, senderIdleAfter),
	}
}

// Start binds addr ("host:port", port 0 picks one) and begins receiving.
func (l *UDPListener) Start(addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		return err
	}
	l.conn = conn

	// Large read buffer for burst receives
	conn.SetReadBuffer(1 << 20) // 1 MB

	log.Printf("UDP: Listening on %s", conn.LocalAddr())

	go l.readLoop()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (l *UDPListener) Addr() *net.UDPAddr {
	if l.conn == nil {
		return nil
	}
	return l.conn.LocalAddr().(*net.UDPAddr)
}

func (l *UDPListener) readLoop() {
	buf := make([]byte, 64)
	for {
		n, remote, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-l.done:
				return
			case <-time.After(readErrBackoff):
				continue
			}
		}

		pkt, err := protocol.DecodeUDPPacket(buf[:n])
		if err != nil {
			continue
		}

		if pkt.Type == protocol.UDPPacketPing {
			ack := &protocol.UDPPacket{
				Type:      protocol.UDPPacketAck,
				Seq:       pkt.Seq,
				Timestamp: time.Now().UnixMilli(),
			}
			l.conn.WriteToUDP(protocol.EncodeUDPPacket(ack), remote)
			continue
		}

		now := time.Now()
		if now.Sub(l.senders.lastSweep) > sweepInterval {
			l.senders.sweep(now)
		}

		key := remote.String()
		if l.senders.dedupFor(key, now).isDuplicate(pkt.Seq) {
			continue
		}

		l.dispatch(pkt, key)
	}
}

// dispatch converts a packet into an action and applies it.
func (l *UDPListener) dispatch(pkt *protocol.UDPPacket, remote string) {
	var (
		act     action.Action
		err     error
		command string
		success string
	)

	switch pkt.Type {
	case protocol.UDPPacketMouseMove:
		move := translate.Mouse(float64(pkt.DeltaX), float64(pkt.DeltaY))
		if err := l.actuator.Apply(context.Background(), move); err != nil {
			log.Printf("UDP: %v", err)
		}
		return

	case protocol.UDPPacketClick:
		name := protocol.ClickName(pkt.Kind)
		command, success = "udp click "+name, fmt.Sprintf("%s performed", name)
		act, err = translate.Click(name)

	case protocol.UDPPacketScroll:
		name := protocol.ScrollName(pkt.Direction)
		amount := int(pkt.Amount)
		command, success = "udp scroll "+name, "Scrolled"
		act, err = translate.Scroll(name, &amount)

	default:
		return
	}

	if err == nil {
		err = l.actuator.Apply(context.Background(), act)
	}
	if err != nil {
		log.Printf("UDP: %s failed: %v", command, err)
	}
	l.record(remote, command, err, success)
}

func (l *UDPListener) record(remote, command string, err error, success string) {
	if l.activity == nil {
		return
	}
	entry := activity.Entry{Remote: remote, Command: command, Status: protocol.StatusSuccess, Message: success}
	if err != nil {
		entry.Status, entry.Message = protocol.StatusError, err.Error()
	}
	l.activity.Add(entry)
}

// Stop shuts down the listener.
func (l *UDPListener) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		if l.conn != nil {
			l.conn.Close()
		}
	})
}
