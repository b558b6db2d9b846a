package network

import (
	"errors"
	"log"
	"net"
	"sync/atomic"
	"time"

	"astra/internal/protocol"
)

// UDPClient sends trackpad packets to a server's UDP listener. Clicks and
// scrolls are sent several times since UDP has no delivery guarantee; the
// listener drops the copies by sequence number.
type UDPClient struct {
	conn *net.UDPConn
	seq  uint32 // atomic, monotonically increasing
}

// DialUDP connects to the listener at addr ("host:port").
func DialUDP(addr string) (*UDPClient, error) {
	serverAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp4", nil, serverAddr)
	if err != nil {
		return nil, err
	}
	// 1 MB write buffer for burst writes
	conn.SetWriteBuffer(1 << 20)
	return &UDPClient{conn: conn}, nil
}

// Probe tests whether the UDP path to the server is open. It sends pings and
// waits for an Ack, trying up to attempts times.
func (c *UDPClient) Probe(attempts int, timeout time.Duration) bool {
	buf := make([]byte, 64)
	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.send(&protocol.UDPPacket{Type: protocol.UDPPacketPing}, 1); err != nil {
			log.Printf("UDP Probe: send failed: %v", err)
			return false
		}

		c.conn.SetReadDeadline(time.Now().Add(timeout))
		n, err := c.conn.Read(buf)
		if err != nil {
			continue // timeout or error, retry
		}
		resp, err := protocol.DecodeUDPPacket(buf[:n])
		if err != nil {
			continue
		}
		if resp.Type == protocol.UDPPacketAck {
			log.Printf("UDP Probe: server replied with Ack (attempt %d), UDP path is open", attempt+1)
			return true
		}
	}

	log.Printf("UDP Probe: no Ack received after %d attempts, UDP path blocked", attempts)
	return false
}

// Move sends a relative pointer move
func (c *UDPClient) Move(dx, dy int32) error {
	return c.send(&protocol.UDPPacket{Type: protocol.UDPPacketMouseMove, DeltaX: dx, DeltaY: dy}, 1)
}

// Click sends a click of the given UDPClick* kind
func (c *UDPClient) Click(kind uint8) error {
	if protocol.ClickName(kind) == "" {
		return errors.New("udp: unknown click kind")
	}
	return c.send(&protocol.UDPPacket{Type: protocol.UDPPacketClick, Kind: kind}, 3)
}

// Scroll sends a scroll in the given UDPScroll* direction
func (c *UDPClient) Scroll(direction uint8, amount int32) error {
	if protocol.ScrollName(direction) == "" {
		return errors.New("udp: unknown scroll direction")
	}
	return c.send(&protocol.UDPPacket{Type: protocol.UDPPacketScroll, Direction: direction, Amount: amount}, 2)
}

func (c *UDPClient) send(pkt *protocol.UDPPacket, redundancy int) error {
	pkt.Seq = atomic.AddUint32(&c.seq, 1)
	pkt.Timestamp = time.Now().UnixMilli()
	data := protocol.EncodeUDPPacket(pkt)
	for i := 0; i < redundancy; i++ {
		if _, err := c.conn.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the socket
func (c *UDPClient) Close() error {
	return c.conn.Close()
}
