package protocol

import (
	"encoding/binary"
	"errors"
)

// UDP Packet types
const (
	UDPPacketMouseMove uint8 = 0x01
	UDPPacketClick     uint8 = 0x02
	UDPPacketScroll    uint8 = 0x03
	UDPPacketPing      uint8 = 0x11
	UDPPacketAck       uint8 = 0x12 // Server -> client: confirms the UDP path is open
)

// Click kinds carried by UDPPacketClick
const (
	UDPClickLeft   uint8 = 0
	UDPClickRight  uint8 = 1
	UDPClickDouble uint8 = 2
)

// Scroll directions carried by UDPPacketScroll
const (
	UDPScrollUp    uint8 = 0
	UDPScrollDown  uint8 = 1
	UDPScrollLeft  uint8 = 2
	UDPScrollRight uint8 = 3
)

// Header: [type(1)] [seq(4)] [timestamp(8)] = 13 bytes
const UDPHeaderSize = 13

// UDPPacket is a binary-encoded pointer event for low-latency trackpad input.
//
// Wire format per type:
//
//	MouseMove (0x01): header + dx(int32) + dy(int32)            = 21 bytes
//	Click     (0x02): header + kind(uint8)                      = 14 bytes
//	Scroll    (0x03): header + direction(uint8) + amount(int32) = 18 bytes
//	Ping      (0x11): header only                               = 13 bytes
//	Ack       (0x12): header only                               = 13 bytes
type UDPPacket struct {
	Type      uint8
	Seq       uint32
	Timestamp int64
	DeltaX    int32 // mouse move
	DeltaY    int32 // mouse move
	Kind      uint8 // click kind
	Direction uint8 // scroll direction
	Amount    int32 // scroll amount in request units
}

// EncodeUDPPacket serializes a UDPPacket to wire format.
func EncodeUDPPacket(pkt *UDPPacket) []byte {
	size := UDPHeaderSize
	switch pkt.Type {
	case UDPPacketMouseMove:
		size += 8 // dx(4) + dy(4)
	case UDPPacketClick:
		size += 1 // kind(1)
	case UDPPacketScroll:
		size += 5 // direction(1) + amount(4)
	}

	buf := make([]byte, size)
	buf[0] = pkt.Type
	binary.BigEndian.PutUint32(buf[1:5], pkt.Seq)
	binary.BigEndian.PutUint64(buf[5:13], uint64(pkt.Timestamp))

	payload := buf[UDPHeaderSize:]
	switch pkt.Type {
	case UDPPacketMouseMove:
		binary.BigEndian.PutUint32(payload[0:4], uint32(pkt.DeltaX))
		binary.BigEndian.PutUint32(payload[4:8], uint32(pkt.DeltaY))
	case UDPPacketClick:
		payload[0] = pkt.Kind
	case UDPPacketScroll:
		payload[0] = pkt.Direction
		binary.BigEndian.PutUint32(payload[1:5], uint32(pkt.Amount))
	}

	return buf
}

// DecodeUDPPacket deserializes wire bytes into a UDPPacket.
func DecodeUDPPacket(data []byte) (*UDPPacket, error) {
	if len(data) < UDPHeaderSize {
		return nil, errors.New("udp: packet too short")
	}

	pkt := &UDPPacket{
		Type:      data[0],
		Seq:       binary.BigEndian.Uint32(data[1:5]),
		Timestamp: int64(binary.BigEndian.Uint64(data[5:13])),
	}

	payload := data[UDPHeaderSize:]
	switch pkt.Type {
	case UDPPacketMouseMove:
		if len(payload) < 8 {
			return nil, errors.New("udp: mouse move payload too short")
		}
		pkt.DeltaX = int32(binary.BigEndian.Uint32(payload[0:4]))
		pkt.DeltaY = int32(binary.BigEndian.Uint32(payload[4:8]))
	case UDPPacketClick:
		if len(payload) < 1 {
			return nil, errors.New("udp: click payload too short")
		}
		pkt.Kind = payload[0]
	case UDPPacketScroll:
		if len(payload) < 5 {
			return nil, errors.New("udp: scroll payload too short")
		}
		pkt.Direction = payload[0]
		pkt.Amount = int32(binary.BigEndian.Uint32(payload[1:5]))
	case UDPPacketPing, UDPPacketAck:
		// no payload
	default:
		return nil, errors.New("udp: unknown packet type")
	}

	return pkt, nil
}

// ClickName returns the click type string accepted by POST /click.
func ClickName(kind uint8) string {
	switch kind {
	case UDPClickLeft:
		return "left"
	case UDPClickRight:
		return "right"
	case UDPClickDouble:
		return "double"
	}
	return ""
}

// ScrollName returns the direction string accepted by POST /scroll.
func ScrollName(direction uint8) string {
	switch direction {
	case UDPScrollUp:
		return "up"
	case UDPScrollDown:
		return "down"
	case UDPScrollLeft:
		return "left"
	case UDPScrollRight:
		return "right"
	}
	return ""
}
