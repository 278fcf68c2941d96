package avffi

import (
	"github.com/xaionaro-go/ffav/pool"
)

// PacketPool recycles packets; Put unreferences their payload.
var PacketPool = pool.NewPool(
	AllocPacket,
	func(p *Packet) { p.Unref() },
	func(p *Packet) { p.Free() },
)
