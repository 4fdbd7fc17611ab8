package render

import (
	"bytes"

	"github.com/lixenwraith/color-cycle/core"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi           = []byte("\x1b[")
	csiSGR0       = []byte("\x1b[0m")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH
	csiCursorFwd1 = []byte("\x1b[C")
	sgrFgRGB      = []byte("38;2;")
	sgrBgRGB      = []byte("48;2;")
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bytes.Buffer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bytes.Buffer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward writes cursor forward N positions
func writeCursorForward(w *bytes.Buffer, n int) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.Write(csiCursorFwd1)
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('C')
}

// writeRGBParams writes "R;G;B"
func writeRGBParams(w *bytes.Buffer, c core.RGB) {
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
}

// writeSGR emits one combined true-color sequence for whichever of fg/bg changed
func writeSGR(w *bytes.Buffer, fg, bg core.RGB, fgChanged, bgChanged bool) {
	if !fgChanged && !bgChanged {
		return
	}
	w.Write(csi)
	if fgChanged {
		w.Write(sgrFgRGB)
		writeRGBParams(w, fg)
	}
	if bgChanged {
		if fgChanged {
			w.WriteByte(';')
		}
		w.Write(sgrBgRGB)
		writeRGBParams(w, bg)
	}
	w.WriteByte('m')
}
