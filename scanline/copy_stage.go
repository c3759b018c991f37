// copy_stage.go - Stride-aware line copy stage

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

package scanline

import "unsafe"

// gatherFunc copies count pixels of the given depth from src, stepping
// stride bytes per pixel, into contiguous dst. For a negative stride pixel 0
// is the last pixel of src.
type gatherFunc func(dst, src []byte, depth ElementDepth, stride, count int)

func (s Strategy) gatherFunc() gatherFunc {
	if s == StrategyAccelerated {
		return gatherWide
	}
	return gatherReference
}

// NewCopy builds a copy stage. Any stride with |stride| >= depth is accepted,
// negative strides scan the source right to left.
func NewCopy(cfg Config) (*Stage, error) {
	return NewStage(KindCopy, cfg)
}

func copyLine(strategy Strategy) LineFunc {
	cp := strategy.copyFunc()
	gather := strategy.gatherFunc()
	return func(st *Stage, dst, src []byte) {
		if st.srcStride == st.dstStride {
			cp(dst, src, st.lineBytes)
			return
		}
		gather(dst[:st.lineBytes], src[:st.SourceBytes()], st.depth, st.srcStride, st.count)
	}
}

func gatherStart(stride, count int) int {
	if stride < 0 {
		return (count - 1) * -stride
	}
	return 0
}

func gatherReference(dst, src []byte, depth ElementDepth, stride, count int) {
	off := gatherStart(stride, count)
	n := depth.Bytes()
	for i := 0; i < count; i++ {
		copy(dst[i*n:i*n+n], src[off:off+n])
		off += stride
	}
}

// gatherWide moves 16 and 32 bit pixels as single unaligned words.
func gatherWide(dst, src []byte, depth ElementDepth, stride, count int) {
	off := gatherStart(stride, count)
	switch depth {
	case Depth8:
		for i := 0; i < count; i++ {
			dst[i] = src[off]
			off += stride
		}
	case Depth16:
		_ = dst[count*2-1]
		for i := 0; i < count; i++ {
			_ = src[off+1]
			*(*uint16)(unsafe.Pointer(&dst[i*2])) = *(*uint16)(unsafe.Pointer(&src[off]))
			off += stride
		}
	case Depth32:
		_ = dst[count*4-1]
		for i := 0; i < count; i++ {
			_ = src[off+3]
			*(*uint32)(unsafe.Pointer(&dst[i*4])) = *(*uint32)(unsafe.Pointer(&src[off]))
			off += stride
		}
	}
}
