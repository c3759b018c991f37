// copy_test.go - Copy primitive tests

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

import (
	"bytes"
	"testing"
)

func TestCopyVector_MatchesReference(t *testing.T) {
	backing := make([]byte, 512)
	for i := range backing {
		backing[i] = byte(i*7 + 3)
	}
	for n := 0; n <= 130; n++ {
		for align := 0; align < 8; align++ {
			src := backing[align : align+n]
			want := make([]byte, n+8)
			got := make([]byte, n+8+align)[align:]
			for i := range want {
				want[i] = 0xEE
				got[i] = 0xEE
			}
			copyReference(want, src, n)
			copyVector(got, src, n)
			if !bytes.Equal(want, got[:n+8]) {
				t.Fatalf("n=%d align=%d: vector copy differs from reference", n, align)
			}
		}
	}
}

func TestGatherWide_MatchesReference(t *testing.T) {
	src := make([]byte, 1024)
	for i := range src {
		src[i] = byte(i*13 + 1)
	}
	for _, d := range allDepths {
		for _, stride := range []int{d.Bytes(), -d.Bytes(), 2 * d.Bytes(), -5 * d.Bytes(), d.Bytes() + 3} {
			const count = 37
			view := src[:(count-1)*abs(stride)+d.Bytes()]
			want := make([]byte, count*d.Bytes())
			got := make([]byte, count*d.Bytes())
			gatherReference(want, view, d, stride, count)
			gatherWide(got, view, d, stride, count)
			if !bytes.Equal(want, got) {
				t.Errorf("%s stride %d: wide gather differs from reference", d, stride)
			}
		}
	}
}

// TestAcceleratedStrategy_NotSlower times both strategies on full lines and
// fails when the accelerated one is clearly behind.
func TestAcceleratedStrategy_NotSlower(t *testing.T) {
	if testing.Short() {
		t.Skip("timing comparison skipped in short mode")
	}
	cases := []struct {
		name      string
		kind      Kind
		depth     ElementDepth
		stride    int
		tolerance float64
	}{
		{"swap-even/32bpp", KindSwapEven, Depth32, 0, 1.5},
		{"swap-odd/16bpp", KindSwapOdd, Depth16, 0, 1.5},
		{"copy/16bpp/reversed", KindCopy, Depth16, -2, 1.25},
		{"copy/32bpp/pitch8", KindCopy, Depth32, 8, 1.25},
	}
	for _, tc := range cases {
		ref := testing.Benchmark(func(b *testing.B) { benchmarkStage(b, tc.kind, tc.depth, tc.stride, 0) })
		acc := testing.Benchmark(func(b *testing.B) { benchmarkStage(b, tc.kind, tc.depth, tc.stride, FeatureSSE2) })
		if ref.N == 0 || acc.N == 0 {
			t.Fatalf("%s: benchmark did not run", tc.name)
		}
		refNs := float64(ref.T.Nanoseconds()) / float64(ref.N)
		accNs := float64(acc.T.Nanoseconds()) / float64(acc.N)
		t.Logf("%s: reference %.1f ns/line, accelerated %.1f ns/line", tc.name, refNs, accNs)
		if accNs > refNs*tc.tolerance {
			t.Errorf("%s: accelerated %.1f ns/line is slower than reference %.1f ns/line", tc.name, accNs, refNs)
		}
	}
}

func benchmarkStage(b *testing.B, kind Kind, d ElementDepth, stride int, f Features) {
	st, err := NewStage(kind, Config{Depth: d, Count: 640, SourceStride: stride, Features: f})
	if err != nil {
		b.Fatal(err)
	}
	src := make([]byte, st.SourceBytes())
	dst := make([]byte, st.DestBytes())
	b.SetBytes(int64(len(dst)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Process(dst, src)
	}
}

func BenchmarkCopyReference_2560(b *testing.B) {
	src := make([]byte, 2560)
	dst := make([]byte, 2560)
	b.SetBytes(2560)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		copyReference(dst, src, len(src))
	}
}

func BenchmarkCopyVector_2560(b *testing.B) {
	src := make([]byte, 2560)
	dst := make([]byte, 2560)
	b.SetBytes(2560)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		copyVector(dst, src, len(src))
	}
}

func BenchmarkGather16Reversed_Reference(b *testing.B) {
	benchmarkStage(b, KindCopy, Depth16, -2, 0)
}

func BenchmarkGather16Reversed_Accelerated(b *testing.B) {
	benchmarkStage(b, KindCopy, Depth16, -2, FeatureSSE2)
}

func BenchmarkGather32Pitch8_Reference(b *testing.B) {
	benchmarkStage(b, KindCopy, Depth32, 8, 0)
}

func BenchmarkGather32Pitch8_Accelerated(b *testing.B) {
	benchmarkStage(b, KindCopy, Depth32, 8, FeatureSSE2)
}
