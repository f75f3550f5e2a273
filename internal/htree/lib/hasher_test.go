package lib

import (
	"testing"
)

func TestSum32(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		// Arrange: an accumulator of 0 stays 0 through the finalization.
		const want uint32 = 0

		// Act
		got := Sum32(nil)

		// Assert
		if got != want {
			t.Errorf("Sum32(nil) = %d, want %d", got, want)
		}
		if got := Sum32([]byte{}); got != want {
			t.Errorf("Sum32([]byte{}) = %d, want %d", got, want)
		}
	})

	t.Run("single byte matches the documented steps", func(t *testing.T) {
		// Arrange: run the documented operations by hand for 'A' (65).
		var h uint32
		h += 65      // 65
		h += h << 10 // 66625
		h ^= h >> 6  // 65616
		h += h << 3  // 590544
		h ^= h >> 11 // 590832
		h += h << 15 // 2181104624
		const want uint32 = 2181104624
		if h != want {
			t.Fatalf("hand computation drifted: got %d, want %d", h, want)
		}

		// Act
		got := Sum32([]byte{65})

		// Assert
		if got != want {
			t.Errorf("Sum32('A') = %d, want %d", got, want)
		}
	})

	t.Run("known strings", func(t *testing.T) {
		testCases := []struct {
			input string
			want  uint32
		}{
			{"a", 3392050242},
			{"hello world", 1045060183},
		}
		for _, tc := range testCases {
			if got := Sum32([]byte(tc.input)); got != tc.want {
				t.Errorf("Sum32(%q) = %d, want %d", tc.input, got, tc.want)
			}
		}
	})

	t.Run("wraps instead of overflowing", func(t *testing.T) {
		content := make([]byte, 1<<16)
		for i := range content {
			content[i] = 0xff
		}

		first := Sum32(content)
		second := Sum32(content)

		if first != second {
			t.Errorf("Sum32 is not deterministic: %d != %d", first, second)
		}
	})
}

func TestNew32(t *testing.T) {
	t.Run("streaming equals one-shot", func(t *testing.T) {
		h := New32()
		_, _ = h.Write([]byte("hello "))
		_, _ = h.Write([]byte("world"))

		if got, want := h.Sum32(), Sum32([]byte("hello world")); got != want {
			t.Errorf("streaming Sum32() = %d, want %d", got, want)
		}
	})

	t.Run("Sum32 does not disturb further writes", func(t *testing.T) {
		h := New32()
		_, _ = h.Write([]byte("hello"))
		_ = h.Sum32()
		_, _ = h.Write([]byte(" world"))

		if got, want := h.Sum32(), Sum32([]byte("hello world")); got != want {
			t.Errorf("Sum32() after intermediate read = %d, want %d", got, want)
		}
	})

	t.Run("Sum appends big-endian bytes", func(t *testing.T) {
		h := New32()
		_, _ = h.Write([]byte{65})

		got := h.Sum([]byte{0xaa})
		want := []byte{0xaa, 0x82, 0x01, 0x03, 0xf0}

		if string(got) != string(want) {
			t.Errorf("Sum() = %x, want %x", got, want)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		h := New32()
		_, _ = h.Write([]byte("data"))
		h.Reset()

		if got := h.Sum32(); got != 0 {
			t.Errorf("Sum32() after Reset = %d, want 0", got)
		}
		if h.Size() != 4 || h.BlockSize() != 1 {
			t.Errorf("Size/BlockSize = %d/%d, want 4/1", h.Size(), h.BlockSize())
		}
	})
}

func TestSumPadded(t *testing.T) {
	testCases := []struct {
		name    string
		content []byte
		pad     int
	}{
		{"no padding", []byte("hello world"), 0},
		{"padding after content", []byte("hello world"), 37},
		{"padding only", nil, 4096},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			full := make([]byte, len(tc.content)+tc.pad)
			copy(full, tc.content)

			// Act
			got := sumPadded(tc.content, tc.pad)

			// Assert
			if want := Sum32(full); got != want {
				t.Errorf("sumPadded(%q, %d) = %d, want %d", tc.content, tc.pad, got, want)
			}
		})
	}
}
