package agent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistory_DropsOldestTurns(t *testing.T) {
	h := NewHistory(4)

	for i := range 6 {
		h.Append("c1", Turn{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	got := h.Get("c1")
	require.Len(t, got, 4)
	require.Equal(t, "m2", got[0].Content)
	require.Equal(t, "m5", got[3].Content)
}

func TestHistory_DefaultLimit(t *testing.T) {
	require.Equal(t, DefaultHistoryLength, NewHistory(0).Limit())
	require.Equal(t, DefaultHistoryLength, NewHistory(-3).Limit())
}

func TestHistory_ConversationsAreIndependent(t *testing.T) {
	h := NewHistory(10)
	h.Append("a", Turn{Role: "user", Content: "hi"})
	h.Append("b", Turn{Role: "user", Content: "yo"}, Turn{Role: "assistant", Content: "hey"})

	require.Equal(t, 1, h.Len("a"))
	require.Equal(t, 2, h.Len("b"))

	h.Clear("b")
	require.Equal(t, 0, h.Len("b"))
	require.Equal(t, 1, h.Len("a"))
}

func TestHistory_GetReturnsCopy(t *testing.T) {
	h := NewHistory(10)
	h.Append("a", Turn{Role: "user", Content: "hi"})

	got := h.Get("a")
	got[0].Content = "changed"

	require.Equal(t, "hi", h.Get("a")[0].Content)
	require.Empty(t, h.Get("missing"))
}

func TestHistory_ConcurrentAppend(t *testing.T) {
	h := NewHistory(50)

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			h.Append("c", Turn{Role: "user", Content: fmt.Sprint(i)})
		}()
	}

	wg.Wait()
	require.Equal(t, 20, h.Len("c"))
}
