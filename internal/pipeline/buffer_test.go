package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestBuffer_BasicSendReceive(t *testing.T) {
	buf := NewBuffer[int](10)

	for i := 0; i < 5; i++ {
		if !buf.Send(i) {
			t.Fatalf("Send(%d) returned false", i)
		}
	}

	if buf.Len() != 5 {
		t.Errorf("Len() = %d, want 5", buf.Len())
	}

	for i := 0; i < 5; i++ {
		val, ok := buf.TryReceive()
		if !ok {
			t.Fatalf("TryReceive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}

	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf.Len())
	}
}

func TestBuffer_MultipleGrows(t *testing.T) {
	buf := NewBuffer[int](4)

	// Send 100 items - should trigger multiple grows
	for i := 0; i < 100; i++ {
		if !buf.Send(i) {
			t.Fatalf("Send(%d) returned false", i)
		}
	}

	stats := buf.Stats()
	if stats.Count != 100 {
		t.Errorf("Count = %d, want 100", stats.Count)
	}
	if stats.Grows < 3 {
		t.Errorf("Grows = %d, expected at least 3 resizes", stats.Grows)
	}

	// Verify all items in order
	for i := 0; i < 100; i++ {
		val, ok := buf.TryReceive()
		if !ok {
			t.Fatalf("TryReceive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}
}

func TestBuffer_BlockingReceive(t *testing.T) {
	buf := NewBuffer[int](10)

	received := make(chan int, 1)

	go func() {
		val, ok := buf.Receive()
		if ok {
			received <- val
		}
	}()

	// Give receiver time to start waiting
	time.Sleep(10 * time.Millisecond)

	buf.Send(42)

	select {
	case val := <-received:
		if val != 42 {
			t.Errorf("received %d, want 42", val)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for blocked receive")
	}
}

func TestBuffer_Close(t *testing.T) {
	buf := NewBuffer[int](10)

	buf.Send(1)
	buf.Send(2)
	buf.Close()

	// Send should return false after close
	if buf.Send(3) {
		t.Error("Send should return false after Close")
	}

	// Can still receive existing items
	val, ok := buf.TryReceive()
	if !ok || val != 1 {
		t.Errorf("TryReceive() = %d, %v; want 1, true", val, ok)
	}

	val, ok = buf.TryReceive()
	if !ok || val != 2 {
		t.Errorf("TryReceive() = %d, %v; want 2, true", val, ok)
	}

	_, ok = buf.TryReceive()
	if ok {
		t.Error("TryReceive should return false when empty and closed")
	}
}

func TestBuffer_CloseUnblocksReceive(t *testing.T) {
	buf := NewBuffer[int](10)

	done := make(chan bool, 1)

	go func() {
		_, ok := buf.Receive()
		done <- ok
	}()

	// Give receiver time to start waiting
	time.Sleep(10 * time.Millisecond)

	buf.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Receive should return false when closed and empty")
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not unblock Receive")
	}
}

func TestBuffer_WrapAround(t *testing.T) {
	buf := NewBuffer[int](5)

	buf.Send(1)
	buf.Send(2)
	buf.Send(3)

	buf.TryReceive() // removes 1
	buf.TryReceive() // removes 2

	// Add more - this wraps around
	buf.Send(4)
	buf.Send(5)
	buf.Send(6)
	buf.Send(7)

	// Now trigger growth with a wrapped ring
	buf.Send(8)
	buf.Send(9)

	expected := []int{3, 4, 5, 6, 7, 8, 9}
	for _, want := range expected {
		got, ok := buf.TryReceive()
		if !ok {
			t.Fatalf("TryReceive failed, expected %d", want)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestBuffer_ConcurrentSendReceive(t *testing.T) {
	buf := NewBuffer[int](10)
	const numItems = 1000

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numItems; i++ {
			buf.Send(i)
		}
	}()

	received := make([]int, 0, numItems)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numItems; i++ {
			val, ok := buf.Receive()
			if ok {
				received = append(received, val)
			}
		}
	}()

	wg.Wait()

	if len(received) != numItems {
		t.Fatalf("received %d items, want %d", len(received), numItems)
	}

	// Single sender and single receiver, so order is preserved
	for i, val := range received {
		if val != i {
			t.Errorf("received[%d] = %d, want %d", i, val, i)
		}
	}
}

func TestBuffer_Stats(t *testing.T) {
	buf := NewBuffer[int](10)

	stats := buf.Stats()
	if stats.Count != 0 || stats.Capacity != 10 || stats.TotalIn != 0 || stats.TotalOut != 0 {
		t.Errorf("initial stats incorrect: %+v", stats)
	}

	buf.Send(1)
	buf.Send(2)
	buf.Send(3)

	stats = buf.Stats()
	if stats.Count != 3 || stats.TotalIn != 3 {
		t.Errorf("stats after sends: %+v", stats)
	}

	buf.TryReceive()
	buf.TryReceive()

	stats = buf.Stats()
	if stats.Count != 1 || stats.TotalOut != 2 {
		t.Errorf("stats after receives: %+v", stats)
	}
}

func TestNewBuffer_MinCapacity(t *testing.T) {
	buf := NewBuffer[int](0)
	if got := buf.Stats().Capacity; got != 1 {
		t.Errorf("Capacity = %d, want 1 for initial capacity 0", got)
	}

	buf = NewBuffer[int](-5)
	if got := buf.Stats().Capacity; got != 1 {
		t.Errorf("Capacity = %d, want 1 for negative initial capacity", got)
	}
}
