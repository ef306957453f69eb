package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_OneShot(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	fired := make(chan struct{}, 1)
	manager.AddTimer(10*time.Millisecond, 0, func() {
		fired <- struct{}{}
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Timer did not fire within 1s")
	}

	// 一次性任务不会再触发
	select {
	case <-fired:
		t.Fatal("One-shot timer fired twice")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestManager_Periodic(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var count int64
	manager.AddTimer(10*time.Millisecond, 100*time.Millisecond, func() {
		atomic.AddInt64(&count, 1)
	})

	time.Sleep(time.Second)
	if got := atomic.LoadInt64(&count); got < 2 {
		t.Errorf("Periodic timer should fire repeatedly, got %d", got)
	}
}

func TestManager_RemoveTimer(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var count int64
	id := manager.AddTimer(time.Hour, 0, func() {
		atomic.AddInt64(&count, 1)
	})
	manager.RemoveTimer(id)

	time.Sleep(300 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != 0 {
		t.Errorf("Removed timer must not fire, got %d", got)
	}
}
