package utils

import "sync"

// LoopMode runs a fixed number of long-term goroutines that stop together.
// The owner calls Go() for each routine and Stop() in its cleanup function.
// Each routine should work like:
/*
	lm.Go(func() {
		for {
			select {
			case <-lm.D:
				return
			// case :...other goroutine logic
			}
		}
	})
*/
type LoopMode struct {
	mu          sync.Mutex
	working     bool
	routinesNum int
	waitGroup   sync.WaitGroup
	D           chan bool
}

// NewLoop return a LoopMode.Param routines is the number of long-term running go routines(must >0)
func NewLoop(routines int) *LoopMode {
	if routines <= 0 {
		return nil
	}
	return &LoopMode{
		routinesNum: routines,
		D:           make(chan bool, routines),
	}
}

// Go starts fn as one of the routines and marks the loop working
func (l *LoopMode) Go(fn func()) {
	l.mu.Lock()
	l.working = true
	l.waitGroup.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.waitGroup.Done()
		fn()
	}()
}

// Stop signals every routine and waits for them. It returns false if the loop was not working.
func (l *LoopMode) Stop() bool {
	l.mu.Lock()
	if !l.working {
		l.mu.Unlock()
		return false
	}
	l.working = false
	l.mu.Unlock()

	for i := 0; i < l.routinesNum; i++ {
		l.D <- true
	}
	l.waitGroup.Wait()
	return true
}

func (l *LoopMode) IsWorking() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.working
}
