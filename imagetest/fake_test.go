package imagetest

import (
	"fmt"
	"runtime"
	"testing"
)

// fakeTB records failures instead of failing the enclosing test. Methods not
// overridden panic through the nil embedded interface.
type fakeTB struct {
	testing.TB
	name     string
	failed   bool
	skipped  bool
	errors   []string
	logs     []string
	cleanups []func()
}

func newFakeTB(name string) *fakeTB {
	return &fakeTB{name: name}
}

func (f *fakeTB) Helper()      {}
func (f *fakeTB) Name() string { return f.name }
func (f *fakeTB) Fail()        { f.failed = true }
func (f *fakeTB) Failed() bool { return f.failed }

func (f *fakeTB) Errorf(format string, args ...any) {
	f.failed = true
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.Errorf(format, args...)
	runtime.Goexit()
}

func (f *fakeTB) FailNow() {
	f.failed = true
	runtime.Goexit()
}

func (f *fakeTB) Skipf(format string, args ...any) {
	f.skipped = true
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
	runtime.Goexit()
}

func (f *fakeTB) Logf(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

func (f *fakeTB) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

// run executes fn the way the testing package runs a test body: on its own
// goroutine, so Goexit from FailNow stops only fn. Cleanups run afterwards.
func (f *fakeTB) run(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done

	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
	f.cleanups = nil
}
