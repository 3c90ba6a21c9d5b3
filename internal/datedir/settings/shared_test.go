package settings

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/example/datedir/internal/datedir/dateformat"
	"github.com/example/datedir/internal/datedir/domain"
)

func TestSharedGetReturnsCopy(t *testing.T) {
	shared := NewShared(Default("/a"))

	rec, err := shared.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rec.FolderPath = "/mutated"

	again, _ := shared.Get()
	if again.FolderPath != "/a" {
		t.Fatalf("callers must not be able to mutate the live record, got %q", again.FolderPath)
	}
}

func TestSharedUpdateReplacesOnlyOnSuccess(t *testing.T) {
	shared := NewShared(Default("/a"))
	failure := errors.New("persist failed")

	err := shared.Update(func(current Record) (Record, error) {
		return Default("/b"), failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected failure to propagate, got %v", err)
	}
	if rec, _ := shared.Get(); rec.FolderPath != "/a" {
		t.Fatalf("failed update must not replace the record, got %q", rec.FolderPath)
	}

	if err := shared.Update(func(current Record) (Record, error) {
		return Default("/b"), nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec, _ := shared.Get(); rec.FolderPath != "/b" {
		t.Fatalf("expected /b, got %q", rec.FolderPath)
	}
}

func TestSharedPanicPoisons(t *testing.T) {
	shared := NewShared(Default("/a"))

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		shared.Update(func(current Record) (Record, error) {
			panic("boom")
		})
	}()

	if !shared.Poisoned() {
		t.Fatal("container should be poisoned")
	}
	if _, err := shared.Get(); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration from poisoned Get, got %v", err)
	}
	err := shared.Update(func(current Record) (Record, error) { return current, nil })
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration from poisoned Update, got %v", err)
	}
}

func TestSharedNoTornReads(t *testing.T) {
	old := Record{FolderPath: "/old", DateFormat: dateformat.ShortMonthDay, AutoStart: false, AutoCreateOnStartup: false}
	shared := NewShared(old)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			next := Record{FolderPath: fmt.Sprintf("/new-%d", i), DateFormat: dateformat.FullISODate, AutoStart: true, AutoCreateOnStartup: true}
			shared.Update(func(current Record) (Record, error) { return next, nil })
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			rec, err := shared.Get()
			if err != nil {
				errs <- err
				return
			}
			isOld := rec == old
			isNew := rec.DateFormat == dateformat.FullISODate && rec.AutoStart && rec.AutoCreateOnStartup && rec.FolderPath != "/old"
			if !isOld && !isNew {
				errs <- fmt.Errorf("torn record observed: %+v", rec)
				return
			}
		}
	}()

	wg.Wait()
	select {
	case err := <-errs:
		t.Fatal(err)
	default:
	}
}
