package preflight

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

func TestOtherInstances(t *testing.T) {
	list := func() ([]ps.Process, error) {
		return []ps.Process{
			fakeProcess{1, "init"},
			fakeProcess{100, "artforge"},
			fakeProcess{200, "artforge"},
			fakeProcess{300, "magick"},
		}, nil
	}

	got, err := OtherInstances(list, "artforge", 100)
	if err != nil {
		t.Fatalf("OtherInstances() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int{200}) {
		t.Errorf("Expected [200], got %v", got)
	}
}

func TestOtherInstancesNone(t *testing.T) {
	list := func() ([]ps.Process, error) {
		return []ps.Process{fakeProcess{100, "artforge"}}, nil
	}

	got, err := OtherInstances(list, "artforge", 100)
	if err != nil {
		t.Fatalf("OtherInstances() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no other instances, got %v", got)
	}
}

func TestOtherInstancesListError(t *testing.T) {
	list := func() ([]ps.Process, error) {
		return nil, errors.New("permission denied")
	}

	if _, err := OtherInstances(list, "artforge", 1); err == nil {
		t.Error("Expected error from failing process lister")
	}
}
