//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/pixrot"
)

// failingLoader rejects the compiled shader so registration fails when the
// shader compiler is available.
type failingLoader struct{ *testTexturer }

func (failingLoader) LoadShader([]byte) error { return errors.New("no shader slots") }

type testTexturer struct{ blits int }

func (t *testTexturer) Blit(*BlitRequest) Status {
	t.blits++
	return StatusOK
}

func TestRegister(t *testing.T) {
	t.Cleanup(Unregister)

	if err := Register(NewEmulator()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	a := pixrot.Accelerator()
	if a == nil {
		t.Fatal("no accelerator after Register")
	}
	if a.Name() != "texturer" {
		t.Errorf("Name = %q", a.Name())
	}

	Unregister()
	if pixrot.Accelerator() != nil {
		t.Error("accelerator still registered")
	}
}

func TestRegisterNil(t *testing.T) {
	t.Cleanup(Unregister)
	if err := Register(nil); err == nil {
		t.Fatal("Register(nil) should fail")
	}
	if pixrot.Accelerator() != nil {
		t.Error("failed registration installed an accelerator")
	}
}

func TestRegisterKeepsPreviousOnFailure(t *testing.T) {
	t.Cleanup(Unregister)
	if err := Register(NewEmulator()); err != nil {
		t.Fatal(err)
	}
	prev := pixrot.Accelerator()

	if err := Register(failingLoader{&testTexturer{}}); err == nil {
		// The compiler could not build the shader, so nothing was loaded.
		t.Skip("rotate shader not compiled on this toolchain")
	}
	if pixrot.Accelerator() != prev {
		t.Error("previous accelerator replaced after failed registration")
	}
}

func TestSetDeviceProvider(t *testing.T) {
	t.Cleanup(Unregister)
	Unregister()
	if err := SetDeviceProvider(struct{}{}); err != nil {
		t.Errorf("without accelerator: %v", err)
	}

	if err := Register(&testTexturer{}); err != nil {
		t.Fatal(err)
	}
	if err := SetDeviceProvider(struct{}{}); err == nil {
		t.Error("expected error for a value that is not a device provider")
	}
}
