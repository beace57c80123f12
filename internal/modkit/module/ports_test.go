package module

import (
	"strings"
	"testing"

	"exhume/internal/modkit/httpkit"
)

// LoaderPort is a stand in for the interfaces modules publish through Ports()
type LoaderPort interface {
	Load() int
}

type loaderImpl struct{ n int }

func (l loaderImpl) Load() int { return l.n }

// bundleModule wraps an arbitrary ports payload for lookup tests
type bundleModule struct {
	name  string
	ports any
}

func (m bundleModule) Name() string               { return m.name }
func (m bundleModule) Ports() PortSet             { return m.ports }
func (m bundleModule) MountRoutes(httpkit.Router) {}

func TestPortsOf_NilBundle(t *testing.T) {
	t.Parallel()

	m := bundleModule{name: "warehouse", ports: nil}
	if _, ok := PortsOf[LoaderPort](m); ok {
		t.Fatal("nil bundle reported a port")
	}
}

func TestPortsOf_BundleImplementsDirectly(t *testing.T) {
	t.Parallel()

	m := bundleModule{name: "warehouse", ports: LoaderPort(loaderImpl{n: 42})}

	got, ok := PortsOf[LoaderPort](m)
	if !ok {
		t.Fatal("direct implementation not found")
	}
	if got.Load() != 42 {
		t.Fatalf("Load() = %d, want 42", got.Load())
	}
}

func TestPortsOf_FindsExportedField(t *testing.T) {
	t.Parallel()

	type Ports struct {
		Loader LoaderPort
		Extra  int
	}
	m := bundleModule{name: "warehouse", ports: Ports{Loader: loaderImpl{n: 7}, Extra: 1}}

	got, ok := PortsOf[LoaderPort](m)
	if !ok {
		t.Fatal("exported field not found")
	}
	if got.Load() != 7 {
		t.Fatalf("Load() = %d, want 7", got.Load())
	}
}

func TestPortsOf_SkipsUnexportedFields(t *testing.T) {
	t.Parallel()

	type ports struct {
		loader LoaderPort
		extra  int
	}
	m := bundleModule{name: "warehouse", ports: ports{loader: loaderImpl{n: 1}, extra: 2}}

	if _, ok := PortsOf[LoaderPort](m); ok {
		t.Fatal("unexported field satisfied the lookup")
	}
}

func TestMustPortsOf_PanicNamesTheModule(t *testing.T) {
	t.Parallel()

	m := bundleModule{name: "review", ports: nil}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("missing port did not panic")
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, "review") || !strings.Contains(msg, "requested port not found") {
			t.Fatalf("panic message %q lacks module name or hint", msg)
		}
	}()

	_ = MustPortsOf[LoaderPort](m)
}

func TestMustPortsOf_ReturnsPort(t *testing.T) {
	t.Parallel()

	m := bundleModule{name: "warehouse", ports: LoaderPort(loaderImpl{n: 99})}

	got := MustPortsOf[LoaderPort](m)
	if got.Load() != 99 {
		t.Fatalf("Load() = %d, want 99", got.Load())
	}
}
