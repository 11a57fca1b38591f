package factor

import (
	"context"
	"testing"

	"github.com/agbru/snfscalc/internal/u128"
)

func TestFactoryDefaults(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	want := []string{"rho", "snfs", "trial"}
	got := f.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q (sorted)", i, got[i], want[i])
		}
	}

	for _, name := range want {
		if !f.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}
	if f.Has("qs") {
		t.Error("Has reported an unregistered attacker")
	}
}

func TestFactoryGetCaches(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	a1, err := f.Get("rho")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := f.Get("rho")
	if err != nil {
		t.Fatal(err)
	}
	if a1 != a2 {
		t.Error("Get returned distinct instances for the same name")
	}
}

func TestFactoryCreateIsFresh(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	a1, err := f.Create("trial")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := f.Create("trial")
	if err != nil {
		t.Fatal(err)
	}
	if a1 == a2 {
		t.Error("Create returned a cached instance")
	}
}

func TestFactoryUnknownAttacker(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if _, err := f.Get("ecm"); err == nil {
		t.Error("Get for an unknown attacker succeeded")
	}
	if _, err := f.Create("ecm"); err == nil {
		t.Error("Create for an unknown attacker succeeded")
	}
}

func TestFactoryMustGetPanics(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	defer func() {
		if recover() == nil {
			t.Error("MustGet on an unknown attacker did not panic")
		}
	}()
	f.MustGet("ecm")
}

func TestFactoryRegisterCustom(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if err := f.Register("fake", func() coreAttacker { return &fakeCore{factor: u128.From64(3)} }); err != nil {
		t.Fatal(err)
	}

	att, err := f.Get("fake")
	if err != nil {
		t.Fatal(err)
	}
	res, err := att.Factorize(context.Background(), nil, 0, u128.From64(15), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Factor.Cmp(u128.From64(3)) != 0 {
		t.Errorf("custom attacker factor = %s, want 3", res.Factor.String())
	}
}

func TestFactoryReRegisterDropsCache(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	cached, err := f.Get("trial")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Register("trial", func() coreAttacker { return &TrialDivisionAttacker{} }); err != nil {
		t.Fatal(err)
	}
	fresh, err := f.Get("trial")
	if err != nil {
		t.Fatal(err)
	}
	if cached == fresh {
		t.Error("re-registration did not invalidate the cached instance")
	}
}

func TestFactoryGetAll(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	all := f.GetAll()
	if len(all) != 3 {
		t.Fatalf("GetAll returned %d attackers, want 3", len(all))
	}
	for name, att := range all {
		if att == nil {
			t.Errorf("GetAll[%q] is nil", name)
		}
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() == nil {
		t.Fatal("GlobalFactory returned nil")
	}
	if !GlobalFactory().Has("snfs") {
		t.Error("global factory missing the snfs attacker")
	}
}
