package chaos

import "testing"

func TestDeriveParametersRejectsEmptyKey(t *testing.T) {
	if _, err := DeriveParameters(nil, 0, 0); err != ErrKeyTooShort {
		t.Errorf("DeriveParameters(nil key) error = %v, want ErrKeyTooShort", err)
	}
	if _, err := DeriveParameters([]byte{}, 0, 0); err != ErrKeyTooShort {
		t.Errorf("DeriveParameters(empty key) error = %v, want ErrKeyTooShort", err)
	}
}

func TestDeriveParametersIsDeterministic(t *testing.T) {
	key := []byte("correct horse battery staple")
	a, err := DeriveParameters(key, 12, 34)
	if err != nil {
		t.Fatalf("DeriveParameters failed: %v", err)
	}
	b, err := DeriveParameters(key, 12, 34)
	if err != nil {
		t.Fatalf("DeriveParameters failed: %v", err)
	}
	if a.LogisticR != b.LogisticR || a.LogisticX0 != b.LogisticX0 || a.ArnoldIterations != b.ArnoldIterations {
		t.Errorf("DeriveParameters is not deterministic for a fixed (key, anchor)")
	}
	if a.ChannelSeed.Cmp(b.ChannelSeed) != 0 {
		t.Errorf("ChannelSeed is not deterministic for a fixed (key, anchor)")
	}
}

func TestDeriveParametersIsSensitiveToKeyAndAnchor(t *testing.T) {
	base, err := DeriveParameters([]byte("key-one"), 5, 5)
	if err != nil {
		t.Fatalf("DeriveParameters failed: %v", err)
	}
	otherKey, err := DeriveParameters([]byte("key-two"), 5, 5)
	if err != nil {
		t.Fatalf("DeriveParameters failed: %v", err)
	}
	otherAnchor, err := DeriveParameters([]byte("key-one"), 6, 5)
	if err != nil {
		t.Fatalf("DeriveParameters failed: %v", err)
	}

	if base.LogisticR == otherKey.LogisticR && base.LogisticX0 == otherKey.LogisticX0 && base.ArnoldIterations == otherKey.ArnoldIterations {
		t.Errorf("changing the key did not change the derived parameters")
	}
	if base.LogisticR == otherAnchor.LogisticR && base.LogisticX0 == otherAnchor.LogisticX0 && base.ArnoldIterations == otherAnchor.ArnoldIterations {
		t.Errorf("changing the anchor did not change the derived parameters")
	}
}

func TestDeriveParametersRangeInvariants(t *testing.T) {
	p, err := DeriveParameters([]byte("range check"), 1, 2)
	if err != nil {
		t.Fatalf("DeriveParameters failed: %v", err)
	}
	if p.LogisticR <= 3.57 || p.LogisticR > 4.0 {
		t.Errorf("LogisticR = %v, want in (3.57, 4.0]", p.LogisticR)
	}
	if p.LogisticX0 <= 0 || p.LogisticX0 >= 1 {
		t.Errorf("LogisticX0 = %v, want in (0, 1)", p.LogisticX0)
	}
	if p.ArnoldIterations < 1 || p.ArnoldIterations > 10 {
		t.Errorf("ArnoldIterations = %d, want in [1, 10]", p.ArnoldIterations)
	}
}
