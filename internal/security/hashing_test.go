package security

import "testing"

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4) // min cost to keep the test fast

	hash, err := h.Hash([]byte("Correct1!horse"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "Correct1!horse" {
		t.Fatal("hash must be non-empty and not the plaintext")
	}
	if err := h.Compare(hash, []byte("Correct1!horse")); err != nil {
		t.Errorf("Compare with correct password: %v", err)
	}
	if err := h.Compare(hash, []byte("Wrong1!battery")); err == nil {
		t.Error("Compare with wrong password should fail")
	}
}

func TestHasher_DistinctSalts(t *testing.T) {
	h := NewHasher(4)
	h1, err := h.Hash([]byte("SamePassword1!"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash([]byte("SamePassword1!"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (salted)")
	}
}

func TestNewHasher_CostClamping(t *testing.T) {
	if h := NewHasher(0); h.Cost <= 0 {
		t.Errorf("zero cost should fall back to a default, got %d", h.Cost)
	}
	if h := NewHasher(1); h.Cost < 4 {
		t.Errorf("cost below min should be clamped, got %d", h.Cost)
	}
	if h := NewHasher(99); h.Cost > 31 {
		t.Errorf("cost above max should be clamped, got %d", h.Cost)
	}
}
