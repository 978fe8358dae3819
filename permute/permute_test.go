package permute

import "testing"

func TestIdentity(t *testing.T) {
	perm := Identity(5)
	for i, v := range perm {
		if v != uint32(i) {
			t.Fatalf("perm[%d] = %d, want %d", i, v, i)
		}
	}
	if err := Validate(perm, 5); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestImageXformIsPermutation(t *testing.T) {
	perm := ImageXform(4, 4, 3, 2, 2)
	if err := Validate(perm, 4*4*3); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestImageXformNonMultipleDimensions(t *testing.T) {
	// Tile size doesn't evenly divide the image; tiles at the edge are
	// truncated rather than overrunning.
	perm := ImageXform(5, 7, 1, 3, 3)
	if err := Validate(perm, 5*7); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	if err := Validate([]uint32{0, 1, 5}, 3); err == nil {
		t.Fatal("Validate accepted an out-of-range entry")
	}
}

func TestValidateRejectsDuplicate(t *testing.T) {
	if err := Validate([]uint32{0, 1, 1}, 3); err == nil {
		t.Fatal("Validate accepted a duplicate entry")
	}
}

func TestValidateRejectsWrongLength(t *testing.T) {
	if err := Validate([]uint32{0, 1}, 3); err == nil {
		t.Fatal("Validate accepted a short table")
	}
}
