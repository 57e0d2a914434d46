package roles

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{AdminID, "admin"},
		{MemberID, "member"},
		{AdopterID, "adopter"},
		{0, "adopter"},   // unknown defaults to least privilege
		{99, "adopter"},  // unknown defaults to least privilege
		{-1, "adopter"},  // unknown defaults to least privilege
	}

	for _, tt := range tests {
		if got := Name(tt.id); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"admin", AdminID, false},
		{"member", MemberID, false},
		{"adopter", AdopterID, false},
		{"ADMIN", AdminID, false},
		{"  member ", MemberID, false},
		{"superadmin", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ID(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ID(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ID(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []int{AdminID, MemberID, AdopterID} {
		got, err := ID(Name(id))
		if err != nil {
			t.Fatalf("ID(Name(%d)) failed: %v", id, err)
		}
		if got != id {
			t.Errorf("round trip for id %d: got %d", id, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, name := range []string{"admin", "member", "adopter"} {
		if !IsValid(name) {
			t.Errorf("IsValid(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"visitor", "owner", ""} {
		if IsValid(name) {
			t.Errorf("IsValid(%q) = true, want false", name)
		}
	}
}
