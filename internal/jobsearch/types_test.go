package jobsearch

import "testing"

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestValidateRequiresRole(t *testing.T) {
	req := JobSearchRequest{Role: "   "}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for blank role")
	}
}

func TestValidateDefaultsLimit(t *testing.T) {
	req := JobSearchRequest{Role: "Software Engineer"}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.Limit != DefaultLimit {
		t.Fatalf("limit = %d, want %d", req.Limit, DefaultLimit)
	}
}

func TestValidateRejectsNonPositiveSalary(t *testing.T) {
	req := JobSearchRequest{Role: "SWE", MinSalaryUSD: intPtr(0)}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for zero salary")
	}
	req = JobSearchRequest{Role: "SWE", MinSalaryUSD: intPtr(-5)}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for negative salary")
	}
}

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "normalizes case and spacing", in: "  austin ,  tx ", want: "austin, TX"},
		{name: "accepts DC", in: "Washington, DC", want: "Washington, DC"},
		{name: "missing comma", in: "Austin TX", wantErr: true},
		{name: "unknown state", in: "Austin, ZZ", wantErr: true},
		{name: "empty city", in: ", TX", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := JobSearchRequest{Role: "SWE", Location: strPtr(tt.in)}
			err := req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate(%q) = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q): %v", tt.in, err)
			}
			if req.Location == nil || *req.Location != tt.want {
				t.Fatalf("location = %v, want %q", req.Location, tt.want)
			}
		})
	}
}

func TestValidateBlankLocationDropped(t *testing.T) {
	req := JobSearchRequest{Role: "SWE", Location: strPtr("   ")}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.Location != nil {
		t.Fatal("blank location should be treated as absent")
	}
}
