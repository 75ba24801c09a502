package validation

import "testing"

// signupPayload mirrors the account signup rule set.
type signupPayload struct {
	FullName string `json:"fullname" validate:"required,min=3,max=100"`
	Phone    string `json:"phone" validate:"required,phonedigits"`
	Email    string `json:"email" validate:"required,min=6,max=60,email,emailtld"`
	Password string `json:"password" validate:"required,digitsonly"`
}

func validPayload() signupPayload {
	return signupPayload{
		FullName: "Amina Hassan",
		Phone:    "252611234567",
		Email:    "amina@restaurant.com",
		Password: "123456",
	}
}

func TestCheckValidPayload(t *testing.T) {
	v := New()
	if ferr := v.Check(validPayload()); ferr != nil {
		t.Errorf("Check() = %v, want nil", ferr)
	}
}

func TestCheckReportsFirstViolation(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		mutate    func(*signupPayload)
		wantField string
		wantRule  string
	}{
		{
			name:      "missing fullname",
			mutate:    func(p *signupPayload) { p.FullName = "" },
			wantField: "fullname",
			wantRule:  "required",
		},
		{
			name:      "fullname too short",
			mutate:    func(p *signupPayload) { p.FullName = "Al" },
			wantField: "fullname",
			wantRule:  "min",
		},
		{
			name:      "phone too short",
			mutate:    func(p *signupPayload) { p.Phone = "12345678" },
			wantField: "phone",
			wantRule:  "phonedigits",
		},
		{
			name:      "phone with letters",
			mutate:    func(p *signupPayload) { p.Phone = "25261abc4567" },
			wantField: "phone",
			wantRule:  "phonedigits",
		},
		{
			name:      "malformed email",
			mutate:    func(p *signupPayload) { p.Email = "not-an-email" },
			wantField: "email",
			wantRule:  "email",
		},
		{
			name:      "disallowed email domain",
			mutate:    func(p *signupPayload) { p.Email = "amina@restaurant.org" },
			wantField: "email",
			wantRule:  "emailtld",
		},
		{
			name:      "password with letters",
			mutate:    func(p *signupPayload) { p.Password = "12345a" },
			wantField: "password",
			wantRule:  "digitsonly",
		},
		{
			name:      "password too short",
			mutate:    func(p *signupPayload) { p.Password = "12345" },
			wantField: "password",
			wantRule:  "digitsonly",
		},
		{
			name: "first failing field wins",
			mutate: func(p *signupPayload) {
				p.Phone = "bad"
				p.Password = "alsobad"
			},
			wantField: "phone",
			wantRule:  "phonedigits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			ferr := v.Check(&p)
			if ferr == nil {
				t.Fatal("Check() = nil, want a violation")
			}
			if ferr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ferr.Field, tt.wantField)
			}
			if ferr.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", ferr.Rule, tt.wantRule)
			}
			if ferr.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestCheckRequiredAmountPointer(t *testing.T) {
	type payload struct {
		Merchant *float64 `json:"merchant" validate:"required"`
	}

	v := New()
	if ferr := v.Check(payload{}); ferr == nil || ferr.Field != "merchant" {
		t.Errorf("Check() = %v, want required violation on merchant", ferr)
	}

	zero := 0.0
	if ferr := v.Check(payload{Merchant: &zero}); ferr != nil {
		t.Errorf("Check() with explicit zero = %v, want nil", ferr)
	}
}
