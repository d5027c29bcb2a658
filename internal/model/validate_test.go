package model

import (
	"strings"
	"testing"
)

func validInput() Project {
	return Project{
		Name:            "acme",
		Environment:     EnvTest,
		PublishableKey:  "pk_test_abc",
		SecretKey:       "sk_test_abc",
		DefaultCurrency: "usd",
	}
}

func TestValidateProjectInput(t *testing.T) {
	for _, tc := range []struct {
		name      string
		mutate    func(*Project)
		wantField string
	}{
		{"Valid", func(p *Project) {}, ""},
		{"RestrictedKey", func(p *Project) { p.SecretKey = "rk_test_abc" }, ""},
		{"LiveProject", func(p *Project) {
			p.Environment = EnvLive
			p.PublishableKey = "pk_live_abc"
			p.SecretKey = "sk_live_abc"
		}, ""},
		{"MissingName", func(p *Project) { p.Name = "  " }, "name"},
		{"BadEnvironment", func(p *Project) { p.Environment = "staging" }, "environment"},
		{"BadPublishableKey", func(p *Project) { p.PublishableKey = "sk_test_abc" }, "publishableKey"},
		{"PublishableKeyModeMismatch", func(p *Project) { p.PublishableKey = "pk_live_abc" }, "publishableKey"},
		{"BadSecretKey", func(p *Project) { p.SecretKey = "pk_test_abc" }, "secretKey"},
		{"SecretKeyModeMismatch", func(p *Project) { p.SecretKey = "sk_live_abc" }, "secretKey"},
		{"BadCurrencyLength", func(p *Project) { p.DefaultCurrency = "usdd" }, "defaultCurrency"},
		{"BadCurrencyChars", func(p *Project) { p.DefaultCurrency = "u5d" }, "defaultCurrency"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := validInput()
			tc.mutate(&p)

			err := ValidateProjectInput(&p)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error = %v (%T), want *ValidationError", err, err)
			}
			found := false
			for _, fe := range ve.Errors {
				if fe.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no error on field %q; got %v", tc.wantField, ve)
			}
		})
	}
}

func TestValidateProjectInput_CollectsAllFields(t *testing.T) {
	p := Project{}
	err := ValidateProjectInput(&p)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}
	if len(ve.Errors) < 4 {
		t.Errorf("errors = %d, want one per invalid field: %v", len(ve.Errors), ve)
	}
	if !strings.Contains(ve.Error(), ";") {
		t.Errorf("Error() should join field messages: %q", ve.Error())
	}
}

func TestKeyEnvironment(t *testing.T) {
	for _, tc := range []struct {
		key  string
		want Environment
	}{
		{"pk_test_abc", EnvTest},
		{"sk_live_abc", EnvLive},
		{"rk_test_abc", EnvTest},
		{"whsec_abc", ""},
		{"pk_test", ""},
		{"", ""},
	} {
		if got := KeyEnvironment(tc.key); got != tc.want {
			t.Errorf("KeyEnvironment(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestEnvironment_IsValid(t *testing.T) {
	for _, tc := range []struct {
		env  Environment
		want bool
	}{
		{EnvTest, true},
		{EnvLive, true},
		{"staging", false},
		{"", false},
	} {
		if got := tc.env.IsValid(); got != tc.want {
			t.Errorf("%q.IsValid() = %t, want %t", tc.env, got, tc.want)
		}
	}
}
