package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "student@example.com"},
		{name: "valid with plus", email: "student+test@example.com"},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "studentexample.com", wantErr: true},
		{name: "missing tld", email: "student@example", wantErr: true},
		{name: "whitespace trimmed", email: "  student@example.com  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestValidateDifficulty(t *testing.T) {
	for _, d := range []string{"easy", "medium", "hard"} {
		if err := ValidateDifficulty(d); err != nil {
			t.Errorf("ValidateDifficulty(%q) = %v, want nil", d, err)
		}
	}
	if err := ValidateDifficulty("extreme"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestValidateQuestionType(t *testing.T) {
	for _, qt := range []string{"multiple-choice", "short-answer", "paragraph", "matching"} {
		if err := ValidateQuestionType(qt); err != nil {
			t.Errorf("ValidateQuestionType(%q) = %v, want nil", qt, err)
		}
	}
	if err := ValidateQuestionType("true-false"); err == nil {
		t.Error("expected error for unsupported question type")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "title", Message: "title is required"}
	if err.Error() != "title: title is required" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
