package validators

import "testing"

type payload struct {
	Content string `validate:"required"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&payload{Content: "hello"}); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
	if err := v.Validate(&payload{}); err == nil {
		t.Error("empty required field accepted")
	}
}
