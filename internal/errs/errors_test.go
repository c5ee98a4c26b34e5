package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid argument", InvalidArgument("bad id %d", 0), KindInvalidArgument},
		{"not found", NotFound("user not found"), KindNotFound},
		{"forbidden", Forbidden("nope"), KindForbidden},
		{"conflict", Conflict("duplicate"), KindConflict},
		{"plain error", errors.New("boom"), 0},
		{"nil", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := KindOf(c.err); got != c.want {
				t.Fatalf("KindOf = %v, want %v", got, c.want)
			}
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading profile: %w", NotFound("user not found"))
	if !IsNotFound(err) {
		t.Fatal("wrapped not-found error must still be recognized")
	}
	if IsConflict(err) {
		t.Fatal("wrapped not-found error must not read as conflict")
	}
}

func TestMessageFormatting(t *testing.T) {
	err := Conflict("user %d already blocked", 7)
	if err.Error() != "user 7 already blocked" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
