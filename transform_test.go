package recache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestTransformStacks(t *testing.T) {
	ctx := context.Background()

	base := Func[string](func(_ context.Context, call Call) (string, error) {
		return call.Args[0].(string), nil
	})
	upper := Transform(base, func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})
	bytes := Transform(upper, func(s string) ([]byte, error) {
		return json.Marshal(s)
	})

	out, err := bytes(ctx, Call{Args: []any{"hi"}})
	if err != nil {
		t.Fatalf("transform chain: %v", err)
	}
	if string(out) != `"HI"` {
		t.Fatalf("chain output = %s", out)
	}
}

func TestTransformPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	failing := Func[string](func(context.Context, Call) (string, error) {
		return "", boom
	})
	var transformed bool
	tf := Transform(failing, func(s string) (int, error) {
		transformed = true
		return len(s), nil
	})

	if _, err := tf(ctx, Call{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if transformed {
		t.Fatal("transform ran despite computation failure")
	}
}
