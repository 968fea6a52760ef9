package interfaces_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestSyncResultMarshalsErrorMessages(t *testing.T) {
	result := interfaces.SyncResult{
		Created: []string{"posts/transducers.md"},
		Errors: []error{
			fmt.Errorf("sync: posts/broken.md: %w", fmt.Errorf("missing front matter")),
		},
	}

	data, err := json.Marshal(&result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}

	var decoded struct {
		Created []string `json:"created"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode result: %v", err)
	}

	if len(decoded.Errors) != 1 {
		t.Fatalf("expected 1 error message, got %v", decoded.Errors)
	}
	if !strings.Contains(decoded.Errors[0], "posts/broken.md") || !strings.Contains(decoded.Errors[0], "missing front matter") {
		t.Fatalf("error message lost in encoding: %q", decoded.Errors[0])
	}
	if len(decoded.Created) != 1 || decoded.Created[0] != "posts/transducers.md" {
		t.Fatalf("expected created paths to survive, got %v", decoded.Created)
	}
}

func TestSyncResultMarshalsEmptyErrorsAsList(t *testing.T) {
	data, err := json.Marshal(interfaces.SyncResult{})
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if !strings.Contains(string(data), `"errors":[]`) {
		t.Fatalf("expected an empty errors list, got %s", data)
	}
}
