package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
)

func TestSettings_NewSettings_Defaults(t *testing.T) {
	s := NewSettings()

	if s.Credential != "" {
		t.Errorf("Credential = %q, want empty", s.Credential)
	}
	if s.ModelID != "gpt-3.5-turbo" {
		t.Errorf("ModelID = %q, want gpt-3.5-turbo", s.ModelID)
	}
	if len(s.Transcript) != 0 || s.Transcript == nil {
		t.Errorf("Transcript = %#v, want empty non-nil slice", s.Transcript)
	}
	if len(s.CompletionHistory) != 0 || s.CompletionHistory == nil {
		t.Errorf("CompletionHistory = %#v, want empty non-nil slice", s.CompletionHistory)
	}
}

func TestSettings_AppendTurn_PreservesOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 50} {
		t.Run(fmt.Sprintf("%d turns", n), func(t *testing.T) {
			s := NewSettings()
			for i := 0; i < n; i++ {
				role := RoleUser
				if i%3 == 0 {
					// out-of-order roles are accepted
					role = RoleAssistant
				}
				s.AppendTurn(Turn{Role: role, Content: fmt.Sprintf("turn %d", i)})
			}

			if len(s.Transcript) != n {
				t.Fatalf("len(Transcript) = %d, want %d", len(s.Transcript), n)
			}
			for i, turn := range s.Transcript {
				want := fmt.Sprintf("turn %d", i)
				if turn.Content != want {
					t.Errorf("Transcript[%d].Content = %q, want %q", i, turn.Content, want)
				}
			}
		})
	}
}

func TestSettings_AppendTurn_AcceptsDuplicates(t *testing.T) {
	s := NewSettings()
	s.AppendTurn(UserTurn("same"))
	s.AppendTurn(UserTurn("same"))

	if len(s.Transcript) != 2 {
		t.Errorf("len(Transcript) = %d, want 2", len(s.Transcript))
	}
}

func TestSettings_ClearTranscript_Idempotent(t *testing.T) {
	s := NewSettings()
	s.SetCredential("sk-test")
	s.SelectModel("gpt-4")
	s.AppendTurn(UserTurn("Hi"))
	s.RecordCompletion(CompletionRecord{ID: "chatcmpl-1"})

	s.ClearTranscript()
	once := *s
	s.ClearTranscript()

	if !reflect.DeepEqual(once, *s) {
		t.Errorf("second ClearTranscript changed state: %#v -> %#v", once, *s)
	}
	if len(s.Transcript) != 0 {
		t.Errorf("len(Transcript) = %d, want 0", len(s.Transcript))
	}
	if s.Credential != "sk-test" || s.ModelID != "gpt-4" {
		t.Errorf("credential/model changed: %q / %q", s.Credential, s.ModelID)
	}
	if len(s.CompletionHistory) != 1 {
		t.Errorf("len(CompletionHistory) = %d, want 1 (history is not cleared)", len(s.CompletionHistory))
	}
}

func TestSettings_HasCredential(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{name: "empty", token: "", expected: false},
		{name: "api key", token: "sk-abc123", expected: true},
		{name: "whitespace is still a value", token: " ", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			s.SetCredential("previous")
			s.SetCredential(tt.token)
			if got := s.HasCredential(); got != tt.expected {
				t.Errorf("HasCredential() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSettings_SelectModel_NoValidation(t *testing.T) {
	s := NewSettings()
	s.SelectModel("not-a-real-model")
	if s.ModelID != "not-a-real-model" {
		t.Errorf("ModelID = %q, want not-a-real-model", s.ModelID)
	}
}

func TestSettings_RecordCompletion_IndependentOfTranscript(t *testing.T) {
	s := NewSettings()
	s.RecordCompletion(CompletionRecord{ID: "a"})
	s.RecordCompletion(CompletionRecord{ID: "b"})

	if len(s.Transcript) != 0 {
		t.Errorf("len(Transcript) = %d, want 0", len(s.Transcript))
	}
	if len(s.CompletionHistory) != 2 || s.CompletionHistory[1].ID != "b" {
		t.Errorf("CompletionHistory = %#v, want [a b]", s.CompletionHistory)
	}
}

func TestSettings_JSON_RoundTrip(t *testing.T) {
	s := NewSettings()
	s.SetCredential("sk-test")
	s.SelectModel("gpt-4")
	s.AppendTurn(UserTurn("Hi"))
	s.AppendTurn(Turn{Role: RoleAssistant, Content: "Hello"})
	s.RecordCompletion(CompletionRecord{
		ID:      "chatcmpl-1",
		Object:  "chat.completion",
		Created: 1700000000,
		Choices: []Choice{{Index: 0, Message: Turn{Role: RoleAssistant, Content: "Hello"}, FinishReason: "stop"}},
		Usage:   Usage{PromptTokens: 3, CompletionTokens: 1, TotalTokens: 4},
	})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Settings
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(*s, got) {
		t.Errorf("round trip mismatch:\nwant %#v\ngot  %#v", *s, got)
	}
}

func TestSettings_JSON_FieldNames(t *testing.T) {
	data, err := json.Marshal(NewSettings())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, name := range []string{"credential", "model_id", "transcript", "completion_history"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("expected field %q in %s", name, data)
		}
	}
}

func TestSettings_JSON_LegacyFieldNames(t *testing.T) {
	legacy := `{
		"api_key": "sk-old",
		"model": "gpt-4",
		"previous_chat_log": [{"role": "user", "content": "Hi"}],
		"chat_completions": [{"id": "chatcmpl-9", "object": "chat.completion", "created": 1,
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}}]
	}`

	var s Settings
	if err := json.Unmarshal([]byte(legacy), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if s.Credential != "sk-old" {
		t.Errorf("Credential = %q, want sk-old", s.Credential)
	}
	if s.ModelID != "gpt-4" {
		t.Errorf("ModelID = %q, want gpt-4", s.ModelID)
	}
	if len(s.Transcript) != 1 || s.Transcript[0].Content != "Hi" {
		t.Errorf("Transcript = %#v", s.Transcript)
	}
	if len(s.CompletionHistory) != 1 || s.CompletionHistory[0].Choices[0].Message.Content != "Hello" {
		t.Errorf("CompletionHistory = %#v", s.CompletionHistory)
	}
}

func TestSettings_JSON_MissingModelGetsDefault(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{"credential":"k"}`), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.ModelID != DefaultModel {
		t.Errorf("ModelID = %q, want %q", s.ModelID, DefaultModel)
	}

	// An explicitly stored empty model id is kept as-is.
	if err := json.Unmarshal([]byte(`{"model_id":""}`), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.ModelID != "" {
		t.Errorf("ModelID = %q, want empty", s.ModelID)
	}
}

func TestCompletionRecord_Reply(t *testing.T) {
	var empty CompletionRecord
	if _, ok := empty.Reply(); ok {
		t.Error("Reply() on zero choices should report false")
	}

	r := CompletionRecord{Choices: []Choice{
		{Message: Turn{Role: RoleAssistant, Content: "first"}},
		{Message: Turn{Role: RoleAssistant, Content: "second"}},
	}}
	turn, ok := r.Reply()
	if !ok || turn.Content != "first" {
		t.Errorf("Reply() = %#v, %v; want first, true", turn, ok)
	}
}
