package models

import "encoding/json"

// DefaultModel is used until the user selects another model.
const DefaultModel = "gpt-3.5-turbo"

// Settings is the whole persisted record: credential, model selection,
// transcript and raw completion history. One instance lives for one CLI
// invocation; it is loaded from the store, mutated by one command and saved.
type Settings struct {
	Credential        string             `json:"credential"`
	ModelID           string             `json:"model_id"`
	Transcript        []Turn             `json:"transcript"`
	CompletionHistory []CompletionRecord `json:"completion_history"`
}

// NewSettings returns the record used when nothing has been stored yet.
func NewSettings() *Settings {
	return &Settings{
		Credential:        "",
		ModelID:           DefaultModel,
		Transcript:        []Turn{},
		CompletionHistory: []CompletionRecord{},
	}
}

// HasCredential returns true if a non-empty credential is stored
func (s *Settings) HasCredential() bool {
	return s.Credential != ""
}

// SetCredential replaces the credential. Empty strings are accepted.
func (s *Settings) SetCredential(token string) {
	s.Credential = token
}

// SelectModel replaces the model id. Unknown ids are only rejected later by
// the remote service.
func (s *Settings) SelectModel(id string) {
	s.ModelID = id
}

// ClearTranscript empties the transcript. Completion history is kept.
func (s *Settings) ClearTranscript() {
	s.Transcript = []Turn{}
}

// AppendTurn adds a turn at the end of the transcript.
func (s *Settings) AppendTurn(turn Turn) {
	s.Transcript = append(s.Transcript, turn)
}

// RecordCompletion adds a raw response to the completion history.
func (s *Settings) RecordCompletion(record CompletionRecord) {
	s.CompletionHistory = append(s.CompletionHistory, record)
}

// UnmarshalJSON accepts both the current field names and the names used by
// records written before the rename (api_key, model, previous_chat_log,
// chat_completions). A record without any model field gets DefaultModel.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		Credential        *string            `json:"credential"`
		ModelID           *string            `json:"model_id"`
		Transcript        []Turn             `json:"transcript"`
		CompletionHistory []CompletionRecord `json:"completion_history"`

		APIKey          *string            `json:"api_key"`
		Model           *string            `json:"model"`
		PreviousChatLog []Turn             `json:"previous_chat_log"`
		ChatCompletions []CompletionRecord `json:"chat_completions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewSettings()
	switch {
	case raw.Credential != nil:
		out.Credential = *raw.Credential
	case raw.APIKey != nil:
		out.Credential = *raw.APIKey
	}
	switch {
	case raw.ModelID != nil:
		out.ModelID = *raw.ModelID
	case raw.Model != nil:
		out.ModelID = *raw.Model
	}
	switch {
	case raw.Transcript != nil:
		out.Transcript = raw.Transcript
	case raw.PreviousChatLog != nil:
		out.Transcript = raw.PreviousChatLog
	}
	switch {
	case raw.CompletionHistory != nil:
		out.CompletionHistory = raw.CompletionHistory
	case raw.ChatCompletions != nil:
		out.CompletionHistory = raw.ChatCompletions
	}

	*s = *out
	return nil
}
