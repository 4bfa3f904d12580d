package pipeline

import (
	"context"
	"io"
	"sync"

	"github.com/sells-group/sales-agent/pkg/anthropic"
)

// fakeCompleter implements anthropic.Client for tests. The respond function
// maps a prompt to the model output; a non-nil err fails every call.
type fakeCompleter struct {
	mu      sync.Mutex
	respond func(prompt string) string
	err     error
	calls   int
	prompts []string
}

// newFakeCompleter returns a completer that answers every prompt with text.
func newFakeCompleter(text string) *fakeCompleter {
	return &fakeCompleter{respond: func(string) string { return text }}
}

func (f *fakeCompleter) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.mu.Lock()
	f.calls++
	prompt := ""
	if len(req.Messages) > 0 {
		prompt = req.Messages[0].Content
	}
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Model:   req.Model,
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.respond(prompt)}},
	}, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeTranscriber implements whisper.Client for tests.
type fakeTranscriber struct {
	text        string
	err         error
	calls       int
	gotFilename string
	gotAudio    []byte
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio io.Reader, filename string) (string, error) {
	f.calls++
	f.gotFilename = filename
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", err
	}
	f.gotAudio = data
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
