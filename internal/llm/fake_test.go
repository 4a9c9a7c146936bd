package llm

import (
	"context"
	"encoding/json"

	bedrockruntime "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type fakeBedrock struct {
	invokeBody []byte
	invokeErr  error
	chunks     []string
	streamErr  error
	openErr    error

	lastInvoke *bedrockruntime.InvokeModelInput
	lastStream *bedrockruntime.InvokeModelWithResponseStreamInput
}

func (f *fakeBedrock) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.lastInvoke = params
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	return &bedrockruntime.InvokeModelOutput{Body: f.invokeBody}, nil
}

func (f *fakeBedrock) InvokeModelStream(ctx context.Context, params *bedrockruntime.InvokeModelWithResponseStreamInput) (EventReader, error) {
	f.lastStream = params
	if f.openErr != nil {
		return nil, f.openErr
	}
	ch := make(chan types.ResponseStream, len(f.chunks))
	for _, c := range f.chunks {
		ch <- &types.ResponseStreamMemberChunk{Value: types.PayloadPart{Bytes: []byte(c)}}
	}
	close(ch)
	return &fakeReader{events: ch, err: f.streamErr}, nil
}

type fakeReader struct {
	events chan types.ResponseStream
	err    error
	closed bool
}

func (r *fakeReader) Events() <-chan types.ResponseStream { return r.events }
func (r *fakeReader) Close() error                        { r.closed = true; return nil }
func (r *fakeReader) Err() error                          { return r.err }

func novaBody(text string) []byte {
	b, _ := json.Marshal(map[string]any{
		"output": map[string]any{
			"message": map[string]any{
				"role":    "assistant",
				"content": []map[string]any{{"text": text}},
			},
		},
		"stopReason": "end_turn",
	})
	return b
}

func deltaChunk(text string) string {
	b, _ := json.Marshal(map[string]any{
		"contentBlockDelta": map[string]any{
			"delta":             map[string]any{"text": text},
			"contentBlockIndex": 0,
		},
	})
	return string(b)
}
