package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"OrientadorFP_Backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBedrockConfig() config.BedrockConfig {
	return config.BedrockConfig{
		Region:      "us-east-1",
		ModelID:     "amazon.nova-pro-v1:0",
		MaxTokens:   1100,
		Temperature: 0.35,
		TopP:        0.9,
		Timeout:     5 * time.Second,
	}
}

func TestInvokeSendsNovaRequest(t *testing.T) {
	fake := &fakeBedrock{invokeBody: novaBody(`{"nota_salarios":"x","recomendaciones":[]}`)}
	c := NewClient(fake, testBedrockConfig(), nil)

	text, err := c.Invoke(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, `{"nota_salarios":"x","recomendaciones":[]}`, text)

	require.NotNil(t, fake.lastInvoke)
	assert.Equal(t, "amazon.nova-pro-v1:0", aws.ToString(fake.lastInvoke.ModelId))
	assert.Equal(t, "application/json", aws.ToString(fake.lastInvoke.ContentType))
	assert.Equal(t, "application/json", aws.ToString(fake.lastInvoke.Accept))

	var sent novaRequest
	require.NoError(t, json.Unmarshal(fake.lastInvoke.Body, &sent))
	require.Len(t, sent.Messages, 1)
	assert.Equal(t, "user", sent.Messages[0].Role)
	assert.Equal(t, "hola", sent.Messages[0].Content[0].Text)
	assert.Equal(t, 1100, sent.InferenceConfig.MaxTokens)
	assert.InDelta(t, 0.35, sent.InferenceConfig.Temperature, 1e-9)
	assert.InDelta(t, 0.9, sent.InferenceConfig.TopP, 1e-9)
}

func TestInvokeFallsBackToRawResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty content", `{"output":{"message":{"content":[]}},"usage":{"inputTokens":3}}`, "\"inputTokens\": 3"},
		{"unexpected output shape", `{"output":"throttled"}`, "{\n  \"output\": \"throttled\"\n}"},
		{"non-string text", `{"output":{"message":{"content":[{"text":7}]}}}`, "\"text\": 7"},
		{"top-level array", `[1,2]`, "[\n  1,\n  2\n]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(&fakeBedrock{invokeBody: []byte(tt.body)}, testBedrockConfig(), nil)

			text, err := c.Invoke(context.Background(), "hola")
			require.NoError(t, err)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestInvokeReturnsEmptyText(t *testing.T) {
	c := NewClient(&fakeBedrock{invokeBody: novaBody("")}, testBedrockConfig(), nil)

	text, err := c.Invoke(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestInvokeErrors(t *testing.T) {
	fake := &fakeBedrock{invokeErr: errors.New("AccessDeniedException")}
	c := NewClient(fake, testBedrockConfig(), nil)

	_, err := c.Invoke(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")

	fake = &fakeBedrock{invokeBody: []byte("not json")}
	c = NewClient(fake, testBedrockConfig(), nil)
	_, err = c.Invoke(context.Background(), "hola")
	assert.Error(t, err)
}

func TestInvokeChecksEnvironmentFirst(t *testing.T) {
	fake := &fakeBedrock{invokeBody: novaBody("{}")}
	cfg := testBedrockConfig()
	cfg.ModelID = ""
	c := NewClient(fake, cfg, nil)

	_, err := c.Invoke(context.Background(), "hola")
	var envErr *config.MissingEnvError
	require.True(t, errors.As(err, &envErr))
	assert.Nil(t, fake.lastInvoke)
}

func TestStreamCollectsDeltas(t *testing.T) {
	fake := &fakeBedrock{chunks: []string{
		`{"messageStart":{"role":"assistant"}}`,
		deltaChunk(`{"nota_salarios":`),
		deltaChunk(`"x"}`),
		`{"contentBlockStop":{"contentBlockIndex":0}}`,
		`{"messageStop":{"stopReason":"end_turn"}}`,
	}}
	c := NewClient(fake, testBedrockConfig(), nil)

	var deltas []string
	text, err := c.Stream(context.Background(), "hola", func(d string) { deltas = append(deltas, d) })
	require.NoError(t, err)
	assert.Equal(t, `{"nota_salarios":"x"}`, text)
	assert.Equal(t, []string{`{"nota_salarios":`, `"x"}`}, deltas)
	assert.Equal(t, "amazon.nova-pro-v1:0", aws.ToString(fake.lastStream.ModelId))
}

func TestStreamErrors(t *testing.T) {
	c := NewClient(&fakeBedrock{openErr: errors.New("throttled")}, testBedrockConfig(), nil)
	_, err := c.Stream(context.Background(), "hola", nil)
	assert.ErrorContains(t, err, "throttled")

	c = NewClient(&fakeBedrock{chunks: []string{deltaChunk("par")}, streamErr: errors.New("reset")}, testBedrockConfig(), nil)
	text, err := c.Stream(context.Background(), "hola", nil)
	assert.ErrorContains(t, err, "reset")
	assert.Equal(t, "par", text)
}
