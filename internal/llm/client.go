/**
* Name: 			client.go
* Description: 		Amazon Nova invocation over Bedrock
* Workflow: 		request body, InvokeModel / response stream, text extraction
 */

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"OrientadorFP_Backend/internal/config"
	"OrientadorFP_Backend/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	bedrockruntime "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"go.uber.org/zap"
)

type novaContent struct {
	Text string `json:"text"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []novaContent `json:"content"`
}

type novaInferenceConfig struct {
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type novaRequest struct {
	Messages        []novaMessage       `json:"messages"`
	InferenceConfig novaInferenceConfig `json:"inferenceConfig"`
}

type novaStreamChunk struct {
	ContentBlockDelta *struct {
		Delta struct {
			Text string `json:"text"`
		} `json:"delta"`
	} `json:"contentBlockDelta"`
}

// Client talks to a Nova model on Bedrock.
type Client struct {
	api    BedrockAPI
	cfg    config.BedrockConfig
	logger *zap.Logger
}

func NewClient(api BedrockAPI, cfg config.BedrockConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{api: api, cfg: cfg, logger: logger}
}

func (c *Client) ModelID() string { return c.cfg.ModelID }

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func (c *Client) body(prompt string) ([]byte, error) {
	return json.Marshal(novaRequest{
		Messages: []novaMessage{{
			Role:    "user",
			Content: []novaContent{{Text: prompt}},
		}},
		InferenceConfig: novaInferenceConfig{
			MaxTokens:   c.cfg.MaxTokens,
			Temperature: c.cfg.Temperature,
			TopP:        c.cfg.TopP,
		},
	})
}

// Invoke sends prompt and returns the model's text. When the response has no
// text block, the whole response is returned as indented JSON.
func (c *Client) Invoke(ctx context.Context, prompt string) (text string, err error) {
	if err := c.cfg.Validate(); err != nil {
		return "", err
	}
	body, err := c.body(prompt)
	if err != nil {
		return "", fmt.Errorf("marshal nova request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	defer observe("invoke", time.Now(), &err)

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		c.logger.Error("bedrock InvokeModel failed", zap.String("model_id", c.cfg.ModelID), zap.Error(err))
		return "", fmt.Errorf("bedrock InvokeModel: %w", err)
	}
	return extractText(out.Body)
}

func extractText(raw []byte) (string, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("bedrock response unmarshal: %w", err)
	}
	if text, ok := firstText(generic); ok {
		return text, nil
	}

	pretty, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return "", fmt.Errorf("bedrock response marshal: %w", err)
	}
	return string(pretty), nil
}

// firstText walks output.message.content[0].text. A present but empty text
// counts as found.
func firstText(v any) (string, bool) {
	root, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	output, ok := root["output"].(map[string]any)
	if !ok {
		return "", false
	}
	message, ok := output["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := message["content"].([]any)
	if !ok || len(content) == 0 {
		return "", false
	}
	block, ok := content[0].(map[string]any)
	if !ok {
		return "", false
	}
	text, ok := block["text"].(string)
	return text, ok
}

// Stream sends prompt with a streamed response. Every text delta is passed
// to onDelta as it arrives; the full text is returned at the end.
func (c *Client) Stream(ctx context.Context, prompt string, onDelta func(string)) (text string, err error) {
	if err := c.cfg.Validate(); err != nil {
		return "", err
	}
	body, err := c.body(prompt)
	if err != nil {
		return "", fmt.Errorf("marshal nova request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	defer observe("stream", time.Now(), &err)

	stream, err := c.api.InvokeModelStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(c.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		c.logger.Error("bedrock InvokeModelWithResponseStream failed", zap.String("model_id", c.cfg.ModelID), zap.Error(err))
		return "", fmt.Errorf("bedrock InvokeModelWithResponseStream: %w", err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return sb.String(), ctx.Err()
		case ev, ok := <-stream.Events():
			if !ok {
				if err := stream.Err(); err != nil {
					return sb.String(), fmt.Errorf("bedrock stream: %w", err)
				}
				return sb.String(), nil
			}
			chunk, isChunk := ev.(*types.ResponseStreamMemberChunk)
			if !isChunk {
				continue
			}
			var payload novaStreamChunk
			if err := json.Unmarshal(chunk.Value.Bytes, &payload); err != nil {
				c.logger.Warn("skipping undecodable stream chunk", zap.Error(err))
				continue
			}
			if payload.ContentBlockDelta == nil || payload.ContentBlockDelta.Delta.Text == "" {
				continue
			}
			delta := payload.ContentBlockDelta.Delta.Text
			sb.WriteString(delta)
			if onDelta != nil {
				onDelta(delta)
			}
		}
	}
}

func observe(mode string, start time.Time, err *error) {
	status := "ok"
	if *err != nil {
		status = "error"
	}
	metrics.BedrockInvocations.WithLabelValues(mode, status).Inc()
	metrics.BedrockDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
