/**
* Name: 			bedrock.go
* Description: 		Amazon Bedrock runtime connection
* Workflow: 		AWS config (static keys or default chain), streaming adapter
 */

package llm

import (
	"context"
	"fmt"

	"OrientadorFP_Backend/internal/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	bedrockruntime "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// EventReader is the receiving side of a Bedrock response stream.
type EventReader interface {
	Events() <-chan types.ResponseStream
	Close() error
	Err() error
}

// BedrockAPI is the subset of the Bedrock runtime used by Client.
type BedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
	InvokeModelStream(ctx context.Context, params *bedrockruntime.InvokeModelWithResponseStreamInput) (EventReader, error)
}

// SDKClient adapts *bedrockruntime.Client to BedrockAPI.
type SDKClient struct {
	*bedrockruntime.Client
}

func (c SDKClient) InvokeModelStream(ctx context.Context, params *bedrockruntime.InvokeModelWithResponseStreamInput) (EventReader, error) {
	out, err := c.InvokeModelWithResponseStream(ctx, params)
	if err != nil {
		return nil, err
	}
	return out.GetStream(), nil
}

// NewBedrockAPI builds a runtime client for cfg.Region. Explicit
// AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY win over the default chain.
func NewBedrockAPI(ctx context.Context, cfg config.BedrockConfig) (SDKClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.StaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return SDKClient{}, fmt.Errorf("load aws config: %w", err)
	}
	return SDKClient{Client: bedrockruntime.NewFromConfig(awsCfg)}, nil
}
