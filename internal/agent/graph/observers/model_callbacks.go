package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	einomodel "github.com/cloudwego/eino/components/model"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"
)

// newModelHandler builds a typed ModelCallbackHandler logging messages around model calls.
func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *einomodel.CallbackInput) context.Context {
			n := 0
			if input != nil {
				n = len(input.Messages)
			}
			logx.Debug().Str("model", info.Name).Int("messages", n).Msg("Model start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *einomodel.CallbackOutput) context.Context {
			if output != nil && output.Message != nil {
				content := strings.TrimSpace(output.Message.Content)
				logx.Debug().
					Str("model", info.Name).
					Int("tool_calls", len(output.Message.ToolCalls)).
					Str("content", content).
					Msg("Model end")
			}
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Str("model", info.Name).Err(err).Msg("Model call failed")
			return ctx
		},
	}
}
