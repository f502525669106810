package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	logx "github.com/vupatil1992/Hospital-patient-booking-agent/pkg/logger"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/catalog"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/graph/conversations"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/graph/nodes"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/graph/observers"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/orchestrator"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/registry"
	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/tools"
)

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the booking graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs the chat
// model, the orchestrator and the MessagesManager.
type Config struct {
	APIKey           string
	BaseURL          string
	ResponseModel    model.ResponseModelConfig
	Prompt           model.BookingPromptConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	Catalog          *catalog.Catalog
	Registry         *registry.Registry
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels      *nodes.ChatModels
	MessagesManager *conversations.MessagesManager
	Orchestrator    *orchestrator.Orchestrator
	Toolset         *tools.Toolset
	PromptConfig    *model.BookingPromptConfig
	ToolMaxCalls    int
}

// GraphBuilder handles the construction of the booking conversation graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, model.QueryInput{
		ConversationID: in.ConversationID,
		Query:          in.Query,
	}, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

// BuildBookingGraph composes the chat model, orchestrator, toolset and
// MessagesManager, builds the graph and returns a Runner.
func BuildBookingGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Catalog == nil || cfg.Registry == nil {
		return nil, fmt.Errorf("catalog and registry are required")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		RespConfig: &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:      cms,
		MessagesManager: conversations.NewMessagesManager(cfg.ConversationRepo),
		Orchestrator:    orchestrator.New(cfg.Catalog, cfg.Registry),
		Toolset:         tools.NewToolset(cfg.Catalog, cfg.Registry),
		PromptConfig:    &cfg.Prompt,
		ToolMaxCalls:    cfg.Conversation.Tools.MaxCalls,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Booking graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled booking graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Response == nil {
		return nil, fmt.Errorf("chat model is not properly initialized")
	}
	if config.MessagesManager == nil || config.Orchestrator == nil || config.Toolset == nil {
		return nil, fmt.Errorf("messages manager, orchestrator and toolset are required")
	}
	if config.PromptConfig == nil {
		return nil, fmt.Errorf("prompt config is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools configures booking tools and binds them to the response model
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	bookingTools := tools.GetBookingTools(b.config.Toolset)
	toolInfos, err := tools.GetToolInfos(ctx, bookingTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.config.ChatModels.BindToolsToResponseModel(ctx, toolInfos); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools to response model")
		return fmt.Errorf("failed to bind tools to response model: %w", err)
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               bookingTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			// Gracefully handle hallucinated or malformed tool calls (e.g., empty name)
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.ToolMaxCalls)),
	)

	return nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodePlanner,
		nodes.NewPlannerNode(b.config.MessagesManager, b.config.Orchestrator, b.config.PromptConfig),
		compose.WithStatePreHandler(nodes.NewPlannerPreHandler()),
	)

	b.graph.AddChatModelNode(nodes.NodeResponseChatModel,
		nodes.NewResponseChatModelNode(b.config.ChatModels.Response),
		compose.WithStatePreHandler(nodes.NewResponseChatModelPreHandler(b.config.ToolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewResponseChatModelPostHandler(b.config.MessagesManager, b.config.ChatModels.ResponseModelName)),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodePlanner},
		{nodes.NodePlanner, nodes.NodeResponseChatModel},
		{nodes.NodeToolExecutor, nodes.NodeResponseChatModel},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeResponseChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	// Limit total run steps to avoid infinite loops in branching or tool retries
	maxSteps := 10 + b.config.ToolMaxCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
