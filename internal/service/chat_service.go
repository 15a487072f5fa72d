package service

import (
	"context"
	"time"

	"staystrong-chat-be/internal/dto"
	"staystrong-chat-be/internal/mapper"
	"staystrong-chat-be/internal/pkg/logger"
	"staystrong-chat-be/internal/repository/memory"
	"staystrong-chat-be/pkg/dialogue"
	"staystrong-chat-be/pkg/llm"
)

type IChatService interface {
	Chat(ctx context.Context, requestID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Reset(ctx context.Context) *dto.ResetResponse
	Health(ctx context.Context) *dto.HealthResponse
	ModelStatus(ctx context.Context) *dto.ModelStatusResponse
}

// TurnHandler runs one conversation turn.
type TurnHandler interface {
	Handle(ctx context.Context, req dialogue.TurnRequest) dialogue.TurnResult
}

// RuntimeInfo is what /health reports about the loaded content.
type RuntimeInfo struct {
	IndexSnippets  int
	LexiconEntries int
	ContactsSource string
	Provider       string
	Model          string
}

type chatService struct {
	turns       TurnHandler
	llmProvider llm.LLMProvider
	statusRepo  *memory.ModelStatusRepository
	mapper      *mapper.ConversationMapper
	info        RuntimeInfo
	log         logger.ILogger
	now         func() time.Time
}

func NewChatService(
	turns TurnHandler,
	llmProvider llm.LLMProvider,
	statusRepo *memory.ModelStatusRepository,
	info RuntimeInfo,
	log logger.ILogger,
) IChatService {
	if log == nil {
		log = logger.NewNop()
	}
	return &chatService{
		turns:       turns,
		llmProvider: llmProvider,
		statusRepo:  statusRepo,
		mapper:      mapper.NewConversationMapper(),
		info:        info,
		log:         log,
		now:         time.Now,
	}
}

func (s *chatService) Chat(ctx context.Context, requestID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	res := s.turns.Handle(ctx, dialogue.TurnRequest{
		Message:   req.Message,
		State:     s.mapper.ToDomain(req.State),
		FastMode:  req.FastMode(),
		RequestID: requestID,
	})

	out := &dto.ChatResponse{
		Messages: res.Messages,
		State:    s.mapper.ToDTO(res.State),
		Mode:     res.Mode,
		Tool:     res.Tool,
	}
	if res.HasReply {
		reply := res.Reply
		out.Reply = &reply
	}

	s.log.Info("CHAT", "Turn handled", map[string]interface{}{
		"request_id": requestID,
		"step":       out.State.Step,
		"phase":      out.State.CrisisPhase,
		"level":      string(res.Level),
		"mode":       res.Mode,
	})
	return out, nil
}

func (s *chatService) Reset(ctx context.Context) *dto.ResetResponse {
	return &dto.ResetResponse{State: s.mapper.ToDTO(dialogue.DefaultState())}
}

func (s *chatService) Health(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:         "ok",
		IndexSnippets:  s.info.IndexSnippets,
		LexiconEntries: s.info.LexiconEntries,
		ContactsSource: s.info.ContactsSource,
	}
}

// ModelStatus asks the backend which models it has. Results are cached by statusRepo.
func (s *chatService) ModelStatus(ctx context.Context) *dto.ModelStatusResponse {
	if s.statusRepo != nil {
		if cached, ok := s.statusRepo.Get(); ok {
			out := *cached
			out.FromCache = true
			return &out
		}
	}

	status := &dto.ModelStatusResponse{
		Provider:  s.info.Provider,
		Model:     s.info.Model,
		CheckedAt: s.now().UTC().Format(time.RFC3339),
	}

	lister, ok := s.llmProvider.(llm.ModelLister)
	if !ok {
		status.Error = "provider does not expose a model list"
	} else {
		status.Model = lister.ConfiguredModel()
		models, err := lister.ListModels(ctx)
		if err != nil {
			s.log.Warn("CHAT", "Model probe failed", map[string]interface{}{"error": err.Error()})
			status.Error = err.Error()
		} else {
			status.Installed = models
			status.Available = containsModel(models, status.Model)
		}
	}

	if s.statusRepo != nil {
		s.statusRepo.Save(status)
	}
	return status
}

// containsModel treats "llama3" and "llama3:latest" as the same model.
func containsModel(models []string, want string) bool {
	for _, m := range models {
		if m == want || m == want+":latest" || want == m+":latest" {
			return true
		}
	}
	return false
}
