package server

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/classify"
	"github.com/joseph-ayodele/policy-intake/internal/common"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
	"github.com/joseph-ayodele/policy-intake/internal/utils"
	"github.com/joseph-ayodele/policy-intake/internal/workflow"
)

const maxClassifyChars = 1 << 20

// ExtractionServer runs one workflow per Extract call. Accepting the matched
// client is left to the caller, so responses stop at validating-entities.
type ExtractionServer struct {
	proc   workflow.Processor
	logger *slog.Logger
}

func NewExtractionServer(proc workflow.Processor, logger *slog.Logger) *ExtractionServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionServer{proc: proc, logger: logger}
}

// Extract expects {path: string, force_fallback: bool} and returns
// {run_id, state, outcome}.
func (s *ExtractionServer) Extract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	path := strings.TrimSpace(fields["path"].GetStringValue())
	force := fields["force_fallback"].GetBoolValue()

	v := common.NewValidator().Field("path", path, common.Required, common.SupportedDocument)
	if err := common.ValidateAndReturnError(v); err != nil {
		s.logger.Warn("extract request rejected", "req_id", common.RequestIDFromContext(ctx), "error", err)
		return nil, err
	}

	wf := workflow.New(s.proc, workflow.WithLogger(s.logger))
	t, err := wf.SubmitFile(ctx, path, pipeline.Options{ForceFallback: force})
	if err != nil {
		return nil, common.InternalError(err.Error())
	}
	if t.To == constants.StateError {
		s.logger.Error("extract failed", "req_id", common.RequestIDFromContext(ctx), "run_id", t.RunID, "path", path, "error", wf.Err())
		return nil, toStatus(wf.Err())
	}

	outcome, err := utils.ToPBOutcome(*wf.Outcome())
	if err != nil {
		return nil, common.InternalErrorf("encode outcome: %v", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"run_id":  structpb.NewStringValue(t.RunID),
		"state":   structpb.NewStringValue(string(t.To)),
		"outcome": structpb.NewStructValue(outcome),
	}}, nil
}

// Classify expects {text: string} and returns the classification.
func (s *ExtractionServer) Classify(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text := req.GetFields()["text"].GetStringValue()
	v := common.NewValidator().Field("text", text, common.Required, common.MaxLength(maxClassifyChars))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	cls := classify.Classify(text)
	s.logger.Info("classify.ok", "req_id", common.RequestIDFromContext(ctx), "issuer", cls.Issuer, "product", cls.Product)
	out, err := utils.ToPBClassification(cls)
	if err != nil {
		return nil, common.InternalErrorf("encode classification: %v", err)
	}
	return out, nil
}
