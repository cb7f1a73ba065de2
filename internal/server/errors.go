package server

import (
	"context"
	"errors"
	"io/fs"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/policy-intake/internal/common"
	"github.com/joseph-ayodele/policy-intake/internal/llm"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
)

// toStatus maps a failed run onto a gRPC status. The message keeps the full chain.
func toStatus(err error) error {
	var provider *llm.ProviderError
	code := codes.Internal
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, pipeline.ErrUnsupportedFormat), errors.Is(err, common.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, fs.ErrNotExist):
		code = codes.NotFound
	case errors.Is(err, pipeline.ErrFallbackUnavailable), errors.Is(err, llm.ErrMissingCredentials):
		code = codes.FailedPrecondition
	case errors.As(err, &provider):
		code = codes.Unavailable
	case errors.Is(err, llm.ErrUnparsableResponse), errors.Is(err, llm.ErrSchemaMismatch):
		code = codes.DataLoss
	}
	return status.Error(code, err.Error())
}
