package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	"github.com/allisson/webhooks/internal/dispatch/http/dto"
	dispatchUseCase "github.com/allisson/webhooks/internal/dispatch/usecase"
)

// RunTrigger delivers an event to every registered webhook and prints the aggregated result.
// Delivery failures are part of the printed result; only a dispatch that could not start
// (invalid event, unreadable store, no subscribers) returns an error.
func RunTrigger(
	ctx context.Context,
	dispatchUseCase dispatchUseCase.DispatchUseCase,
	logger *slog.Logger,
	ipAddress string,
	format string,
	writer io.Writer,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("triggering webhooks", slog.String("ip_address", ipAddress))

	result, err := dispatchUseCase.Trigger(ctx, dispatchDomain.EventData{IPAddress: ipAddress})
	if err != nil {
		return fmt.Errorf("failed to trigger webhooks: %w", err)
	}

	logger.Info("webhooks triggered",
		slog.String("summary", string(result.Summary)),
		slog.Int("delivered", result.Delivered),
		slog.Int("failed", result.Failed),
	)

	if format == formatJSON {
		return writeJSON(writer, dto.MapDispatchResultToResponse(result))
	}

	writeTriggerText(result, writer)
	return nil
}

func writeTriggerText(result *dispatchDomain.DispatchResult, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "%s\n", result.Message)
	_, _ = fmt.Fprintf(writer, "Status: %s\n", result.Status)
	_, _ = fmt.Fprintf(writer, "Summary: %s\n", result.Summary)
	_, _ = fmt.Fprintf(writer, "Batches: %d\n", result.Batches)
	_, _ = fmt.Fprintf(writer, "Delivered: %d, Failed: %d\n", result.Delivered, result.Failed)
	_, _ = fmt.Fprintf(writer, "Duration: %s\n", result.Duration)

	for _, outcome := range result.Outcomes {
		state := "ok"
		if !outcome.Success {
			state = "failed"
		}
		_, _ = fmt.Fprintf(writer, "  [%s] %s attempts=%d status=%d",
			state, outcome.TargetURL, outcome.Attempts, outcome.StatusCode)
		if outcome.Error != "" {
			_, _ = fmt.Fprintf(writer, " error=%q", outcome.Error)
		}
		_, _ = fmt.Fprintln(writer)
	}
}
